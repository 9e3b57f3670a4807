// Package texture provides CPU-side textures with graphics-style sampling
// semantics: bilinear filtering and wrap/clamp addressing. Sampling never
// fails; out-of-range coordinates are wrapped or clamped per the texture's
// address mode.
package texture

import (
	"image"

	"github.com/verdantfx/grassfield/pkg/math"
)

// AddressMode controls how sample coordinates outside [0,1] are handled.
type AddressMode int

const (
	// Wrap repeats the texture (fractional coordinate).
	Wrap AddressMode = iota
	// Clamp extends the edge texels.
	Clamp
)

// Texture is an RGBA float32 image sampled in normalized UV space.
type Texture struct {
	width   int
	height  int
	pix     []float32 // RGBA, row-major
	Address AddressMode
}

// New creates a texture of the given size filled with transparent black.
func New(width, height int) *Texture {
	return &Texture{
		width:  width,
		height: height,
		pix:    make([]float32, width*height*4),
	}
}

// Width returns the texture width in texels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in texels.
func (t *Texture) Height() int { return t.height }

// Set writes a texel.
func (t *Texture) Set(x, y int, c math.Vec4) {
	i := (y*t.width + x) * 4
	t.pix[i] = c.X
	t.pix[i+1] = c.Y
	t.pix[i+2] = c.Z
	t.pix[i+3] = c.W
}

// At reads a texel with the texture's address mode applied to the indices.
func (t *Texture) At(x, y int) math.Vec4 {
	x = t.address(x, t.width)
	y = t.address(y, t.height)
	i := (y*t.width + x) * 4
	return math.Vec4{X: t.pix[i], Y: t.pix[i+1], Z: t.pix[i+2], W: t.pix[i+3]}
}

func (t *Texture) address(i, n int) int {
	switch t.Address {
	case Clamp:
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	default: // Wrap
		i %= n
		if i < 0 {
			i += n
		}
		return i
	}
}

// Sample returns the bilinearly filtered texel at normalized UV coordinates.
func (t *Texture) Sample(u, v float32) math.Vec4 {
	// Texel center convention: uv 0.5/size hits texel 0 exactly.
	fx := u*float32(t.width) - 0.5
	fy := v*float32(t.height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := t.At(x0, y0)
	c10 := t.At(x0+1, y0)
	c01 := t.At(x0, y0+1)
	c11 := t.At(x0+1, y0+1)

	top := c00.Lerp(c10, tx)
	bottom := c01.Lerp(c11, tx)
	return top.Lerp(bottom, ty)
}

// UVTransform is a per-material tiling and offset applied before sampling.
type UVTransform struct {
	TilingU, TilingV float32
	OffsetU, OffsetV float32
}

// IdentityUV returns the no-op transform.
func IdentityUV() UVTransform {
	return UVTransform{TilingU: 1, TilingV: 1}
}

// Apply maps a raw UV pair through the transform.
func (x UVTransform) Apply(u, v float32) (float32, float32) {
	return u*x.TilingU + x.OffsetU, v*x.TilingV + x.OffsetV
}

// FromImage converts a decoded image into a sampling texture.
func FromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	t := New(bounds.Dx(), bounds.Dy())
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			t.Set(x, y, math.Vec4{
				X: float32(r) / 0xffff,
				Y: float32(g) / 0xffff,
				Z: float32(b) / 0xffff,
				W: float32(a) / 0xffff,
			})
		}
	}
	return t
}

// ToImage converts the texture to an 8-bit RGBA image.
func (t *Texture) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			c := t.At(x, y)
			i := img.PixOffset(x, y)
			img.Pix[i] = uint8(math.Saturate(c.X) * 255)
			img.Pix[i+1] = uint8(math.Saturate(c.Y) * 255)
			img.Pix[i+2] = uint8(math.Saturate(c.Z) * 255)
			img.Pix[i+3] = uint8(math.Saturate(c.W) * 255)
		}
	}
	return img
}
