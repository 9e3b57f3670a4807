// Package deferred implements the lighting resolve pass. It reads the
// filled G-buffer, reconstructs world position from depth, and combines
// the stored ambient term with direct sun and point light contributions
// into a displayable image.
package deferred

import (
	"image"
	"image/color"

	"github.com/verdantfx/grassfield/internal/engine/gbuffer"
	"github.com/verdantfx/grassfield/internal/engine/lighting"
	"github.com/verdantfx/grassfield/pkg/math"
)

// gamma is the display transfer exponent applied on output.
const gamma = 1.0 / 2.2

// Resolver lights a G-buffer with a fixed sun and a bounded point light set.
type Resolver struct {
	Sun        lighting.Sun
	Lights     *lighting.Set
	Background math.Vec3
}

// Resolve lights every covered pixel of buf and returns the final image.
// invViewProj must be the inverse of the matrix the geometry was
// projected with, so depth can be unprojected back to world space.
func (r *Resolver) Resolve(buf *gbuffer.Buffer, invViewProj math.Mat4) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			if !buf.Covered(x, y) {
				img.SetRGBA(x, y, encode(r.Background))
				continue
			}

			i := buf.Index(x, y)
			diffuse := buf.Diffuse[i].Vec3()
			occlusion := buf.Diffuse[i].W
			normal := buf.Normal[i].Vec3()
			ambient := buf.AmbientAt(x, y)
			world := r.unproject(buf, x, y, invViewProj)

			light := ambient.Add(r.direct(world, normal))
			lit := diffuse.Mul(light)

			// Occlusion doubles as coverage: cut fragments fade
			// toward the background rather than going black.
			final := r.Background.Lerp(lit, occlusion)
			img.SetRGBA(x, y, encode(final))
		}
	}
	return img
}

// direct accumulates the sun and point light contributions at a surface point.
func (r *Resolver) direct(world, normal math.Vec3) math.Vec3 {
	sunNL := math.Saturate(normal.Dot(r.Sun.Direction))
	total := r.Sun.Color.Scale(sunNL)

	if r.Lights == nil {
		return total
	}
	for _, l := range r.Lights.Lights {
		atten := l.Attenuation(world)
		if atten <= 0 {
			continue
		}
		dir := l.Position.Sub(world).Normalize()
		nl := math.Saturate(normal.Dot(dir))
		total = total.Add(l.Color.Scale(nl * atten))
	}
	return total
}

// unproject maps a pixel and its stored depth back to world space.
func (r *Resolver) unproject(buf *gbuffer.Buffer, x, y int, invViewProj math.Mat4) math.Vec3 {
	ndcX := (float32(x)+0.5)/float32(buf.Width)*2 - 1
	ndcY := 1 - (float32(y)+0.5)/float32(buf.Height)*2
	ndcZ := buf.Depth[buf.Index(x, y)]*2 - 1

	clip := invViewProj.MulVec4(math.Vec4{X: ndcX, Y: ndcY, Z: ndcZ, W: 1})
	if clip.W == 0 {
		return math.Vec3{}
	}
	return clip.Vec3().Scale(1 / clip.W)
}

// encode tone maps a linear color to 8-bit sRGB-ish output.
func encode(c math.Vec3) color.RGBA {
	return color.RGBA{
		R: channel(c.X),
		G: channel(c.Y),
		B: channel(c.Z),
		A: 255,
	}
}

func channel(v float32) uint8 {
	v = math.Saturate(v)
	v = math.Pow(v, gamma)
	return uint8(v*255 + 0.5)
}
