// Package gbuffer provides the CPU-side deferred G-buffer: four render
// targets plus depth, shared between the grass pipeline and the lighting
// resolve pass. The target layout is a hard contract with the resolve stage.
package gbuffer

import (
	"github.com/verdantfx/grassfield/pkg/math"
)

// Sample is the per-fragment material output written by shading stages.
type Sample struct {
	Diffuse    math.Vec3 // target 0 rgb
	Occlusion  float32   // target 0 alpha: min(textureAlpha, cutAlpha)
	Specular   math.Vec3 // target 1 rgb
	Smoothness float32   // target 1 alpha
	Normal     math.Vec3 // target 2 xyz, world space
	Ambient    math.Vec3 // target 3 rgb, pre-integrated indirect light
}

// Buffer holds the four render targets and the depth buffer.
type Buffer struct {
	Width  int
	Height int

	Diffuse  []math.Vec4 // rgb + occlusion
	Specular []math.Vec4 // rgb + smoothness
	Normal   []math.Vec4 // xyz + coverage flag in w
	Ambient  []math.Vec4 // rgb (encoded per HDR mode)
	Depth    []float32

	// HDR selects linear ambient storage; LDR stores exp2(-x) log encoding.
	HDR bool
}

// New creates a cleared G-buffer.
func New(width, height int, hdr bool) *Buffer {
	b := &Buffer{
		Width:    width,
		Height:   height,
		Diffuse:  make([]math.Vec4, width*height),
		Specular: make([]math.Vec4, width*height),
		Normal:   make([]math.Vec4, width*height),
		Ambient:  make([]math.Vec4, width*height),
		Depth:    make([]float32, width*height),
		HDR:      hdr,
	}
	b.Clear()
	return b
}

// Clear resets all targets and the depth buffer.
func (b *Buffer) Clear() {
	zero := math.Vec4{}
	for i := range b.Depth {
		b.Diffuse[i] = zero
		b.Specular[i] = zero
		b.Normal[i] = zero
		b.Ambient[i] = zero
		b.Depth[i] = 1 // NDC far plane
	}
}

// Index returns the flat index for a pixel.
func (b *Buffer) Index(x, y int) int {
	return y*b.Width + x
}

// Write stores a shaded sample at the pixel if it passes the depth test.
// Returns whether the write happened.
func (b *Buffer) Write(x, y int, depth float32, s Sample) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	i := b.Index(x, y)
	if depth >= b.Depth[i] {
		return false
	}
	b.Depth[i] = depth
	b.Diffuse[i] = math.Vec4{X: s.Diffuse.X, Y: s.Diffuse.Y, Z: s.Diffuse.Z, W: s.Occlusion}
	b.Specular[i] = math.Vec4{X: s.Specular.X, Y: s.Specular.Y, Z: s.Specular.Z, W: s.Smoothness}
	b.Normal[i] = math.Vec4{X: s.Normal.X, Y: s.Normal.Y, Z: s.Normal.Z, W: 1}
	b.Ambient[i] = b.encodeAmbient(s.Ambient)
	return true
}

// Covered reports whether any fragment was written at the pixel.
func (b *Buffer) Covered(x, y int) bool {
	return b.Normal[b.Index(x, y)].W != 0
}

// AmbientAt returns the decoded ambient value at the pixel.
func (b *Buffer) AmbientAt(x, y int) math.Vec3 {
	return b.decodeAmbient(b.Ambient[b.Index(x, y)])
}

func (b *Buffer) encodeAmbient(v math.Vec3) math.Vec4 {
	if b.HDR {
		return math.Vec4{X: v.X, Y: v.Y, Z: v.Z, W: 1}
	}
	return math.Vec4{
		X: math.Exp2(-v.X),
		Y: math.Exp2(-v.Y),
		Z: math.Exp2(-v.Z),
		W: 1,
	}
}

func (b *Buffer) decodeAmbient(v math.Vec4) math.Vec3 {
	if b.HDR {
		return v.Vec3()
	}
	return math.Vec3{X: -math.Log2(v.X), Y: -math.Log2(v.Y), Z: -math.Log2(v.Z)}
}
