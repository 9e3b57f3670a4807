// Package grass implements the procedural grass geometry pipeline: control
// map sampling, density-driven tessellation, per-blade geometry synthesis
// and deferred shading. Every stage is a pure function of its inputs plus
// the per-frame parameter block; there is no cross-invocation state.
package grass

import (
	"github.com/verdantfx/grassfield/pkg/math"
)

// BaseVertex is an authored terrain mesh vertex, the immutable pipeline input.
type BaseVertex struct {
	Position math.Vec3
	Normal   math.Vec3
	Tangent  math.Vec3
	UV       math.Vec2
}

// Attributes are the control map samples attached per vertex by the
// attribute sampler.
type Attributes struct {
	GrowthHeight float32   // world units
	WindDir      math.Vec3 // normalized
	Disruption   math.Vec4 // (flatten, cut, burn, growth), each in [0,1]
}

// ControlPoint is a tessellation input vertex: base attributes plus the
// sampled control values and the density factor.
type ControlPoint struct {
	BaseVertex
	Attributes
	Density float32 // [0,1] tessellation multiplier
}

// SubTriangle is one tessellation-generated sub-triangle; each corner is a
// barycentric interpolation of the patch control points.
type SubTriangle [3]ControlPoint

// Vertex is one emitted blade vertex, the geometry stage output.
type Vertex struct {
	Position math.Vec3 // world space
	Clip     math.Vec4 // clip space
	Normal   math.Vec3 // world space, camera-biased
	UV       math.Vec2 // X across the blade, Y along its height
	CutMod   float32
	BurnMod  float32
	WindBend float32 // bend angle, drives the wind highlight
}

// VertexBuffer accumulates emitted blade vertices; every three consecutive
// vertices form one triangle.
type VertexBuffer struct {
	Verts []Vertex
}

// Reset clears the buffer, keeping capacity.
func (b *VertexBuffer) Reset() {
	b.Verts = b.Verts[:0]
}

// TriangleCount returns the number of complete triangles in the buffer.
func (b *VertexBuffer) TriangleCount() int {
	return len(b.Verts) / 3
}

// lerpControlPoint interpolates three control points at a barycentric
// coordinate. Direction vectors are renormalized after blending.
func lerpControlPoint(patch [3]ControlPoint, u, v, w float32) ControlPoint {
	var cp ControlPoint
	cp.Position = patch[0].Position.Scale(u).
		Add(patch[1].Position.Scale(v)).
		Add(patch[2].Position.Scale(w))
	cp.Normal = patch[0].Normal.Scale(u).
		Add(patch[1].Normal.Scale(v)).
		Add(patch[2].Normal.Scale(w)).Normalize()
	cp.Tangent = patch[0].Tangent.Scale(u).
		Add(patch[1].Tangent.Scale(v)).
		Add(patch[2].Tangent.Scale(w)).Normalize()
	cp.UV = patch[0].UV.Scale(u).
		Add(patch[1].UV.Scale(v)).
		Add(patch[2].UV.Scale(w))

	cp.GrowthHeight = u*patch[0].GrowthHeight + v*patch[1].GrowthHeight + w*patch[2].GrowthHeight
	cp.WindDir = patch[0].WindDir.Scale(u).
		Add(patch[1].WindDir.Scale(v)).
		Add(patch[2].WindDir.Scale(w)).Normalize()
	cp.Disruption = patch[0].Disruption.Scale(u).
		Add(patch[1].Disruption.Scale(v)).
		Add(patch[2].Disruption.Scale(w))
	cp.Density = u*patch[0].Density + v*patch[1].Density + w*patch[2].Density
	return cp
}
