// Package raster draws shaded triangles into a geometry buffer.
//
// It consumes clip-space vertices produced by the grass synthesizer,
// performs the perspective divide and viewport mapping itself, and
// invokes a fragment shader for every covered pixel that passes the
// depth test. Triangles are never backface culled because grass
// blades are two-sided.
package raster

import (
	"github.com/verdantfx/grassfield/internal/engine/gbuffer"
	"github.com/verdantfx/grassfield/internal/engine/grass"
	"github.com/verdantfx/grassfield/pkg/math"
)

// nearEpsilon rejects triangles that touch or cross the camera plane.
// Proper near-plane clipping is not worth the complexity for blades a
// few centimeters tall.
const nearEpsilon = 1e-5

// FragmentShader computes the surface response for one interpolated vertex.
type FragmentShader func(v grass.Vertex) gbuffer.Sample

// screenVertex is a post-divide vertex with viewport coordinates.
type screenVertex struct {
	X, Y  float32 // pixel coordinates, origin top-left
	Z     float32 // depth in [0,1]
	InvW  float32 // 1/clip.w, for perspective-correct interpolation
	Index int     // original vertex index
}

// Draw rasterizes verts (interpreted as a triangle list) into buf,
// calling shade once per covered pixel that wins the depth test.
func Draw(buf *gbuffer.Buffer, verts []grass.Vertex, shade FragmentShader) {
	for i := 0; i+2 < len(verts); i += 3 {
		drawTriangle(buf, verts[i:i+3], shade)
	}
}

func drawTriangle(buf *gbuffer.Buffer, tri []grass.Vertex, shade FragmentShader) {
	var sv [3]screenVertex
	w := float32(buf.Width)
	h := float32(buf.Height)

	for i := 0; i < 3; i++ {
		clip := tri[i].Clip
		if clip.W <= nearEpsilon {
			return
		}
		invW := 1.0 / clip.W
		ndcX := clip.X * invW
		ndcY := clip.Y * invW
		ndcZ := clip.Z * invW
		sv[i] = screenVertex{
			X:     (ndcX*0.5 + 0.5) * w,
			Y:     (1 - (ndcY*0.5 + 0.5)) * h,
			Z:     ndcZ*0.5 + 0.5,
			InvW:  invW,
			Index: i,
		}
	}

	area := edge(sv[0], sv[1], sv[2])
	if area == 0 {
		return
	}
	invArea := 1.0 / area

	minX := int(math.Floor(min3(sv[0].X, sv[1].X, sv[2].X)))
	maxX := int(math.Floor(max3(sv[0].X, sv[1].X, sv[2].X)))
	minY := int(math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y)))
	maxY := int(math.Floor(max3(sv[0].Y, sv[1].Y, sv[2].Y)))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= buf.Width {
		maxX = buf.Width - 1
	}
	if maxY >= buf.Height {
		maxY = buf.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5

			w0 := edgeAt(sv[1], sv[2], px, py) * invArea
			w1 := edgeAt(sv[2], sv[0], px, py) * invArea
			w2 := edgeAt(sv[0], sv[1], px, py) * invArea
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			depth := w0*sv[0].Z + w1*sv[1].Z + w2*sv[2].Z
			if depth < 0 || depth > 1 {
				continue
			}
			if depth >= buf.Depth[buf.Index(x, y)] {
				continue
			}

			frag := interpolate(tri, sv, w0, w1, w2)
			buf.Write(x, y, depth, shade(frag))
		}
	}
}

// interpolate blends the triangle attributes at the given screen-space
// barycentric weights, dividing through by the interpolated 1/w so
// attributes stay linear in world space rather than screen space.
func interpolate(tri []grass.Vertex, sv [3]screenVertex, w0, w1, w2 float32) grass.Vertex {
	iw0 := w0 * sv[0].InvW
	iw1 := w1 * sv[1].InvW
	iw2 := w2 * sv[2].InvW
	sum := iw0 + iw1 + iw2
	if sum != 0 {
		inv := 1.0 / sum
		iw0 *= inv
		iw1 *= inv
		iw2 *= inv
	}

	a, b, c := tri[0], tri[1], tri[2]
	return grass.Vertex{
		Position: a.Position.Scale(iw0).Add(b.Position.Scale(iw1)).Add(c.Position.Scale(iw2)),
		Normal:   a.Normal.Scale(iw0).Add(b.Normal.Scale(iw1)).Add(c.Normal.Scale(iw2)).Normalize(),
		UV:       a.UV.Scale(iw0).Add(b.UV.Scale(iw1)).Add(c.UV.Scale(iw2)),
		CutMod:   a.CutMod*iw0 + b.CutMod*iw1 + c.CutMod*iw2,
		BurnMod:  a.BurnMod*iw0 + b.BurnMod*iw1 + c.BurnMod*iw2,
		WindBend: a.WindBend*iw0 + b.WindBend*iw1 + c.WindBend*iw2,
	}
}

// edge computes twice the signed area of the triangle (a, b, c).
func edge(a, b, c screenVertex) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// edgeAt evaluates the edge function of segment (a, b) at point (px, py).
func edgeAt(a, b screenVertex, px, py float32) float32 {
	return (b.X-a.X)*(py-a.Y) - (b.Y-a.Y)*(px-a.X)
}

func min3(a, b, c float32) float32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c float32) float32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
