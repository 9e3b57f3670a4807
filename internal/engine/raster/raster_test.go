package raster

import (
	"testing"

	"github.com/verdantfx/grassfield/internal/engine/gbuffer"
	"github.com/verdantfx/grassfield/internal/engine/grass"
	"github.com/verdantfx/grassfield/pkg/math"
)

func ndcVertex(x, y, z float32) grass.Vertex {
	return grass.Vertex{
		Clip:   math.Vec4{X: x, Y: y, Z: z, W: 1},
		Normal: math.Vec3{Y: 1},
		UV:     math.Vec2{},
	}
}

func flatShader(v grass.Vertex) gbuffer.Sample {
	return gbuffer.Sample{
		Diffuse:   math.Vec3{X: 1},
		Occlusion: 1,
		Normal:    v.Normal,
	}
}

func TestDrawCoverage(t *testing.T) {
	buf := gbuffer.New(8, 8, false)

	// Lower-left half of the screen.
	tri := []grass.Vertex{
		ndcVertex(-1, -1, 0),
		ndcVertex(1, -1, 0),
		ndcVertex(-1, 1, 0),
	}
	Draw(buf, tri, flatShader)

	if !buf.Covered(1, 6) {
		t.Error("pixel inside the triangle not covered")
	}
	if buf.Covered(6, 1) {
		t.Error("pixel outside the triangle covered")
	}
	if d := buf.Depth[buf.Index(1, 6)]; math.Abs(d-0.5) > 1e-5 {
		t.Errorf("covered depth = %v, want 0.5", d)
	}
}

func TestDrawBothWindings(t *testing.T) {
	// Blades are two-sided, so the mirrored winding must rasterize too.
	ccw := []grass.Vertex{
		ndcVertex(-1, -1, 0),
		ndcVertex(1, -1, 0),
		ndcVertex(-1, 1, 0),
	}
	cw := []grass.Vertex{ccw[0], ccw[2], ccw[1]}

	a := gbuffer.New(8, 8, false)
	b := gbuffer.New(8, 8, false)
	Draw(a, ccw, flatShader)
	Draw(b, cw, flatShader)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if a.Covered(x, y) != b.Covered(x, y) {
				t.Fatalf("winding changed coverage at (%d,%d)", x, y)
			}
		}
	}
}

func TestDrawDepthOrdering(t *testing.T) {
	buf := gbuffer.New(8, 8, false)

	far := []grass.Vertex{
		ndcVertex(-1, -1, 0.5),
		ndcVertex(3, -1, 0.5),
		ndcVertex(-1, 3, 0.5),
	}
	near := []grass.Vertex{
		ndcVertex(-1, -1, -0.5),
		ndcVertex(3, -1, -0.5),
		ndcVertex(-1, 3, -0.5),
	}

	red := func(v grass.Vertex) gbuffer.Sample {
		return gbuffer.Sample{Diffuse: math.Vec3{X: 1}, Occlusion: 1, Normal: math.Vec3{Y: 1}}
	}
	green := func(v grass.Vertex) gbuffer.Sample {
		return gbuffer.Sample{Diffuse: math.Vec3{Y: 1}, Occlusion: 1, Normal: math.Vec3{Y: 1}}
	}

	Draw(buf, far, red)
	Draw(buf, near, green)

	if buf.Diffuse[buf.Index(4, 4)].Y != 1 {
		t.Error("nearer triangle lost the depth test")
	}

	// Drawing the far one again must not overwrite.
	Draw(buf, far, red)
	if buf.Diffuse[buf.Index(4, 4)].Y != 1 {
		t.Error("farther triangle overwrote a nearer fragment")
	}
}

func TestDrawRejectsBehindCamera(t *testing.T) {
	buf := gbuffer.New(8, 8, false)
	tri := []grass.Vertex{
		{Clip: math.Vec4{X: 0, Y: 0, Z: 0, W: -1}},
		{Clip: math.Vec4{X: 1, Y: 0, Z: 0, W: 1}},
		{Clip: math.Vec4{X: 0, Y: 1, Z: 0, W: 1}},
	}
	Draw(buf, tri, flatShader)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if buf.Covered(x, y) {
				t.Fatalf("triangle crossing the camera plane rasterized at (%d,%d)", x, y)
			}
		}
	}
}

func TestDrawInterpolatesUV(t *testing.T) {
	buf := gbuffer.New(16, 16, false)

	a := ndcVertex(-1, -1, 0)
	a.UV = math.Vec2{X: 0, Y: 0}
	b := ndcVertex(1, -1, 0)
	b.UV = math.Vec2{X: 1, Y: 0}
	c := ndcVertex(-1, 1, 0)
	c.UV = math.Vec2{X: 0, Y: 1}

	var minU, maxU float32 = 2, -1
	Draw(buf, []grass.Vertex{a, b, c}, func(v grass.Vertex) gbuffer.Sample {
		if v.UV.X < 0 || v.UV.X > 1 || v.UV.Y < 0 || v.UV.Y > 1 {
			t.Errorf("interpolated UV %v escaped the triangle", v.UV)
		}
		if v.UV.X < minU {
			minU = v.UV.X
		}
		if v.UV.X > maxU {
			maxU = v.UV.X
		}
		return gbuffer.Sample{Occlusion: 1, Normal: v.Normal}
	})

	if maxU-minU < 0.5 {
		t.Errorf("UV barely varied across the triangle: [%v, %v]", minU, maxU)
	}
}

func TestDrawIgnoresIncompleteTriangle(t *testing.T) {
	buf := gbuffer.New(4, 4, false)
	verts := []grass.Vertex{ndcVertex(-1, -1, 0), ndcVertex(1, -1, 0)}
	Draw(buf, verts, flatShader) // must not panic or draw
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if buf.Covered(x, y) {
				t.Fatal("incomplete triangle produced coverage")
			}
		}
	}
}
