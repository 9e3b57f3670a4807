package renderer

import (
	"testing"

	"github.com/verdantfx/grassfield/internal/engine/grass"
	"github.com/verdantfx/grassfield/internal/engine/terrain"
	"github.com/verdantfx/grassfield/pkg/math"
)

func testScene(workers int) (*Renderer, *grass.FrameParams) {
	hm := terrain.BuildHeightmap(4, 4, 1.0, 0.4, 0.3, 7)
	mesh := terrain.BuildMesh(hm)
	mat := grass.DefaultMaterial()
	mat.MaxRange = 20

	r := New(Config{Width: 64, Height: 64, Workers: workers}, mat, mesh, grass.AllFeatures())

	center := hm.Center()
	eye := center.Add(math.Vec3{X: 3, Y: 2, Z: 3})
	view := math.LookAt(eye, center, math.Vec3{Y: 1})
	proj := math.Perspective(math.Pi/3, 1, 0.1, 100)

	frame := &grass.FrameParams{
		Time:          1.5,
		WindDir:       math.Vec3{X: 1},
		WindSpeed:     0.6,
		WindStrength:  0.2,
		CameraPos:     eye,
		CameraForward: center.Sub(eye).Normalize(),
		CameraTarget:  center,
		Density:       3,
		BendMin:       0.05,
		BendMax:       0.4,
		BaseColor:     math.Vec4{X: 0.05, Y: 0.22, Z: 0.03, W: 1},
		TipColor:      math.Vec4{X: 0.45, Y: 0.65, Z: 0.15, W: 1},
		ViewProj:      proj.Mul(view),
	}
	return r, frame
}

func TestRenderFrameProducesGeometry(t *testing.T) {
	r, frame := testScene(2)
	img := r.RenderFrame(frame)

	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("frame size = %v", img.Bounds())
	}
	if r.Stats().Triangles == 0 {
		t.Fatal("frame emitted no triangles")
	}

	covered := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if r.GBuffer().Covered(x, y) {
				covered++
			}
		}
	}
	if covered == 0 {
		t.Error("no pixel was covered by grass")
	}
}

func TestGeometryIndependentOfWorkerCount(t *testing.T) {
	single, frame := testScene(1)
	many, _ := testScene(5)

	single.RenderFrame(frame)
	many.RenderFrame(frame)

	a := single.Vertices()
	b := many.Vertices()
	if len(a) != len(b) {
		t.Fatalf("vertex counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vertex %d differs between worker counts", i)
		}
	}
}

func TestRenderFrameDeterministic(t *testing.T) {
	r, frame := testScene(3)
	first := r.RenderFrame(frame)
	second := r.RenderFrame(frame)

	if len(first.Pix) != len(second.Pix) {
		t.Fatal("image sizes differ")
	}
	for i := range first.Pix {
		if first.Pix[i] != second.Pix[i] {
			t.Fatalf("pixel byte %d differs between identical frames", i)
		}
	}
}

func TestRenderFrameRespectsDensityZero(t *testing.T) {
	r, frame := testScene(2)
	frame.Density = 0
	r.RenderFrame(frame)
	if got := r.Stats().Triangles; got != 0 {
		t.Errorf("zero global density produced %d triangles", got)
	}
}
