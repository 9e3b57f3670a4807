package grass

import (
	"testing"

	"github.com/verdantfx/grassfield/pkg/math"
)

func shadeFrame() *FrameParams {
	return &FrameParams{
		BaseColor: math.Vec4{X: 0.1, Y: 0.4, Z: 0.1, W: 1},
		TipColor:  math.Vec4{X: 0.5, Y: 0.8, Z: 0.2, W: 1},
	}
}

func testProbe() AmbientProbe {
	return AmbientProbe{
		Sky:    math.Vec3{X: 0.4, Y: 0.5, Z: 0.7},
		Ground: math.Vec3{X: 0.1, Y: 0.1, Z: 0.1},
	}
}

func TestShadeCutMasksTip(t *testing.T) {
	mat := DefaultMaterial()
	v := Vertex{
		Normal: math.Vec3{X: 1},
		UV:     math.Vec2{Y: 0.8},
		CutMod: 0.3,
	}
	got := ShadeFragment(v, mat, testProbe(), Features{}, shadeFrame())
	if got.Occlusion != 0 {
		t.Errorf("fragment above the cut line has occlusion %v, want 0", got.Occlusion)
	}

	v.UV.Y = 0.5
	got = ShadeFragment(v, mat, testProbe(), Features{}, shadeFrame())
	if got.Occlusion != 1 {
		t.Errorf("fragment below the cut line has occlusion %v, want 1", got.Occlusion)
	}
}

func TestShadeUncutBlade(t *testing.T) {
	mat := DefaultMaterial()
	v := Vertex{
		Normal: math.Vec3{X: 1},
		UV:     math.Vec2{Y: 1},
		CutMod: 1,
	}
	got := ShadeFragment(v, mat, testProbe(), Features{}, shadeFrame())
	if got.Occlusion != 1 {
		t.Errorf("uncut tip fragment has occlusion %v, want 1", got.Occlusion)
	}
}

func TestShadeColorGradient(t *testing.T) {
	mat := DefaultMaterial()
	frame := shadeFrame()

	root := ShadeFragment(Vertex{Normal: math.Vec3{X: 1}, UV: math.Vec2{Y: 0}, CutMod: 1}, mat, testProbe(), Features{}, frame)
	tip := ShadeFragment(Vertex{Normal: math.Vec3{X: 1}, UV: math.Vec2{Y: 1}, CutMod: 1}, mat, testProbe(), Features{}, frame)

	wantRoot := frame.BaseColor.Vec3()
	wantTip := frame.TipColor.Vec3()
	if root.Diffuse.Sub(wantRoot).Length() > 1e-5 {
		t.Errorf("root diffuse = %v, want %v", root.Diffuse, wantRoot)
	}
	if tip.Diffuse.Sub(wantTip).Length() > 1e-5 {
		t.Errorf("tip diffuse = %v, want %v", tip.Diffuse, wantTip)
	}
}

func TestShadeBurnConvergesToChar(t *testing.T) {
	mat := DefaultMaterial()
	v := Vertex{
		Normal:  math.Vec3{X: 1},
		UV:      math.Vec2{Y: 0.5},
		CutMod:  1,
		BurnMod: 1,
	}
	got := ShadeFragment(v, mat, testProbe(), Features{}, shadeFrame())
	if got.Diffuse.Sub(charTone).Length() > 1e-5 {
		t.Errorf("fully burnt diffuse = %v, want %v", got.Diffuse, charTone)
	}
}

func TestShadeWindHighlight(t *testing.T) {
	mat := DefaultMaterial()
	v := Vertex{
		Normal:   math.Vec3{X: 1},
		UV:       math.Vec2{Y: 1},
		CutMod:   1,
		WindBend: 1.5,
	}

	plain := ShadeFragment(v, mat, testProbe(), Features{}, shadeFrame())
	lit := ShadeFragment(v, mat, testProbe(), Features{WindHighlight: true}, shadeFrame())

	if lit.Diffuse.X <= plain.Diffuse.X {
		t.Error("wind highlight did not brighten the bending tip")
	}

	// The highlight fades toward the root.
	v.UV.Y = 0
	rootLit := ShadeFragment(v, mat, testProbe(), Features{WindHighlight: true}, shadeFrame())
	rootPlain := ShadeFragment(v, mat, testProbe(), Features{}, shadeFrame())
	if rootLit.Diffuse != rootPlain.Diffuse {
		t.Error("wind highlight leaked into the blade root")
	}
}

func TestShadeHemisphereAmbient(t *testing.T) {
	mat := DefaultMaterial()
	probe := testProbe()
	frame := shadeFrame()

	up := ShadeFragment(Vertex{Normal: math.Vec3{Y: 1}, UV: math.Vec2{Y: 0.5}, CutMod: 1}, mat, probe, Features{}, frame)
	down := ShadeFragment(Vertex{Normal: math.Vec3{Y: -1}, UV: math.Vec2{Y: 0.5}, CutMod: 1}, mat, probe, Features{}, frame)

	wantUp := probe.Sky.Mul(up.Diffuse)
	wantDown := probe.Ground.Mul(down.Diffuse)
	if up.Ambient.Sub(wantUp).Length() > 1e-5 {
		t.Errorf("up-facing ambient = %v, want %v", up.Ambient, wantUp)
	}
	if down.Ambient.Sub(wantDown).Length() > 1e-5 {
		t.Errorf("down-facing ambient = %v, want %v", down.Ambient, wantDown)
	}
}

func TestShadeNoSpecular(t *testing.T) {
	got := ShadeFragment(Vertex{Normal: math.Vec3{X: 1}, CutMod: 1}, DefaultMaterial(), testProbe(), AllFeatures(), shadeFrame())
	if got.Specular != (math.Vec3{}) || got.Smoothness != 0 {
		t.Errorf("grass emitted specular %v smoothness %v, want none", got.Specular, got.Smoothness)
	}
}
