package lighting

import (
	"testing"

	"github.com/verdantfx/grassfield/pkg/math"
)

func TestAttenuationFalloff(t *testing.T) {
	l := PointLight{
		Position:  math.Vec3{},
		Color:     math.Vec3{X: 1},
		Range:     10,
		Intensity: 2,
	}

	if got := l.Attenuation(math.Vec3{}); got != 2 {
		t.Errorf("attenuation at the light = %v, want intensity 2", got)
	}
	if got := l.Attenuation(math.Vec3{X: 10}); got != 0 {
		t.Errorf("attenuation at range = %v, want 0", got)
	}
	if got := l.Attenuation(math.Vec3{X: 25}); got != 0 {
		t.Errorf("attenuation beyond range = %v, want 0", got)
	}

	near := l.Attenuation(math.Vec3{X: 2})
	far := l.Attenuation(math.Vec3{X: 8})
	if near <= far {
		t.Errorf("attenuation not decreasing: %v at 2, %v at 8", near, far)
	}
}

func TestAttenuationDegenerateRange(t *testing.T) {
	l := PointLight{Intensity: 1}
	if got := l.Attenuation(math.Vec3{}); got != 0 {
		t.Errorf("zero-range light attenuation = %v, want 0", got)
	}
}

func TestSetAddLimits(t *testing.T) {
	s := NewSet()
	for i := 0; i < MaxPointLights; i++ {
		if !s.Add(PointLight{Position: math.Vec3{X: float32(i)}, Color: math.Vec3{X: 1}, Range: 5, Intensity: 1}) {
			t.Fatalf("add %d rejected before the limit", i)
		}
	}
	if s.Add(PointLight{Range: 5, Intensity: 1}) {
		t.Error("add beyond the limit accepted")
	}
	if len(s.Lights) != MaxPointLights {
		t.Errorf("set holds %d lights, want %d", len(s.Lights), MaxPointLights)
	}

	s.Clear()
	if len(s.Lights) != 0 {
		t.Error("Clear left lights behind")
	}
}

func TestSetAddSanitizes(t *testing.T) {
	s := NewSet()
	s.Add(PointLight{Color: math.Vec3{X: 5, Y: -1, Z: 0.5}})

	l := s.Lights[0]
	if l.Color != (math.Vec3{X: 1, Y: 0, Z: 0.5}) {
		t.Errorf("color not clamped: %v", l.Color)
	}
	if l.Range <= 0 || l.Intensity <= 0 {
		t.Errorf("degenerate range/intensity not defaulted: %v / %v", l.Range, l.Intensity)
	}
}

func TestSunFromAngles(t *testing.T) {
	noon := SunFromAngles(0, 90, math.Vec3{X: 1, Y: 1, Z: 1})
	if noon.Direction.Sub(math.Vec3{Y: 1}).Length() > 1e-5 {
		t.Errorf("zenith sun direction = %v, want +Y", noon.Direction)
	}

	horizon := SunFromAngles(0, 0, math.Vec3{X: 1, Y: 1, Z: 1})
	if math.Abs(horizon.Direction.Y) > 1e-6 {
		t.Errorf("horizon sun has elevation: %v", horizon.Direction)
	}
	if d := math.Abs(horizon.Direction.Length() - 1); d > 1e-5 {
		t.Errorf("sun direction not unit length, off by %v", d)
	}
}
