package lighting

import (
	"github.com/verdantfx/grassfield/pkg/math"
)

// MaxPointLights bounds the light set evaluated per pixel in the resolve
// pass.
const MaxPointLights = 32

// PointLight is a point light source with range falloff.
type PointLight struct {
	Position  math.Vec3
	Color     math.Vec3 // 0-1 range
	Range     float32   // falloff radius
	Intensity float32
}

// Attenuation returns the light's falloff factor at a world position:
// smooth quadratic falloff reaching zero at Range.
func (l PointLight) Attenuation(p math.Vec3) float32 {
	if l.Range <= 0 {
		return 0
	}
	d := l.Position.Distance(p)
	t := math.Saturate(1 - d/l.Range)
	return t * t * l.Intensity
}

// Set holds the bounded point light collection for one frame.
type Set struct {
	Lights []PointLight
}

// NewSet creates an empty light set.
func NewSet() *Set {
	return &Set{Lights: make([]PointLight, 0, MaxPointLights)}
}

// Clear removes all lights.
func (s *Set) Clear() {
	s.Lights = s.Lights[:0]
}

// Add appends a light, clamping color into range and defaulting degenerate
// parameters. Returns false when the set is full.
func (s *Set) Add(light PointLight) bool {
	if len(s.Lights) >= MaxPointLights {
		return false
	}

	light.Color = math.Vec3{
		X: math.Saturate(light.Color.X),
		Y: math.Saturate(light.Color.Y),
		Z: math.Saturate(light.Color.Z),
	}
	if light.Range <= 0 {
		light.Range = 10
	}
	if light.Intensity <= 0 {
		light.Intensity = 1
	}

	s.Lights = append(s.Lights, light)
	return true
}
