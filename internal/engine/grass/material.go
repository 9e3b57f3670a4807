package grass

import (
	"github.com/verdantfx/grassfield/internal/engine/texture"
	"github.com/verdantfx/grassfield/pkg/math"
)

// Material holds the per-material configured inputs: the control textures
// with their UV transforms and the blade dimension scalars.
type Material struct {
	Albedo     *texture.Texture
	Growth     *texture.Texture
	Wind       *texture.Texture
	Disruption *texture.Texture

	AlbedoXF     texture.UVTransform
	GrowthXF     texture.UVTransform
	WindXF       texture.UVTransform
	DisruptionXF texture.UVTransform

	// Falloff is required; Placement is optional (nil = everywhere allowed).
	Falloff   *texture.Texture
	Placement *texture.Texture

	BladeWidth  float32
	BladeHeight float32

	MaxRange        float32 // density falloff radius in world units
	PlacementTiling float32 // world XZ to placement mask UV scale
}

// DefaultMaterial builds a material with procedural control textures, so the
// pipeline runs without any authored assets.
func DefaultMaterial() *Material {
	return &Material{
		Albedo:       texture.Solid(math.Vec4{X: 1, Y: 1, Z: 1, W: 1}),
		Growth:       texture.ValueNoise(128, 9001),
		Wind:         texture.ValueNoise(128, 4242),
		Disruption:   texture.Solid(math.Vec4{X: 0, Y: 1, Z: 0, W: 1}),
		AlbedoXF:     texture.IdentityUV(),
		GrowthXF:     texture.UVTransform{TilingU: 0.05, TilingV: 0.05},
		WindXF:       texture.UVTransform{TilingU: 0.03, TilingV: 0.03},
		DisruptionXF: texture.UVTransform{TilingU: 0.05, TilingV: 0.05},
		Falloff:      texture.RadialFalloff(129),
		Placement:    nil,
		BladeWidth:   0.06,
		BladeHeight:  0.8,
		MaxRange:     40,
		PlacementTiling: 0.05,
	}
}
