package grass

import (
	"github.com/verdantfx/grassfield/internal/engine/gbuffer"
	"github.com/verdantfx/grassfield/pkg/math"
)

// windHighlightStrength scales the specular-like catch on bending blades.
const windHighlightStrength = 0.12

// charTone is the color burnt grass converges to.
var charTone = math.Vec3{X: 0.05, Y: 0.04, Z: 0.03}

// AmbientProbe holds the indirect lighting environment pre-integrated into
// the ambient G-buffer target, so the resolve pass only adds direct light.
type AmbientProbe struct {
	Sky    math.Vec3 // hemisphere color above
	Ground math.Vec3 // hemisphere color below
}

// ShadeFragment computes the G-buffer sample for one covered blade fragment.
func ShadeFragment(v Vertex, mat *Material, probe AmbientProbe, features Features, frame *FrameParams) gbuffer.Sample {
	au, av := mat.AlbedoXF.Apply(v.UV.X, v.UV.Y)
	albedo := mat.Albedo.Sample(au, av)

	color := frame.BaseColor.Lerp(frame.TipColor, v.UV.Y).Mul(albedo).Vec3()

	// Vertical cut line from the disruption map: everything above the cut
	// height is masked out through the occlusion channel, not discarded.
	cutAlpha := float32(1)
	if v.CutMod < 1 && v.UV.Y > 1-v.CutMod {
		cutAlpha = 0
	}
	occlusion := albedo.W
	if cutAlpha < occlusion {
		occlusion = cutAlpha
	}

	if features.WindHighlight && v.WindBend > 0 {
		// Bending blades catch a highlight toward the tip.
		h := v.WindBend * windHighlightStrength * v.UV.Y
		color = color.Add(math.Vec3{X: h, Y: h, Z: h})
	}

	color = color.Lerp(charTone, v.BurnMod)

	// Hemisphere ambient pre-integration against the blade normal.
	skyWeight := 0.5 + 0.5*v.Normal.Y
	ambient := probe.Sky.Scale(skyWeight).
		Add(probe.Ground.Scale(1 - skyWeight)).
		Mul(color)

	return gbuffer.Sample{
		Diffuse:    color,
		Occlusion:  occlusion,
		Specular:   math.Vec3{},
		Smoothness: 0,
		Normal:     v.Normal,
		Ambient:    ambient,
	}
}
