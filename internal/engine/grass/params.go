package grass

import (
	"github.com/verdantfx/grassfield/pkg/math"
)

// FrameParams is the immutable per-frame parameter block published by the
// external feed. It is snapshotted once at frame start and passed by
// reference into every stage; stages never mutate it.
type FrameParams struct {
	Time float32

	WindDir      math.Vec3 // unit vector on the XZ plane
	WindSpeed    float32   // scroll speed for animated wind map sampling
	WindStrength float32   // scales bend angle, saturating at pi

	CameraPos     math.Vec3
	CameraForward math.Vec3 // unit vector
	CameraTarget  math.Vec3 // center of the density falloff region

	Density float32 // global tessellation multiplier

	BendMin float32 // perspective-bend shear range
	BendMax float32

	BaseColor math.Vec4 // blade color gradient endpoints
	TipColor  math.Vec4

	ViewProj math.Mat4
}

// Features are the behavioral toggles, fixed at pipeline construction so
// they cannot change mid-frame.
type Features struct {
	PerspectiveBend bool
	WindHighlight   bool
}

// AllFeatures enables every toggle.
func AllFeatures() Features {
	return Features{
		PerspectiveBend: true,
		WindHighlight:   true,
	}
}
