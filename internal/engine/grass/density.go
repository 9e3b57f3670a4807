package grass

import (
	"github.com/verdantfx/grassfield/pkg/math"
)

// forwardBias is the fraction of the max falloff range the density target is
// pushed ahead of the camera, so grass directly behind the camera is not
// fully penalized.
const forwardBias = 0.33

// DensityController computes the tessellation density multiplier per control
// vertex. Density must be evaluated once per control vertex, not per blade:
// shared patch edges need matching tessellation factors.
type DensityController struct {
	Material *Material
}

// Factor returns the density multiplier in [0,1] for a world position.
func (d *DensityController) Factor(worldPos math.Vec3, frame *FrameParams) float32 {
	target := frame.CameraTarget.Add(frame.CameraForward.Scale(forwardBias * d.Material.MaxRange))

	delta := worldPos.XZ().Sub(target.XZ())
	ratio := math.Saturate(delta.Length() / d.Material.MaxRange)
	dir := delta.Normalize()

	// Direction on the unit circle scaled by the length ratio, remapped to
	// [0,1]: the falloff map is a painted disk centered on the target.
	u := 0.5 + 0.5*dir.X*ratio
	v := 0.5 + 0.5*dir.Y*ratio
	factor := d.Material.Falloff.Sample(u, v).X

	if d.Material.Placement != nil {
		pu := worldPos.X * d.Material.PlacementTiling
		pv := worldPos.Z * d.Material.PlacementTiling
		factor *= d.Material.Placement.Sample(pu, pv).X
	}

	return math.Saturate(factor)
}
