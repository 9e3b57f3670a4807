package grass

import (
	"github.com/verdantfx/grassfield/pkg/math"
)

// AttributeSampler attaches control map samples to base mesh vertices.
// Sampling is deterministic: the same (worldPos, frame) input always yields
// the same attributes.
type AttributeSampler struct {
	Material *Material
}

// Sample returns the growth height, wind direction and disruption values for
// a world-space position.
func (s *AttributeSampler) Sample(worldPos math.Vec3, frame *FrameParams) Attributes {
	return Attributes{
		GrowthHeight: s.sampleGrowthHeight(worldPos),
		WindDir:      s.sampleWindDir(worldPos, frame),
		Disruption:   s.sampleDisruption(worldPos),
	}
}

// sampleGrowthHeight returns baseHeight scaled by the growth map's red
// channel, addressed in terrain space through the material's UV transform.
func (s *AttributeSampler) sampleGrowthHeight(worldPos math.Vec3) float32 {
	u, v := s.Material.GrowthXF.Apply(worldPos.X, worldPos.Z)
	return s.Material.BladeHeight * s.Material.Growth.Sample(u, v).X
}

// sampleWindDir scrolls the wind map along the global wind heading over time
// and decodes the sampled RGB into a world direction: R and G remap from
// [0,1] to [-1,1] onto X and Z, B swaps onto Y.
func (s *AttributeSampler) sampleWindDir(worldPos math.Vec3, frame *FrameParams) math.Vec3 {
	scroll := frame.WindDir.Normalize().Scale(frame.Time * frame.WindSpeed)
	u, v := s.Material.WindXF.Apply(worldPos.X+scroll.X, worldPos.Z+scroll.Z)
	c := s.Material.Wind.Sample(u, v)

	dir := math.Vec3{
		X: c.X*2 - 1,
		Y: c.Z,
		Z: c.Y*2 - 1,
	}
	return dir.Normalize()
}

// sampleDisruption is a straight 4-channel lookup, no remapping.
func (s *AttributeSampler) sampleDisruption(worldPos math.Vec3) math.Vec4 {
	u, v := s.Material.DisruptionXF.Apply(worldPos.X, worldPos.Z)
	return s.Material.Disruption.Sample(u, v)
}
