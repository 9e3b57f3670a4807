package grass

import (
	"github.com/verdantfx/grassfield/pkg/math"
)

// Tessellate subdivides a patch into a uniform barycentric grid of
// sub-triangles. Edge and inside factors are all taken from control point 0
// scaled by the global density constant. Patches whose first control points
// differ in density can therefore produce mismatched shared edges; this
// asymmetry is a deliberate approximation carried over from the hardware
// tessellator configuration, not a bug to fix.
//
// A factor below 1 yields no sub-triangles, so zero-density regions cost
// nothing downstream.
func Tessellate(patch [3]ControlPoint, globalDensity float32, out []SubTriangle) []SubTriangle {
	factor := patch[0].Density * globalDensity
	level := int(math.Floor(factor))
	if level < 1 {
		return out
	}

	n := level
	inv := 1 / float32(n)

	// Lattice point (i, j) has barycentric weights (i/n, j/n, 1-(i+j)/n).
	corner := func(i, j int) ControlPoint {
		u := float32(i) * inv
		v := float32(j) * inv
		return lerpControlPoint(patch, u, v, 1-u-v)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n-i; j++ {
			out = append(out, SubTriangle{
				corner(i, j),
				corner(i+1, j),
				corner(i, j+1),
			})
			if j < n-i-1 {
				out = append(out, SubTriangle{
					corner(i+1, j),
					corner(i+1, j+1),
					corner(i, j+1),
				})
			}
		}
	}
	return out
}
