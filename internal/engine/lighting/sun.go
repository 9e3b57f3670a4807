// Package lighting provides the light sources consumed by the deferred
// resolve pass.
package lighting

import (
	"github.com/verdantfx/grassfield/pkg/math"
)

// Sun is the directional light.
type Sun struct {
	Direction math.Vec3 // normalized, pointing toward the sun
	Color     math.Vec3
}

// SunFromAngles converts longitude/latitude angles to a sun light.
// Longitude is rotation around Y (0-360 degrees), latitude is elevation from
// the horizon (0-90 degrees).
func SunFromAngles(longitude, latitude float32, color math.Vec3) Sun {
	lonRad := longitude * math.Pi / 180.0
	latRad := latitude * math.Pi / 180.0

	return Sun{
		Direction: math.Vec3{
			X: math.Cos(latRad) * math.Sin(lonRad),
			Y: math.Sin(latRad),
			Z: math.Cos(latRad) * math.Cos(lonRad),
		},
		Color: color,
	}
}
