// Package camera provides the orbit camera used to frame the grass field.
package camera

import (
	"github.com/verdantfx/grassfield/pkg/math"
)

// OrbitCamera orbits around a center point on the terrain.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Projection
	FOV  float32 // vertical field of view, radians
	Near float32
	Far  float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera with defaults sized for a
// field a few tens of meters across.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        8.0,
		RotationX:       0.35,
		RotationY:       0.0,
		MinDistance:     0.5,
		MaxDistance:     120.0,
		MinPitch:        0.05,
		MaxPitch:        1.5,
		FOV:             math.Pi / 3,
		Near:            0.1,
		Far:             500.0,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)

	return math.Vec3{
		X: c.Center.X + x,
		Y: c.Center.Y + y,
		Z: c.Center.Z + z,
	}
}

// Target returns the point the camera looks at.
func (c *OrbitCamera) Target() math.Vec3 {
	return c.Center
}

// Forward returns the unit view direction.
func (c *OrbitCamera) Forward() math.Vec3 {
	return c.Center.Sub(c.Position()).Normalize()
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// ProjMatrix returns the perspective projection for the given aspect ratio.
func (c *OrbitCamera) ProjMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// ViewProj returns the combined projection * view matrix.
func (c *OrbitCamera) ViewProj(aspect float32) math.Mat4 {
	return c.ProjMatrix(aspect).Mul(c.ViewMatrix())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	// Clamp pitch
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// HandleMovement pans the center point based on keyboard input.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.02

	dirX := math.Sin(c.RotationY)
	dirZ := math.Cos(c.RotationY)

	rightX := math.Cos(c.RotationY)
	rightZ := -math.Sin(c.RotationY)

	c.Center.X += (-dirX*forward + rightX*right) * speed
	c.Center.Z += (-dirZ*forward + rightZ*right) * speed
	c.Center.Y += up * speed
}
