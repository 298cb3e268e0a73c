package manipulator

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-manip/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Default values substituted for zero-valued Config fields.
const (
	DefaultZoomSpeed  float32 = 0.01
	DefaultFovDegrees float32 = 33
	DefaultFarPlane   float32 = 5000
)

// Default vector values substituted for zero-valued Config fields.
var (
	DefaultHomeUpVector = mgl32.Vec3{0, 1, 0}
	DefaultGroundPlane  = mgl32.Vec4{0, 0, 1, 0}
	DefaultHomeVector   = mgl32.Vec3{0, 0, 1}
	DefaultOrbitSpeed   = mgl32.Vec2{0.01, 0.01}
	DefaultStrafeSpeed  = mgl32.Vec2{0.01, 0.01}
	DefaultMapExtent    = mgl32.Vec2{512, 512}
)

// Fov selects the axis along which the field-of-view angle is measured.
type Fov int

const (
	// FovVertical measures the field of view top to bottom; widening the viewport reveals more horizontally.
	FovVertical Fov = iota
	// FovHorizontal measures the field of view left to right; widening the viewport reveals more vertically.
	FovHorizontal
)

func (f Fov) String() string {
	switch f {
	case FovVertical:
		return "vertical"
	case FovHorizontal:
		return "horizontal"
	}
	return fmt.Sprintf("Fov(%d)", int(f))
}

// ParseFov converts "vertical" or "horizontal" (case-insensitive) into a Fov.
//
// Parameters:
//   - s: the axis name
//
// Returns:
//   - Fov: the parsed axis
//   - error: error if the name is not recognized
func ParseFov(s string) (Fov, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vertical":
		return FovVertical, nil
	case "horizontal":
		return FovHorizontal, nil
	}
	return FovVertical, fmt.Errorf("unknown fov direction %q", s)
}

// RaycastFunc intersects a ray with the host's scene.
// Any context the host needs is captured by the closure.
//
// Parameters:
//   - origin: world-space ray origin (the eye)
//   - dir: normalized world-space ray direction
//
// Returns:
//   - float32: ray parameter t >= 0 of the closest hit
//   - bool: true on hit
type RaycastFunc func(origin, dir mgl32.Vec3) (t float32, ok bool)

// Config holds the user-controlled properties of a manipulator.
// The manipulator never changes these; it only reads them. Fields left at their
// zero value are replaced with defaults by WithDefaults, so zero and "unset" cannot
// be told apart.
type Config struct {
	// Viewport is the width and height of the viewing area in physical pixels.
	Viewport [2]int

	// ZoomSpeed is multiplied with the scroll delta to compute the dolly distance.
	ZoomSpeed float32

	// HomeTarget is the world-space position of interest.
	HomeTarget mgl32.Vec3

	// HomeUpVector is the orientation of "up" when in the home position.
	HomeUpVector mgl32.Vec3

	// GroundPlane is the plane equation (normal xyz, offset w) used by map mode and the raycast fallback.
	GroundPlane mgl32.Vec4

	// Raycast is an optional scene intersector. The ground plane is tried when it misses or is nil.
	Raycast RaycastFunc

	// HomeVector is the eye offset from HomeTarget in orbit mode.
	HomeVector mgl32.Vec3

	// OrbitSpeed converts pixel deltas to radians (x: theta, y: phi).
	OrbitSpeed mgl32.Vec2

	// StrafeSpeed converts pixel deltas to world units (x: right, y: up).
	StrafeSpeed mgl32.Vec2

	// FovDirection selects the axis FovDegrees is measured along.
	FovDirection Fov

	// FovDegrees is the full field-of-view angle.
	FovDegrees float32

	// FarPlane is the far clipping distance.
	FarPlane float32

	// MapExtent is the width and height of the map in world units.
	MapExtent mgl32.Vec2

	// MapMinDistance is the closest the map-mode eye may get to the ground plane. Zero disables the check.
	MapMinDistance float32
}

// WithDefaults returns a copy of c with every zero-valued defaultable field replaced.
// Viewport, HomeTarget, Raycast, FovDirection and MapMinDistance pass through unchanged.
//
// Returns:
//   - Config: the defaulted configuration
func (c Config) WithDefaults() Config {
	c.ZoomSpeed = common.Coalesce(c.ZoomSpeed, DefaultZoomSpeed)
	c.HomeUpVector = common.Coalesce(c.HomeUpVector, DefaultHomeUpVector)
	c.GroundPlane = common.Coalesce(c.GroundPlane, DefaultGroundPlane)
	c.HomeVector = common.Coalesce(c.HomeVector, DefaultHomeVector)
	c.OrbitSpeed = common.Coalesce(c.OrbitSpeed, DefaultOrbitSpeed)
	c.StrafeSpeed = common.Coalesce(c.StrafeSpeed, DefaultStrafeSpeed)
	c.FovDegrees = common.Coalesce(c.FovDegrees, DefaultFovDegrees)
	c.FarPlane = common.Coalesce(c.FarPlane, DefaultFarPlane)
	c.MapExtent = common.Coalesce(c.MapExtent, DefaultMapExtent)
	return c
}

// fovRadians returns the configured field of view in radians.
func (c Config) fovRadians() float32 {
	return common.DegToRad(c.FovDegrees)
}

// groundPlane returns the configured ground plane.
func (c Config) groundPlane() common.Plane {
	return common.PlaneFromVec4(c.GroundPlane)
}

// aspect returns the viewport aspect ratio (width / height).
func (c Config) aspect() float32 {
	return float32(c.Viewport[0]) / float32(c.Viewport[1])
}
