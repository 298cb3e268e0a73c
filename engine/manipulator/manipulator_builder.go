package manipulator

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// ManipulatorOption is a functional option for configuring a Manipulator.
// Options run before defaults are applied, so setting a field to its zero value keeps the default.
type ManipulatorOption func(*manipulatorBase)

// WithConfig replaces the whole configuration. Apply it before field-level options.
//
// Parameters:
//   - cfg: the configuration to use
//
// Returns:
//   - ManipulatorOption: functional option to set the configuration
func WithConfig(cfg Config) ManipulatorOption {
	return func(m *manipulatorBase) {
		m.cfg = cfg
	}
}

// WithViewport sets the viewport size in physical pixels.
//
// Parameters:
//   - width: viewport width in pixels
//   - height: viewport height in pixels
//
// Returns:
//   - ManipulatorOption: functional option to set the viewport
func WithViewport(width, height int) ManipulatorOption {
	return func(m *manipulatorBase) {
		m.cfg.Viewport = [2]int{width, height}
	}
}

// WithZoomSpeed sets the multiplier applied to scroll deltas.
//
// Parameters:
//   - speed: zoom speed multiplier
//
// Returns:
//   - ManipulatorOption: functional option to set the zoom speed
func WithZoomSpeed(speed float32) ManipulatorOption {
	return func(m *manipulatorBase) {
		m.cfg.ZoomSpeed = speed
	}
}

// WithHomeTarget sets the world-space point of interest.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - ManipulatorOption: functional option to set the home target
func WithHomeTarget(x, y, z float32) ManipulatorOption {
	return func(m *manipulatorBase) {
		m.cfg.HomeTarget = mgl32.Vec3{x, y, z}
	}
}

// WithHomeUpVector sets the orientation of "up" in the home position.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - ManipulatorOption: functional option to set the home up vector
func WithHomeUpVector(x, y, z float32) ManipulatorOption {
	return func(m *manipulatorBase) {
		m.cfg.HomeUpVector = mgl32.Vec3{x, y, z}
	}
}

// WithHomeVector sets the orbit-mode eye offset from the home target.
//
// Parameters:
//   - x, y, z: offset components
//
// Returns:
//   - ManipulatorOption: functional option to set the home vector
func WithHomeVector(x, y, z float32) ManipulatorOption {
	return func(m *manipulatorBase) {
		m.cfg.HomeVector = mgl32.Vec3{x, y, z}
	}
}

// WithGroundPlane sets the plane used by map mode and the raycast fallback.
//
// Parameters:
//   - nx, ny, nz: unit plane normal
//   - offset: signed distance of the plane from the origin along the normal
//
// Returns:
//   - ManipulatorOption: functional option to set the ground plane
func WithGroundPlane(nx, ny, nz, offset float32) ManipulatorOption {
	return func(m *manipulatorBase) {
		m.cfg.GroundPlane = mgl32.Vec4{nx, ny, nz, offset}
	}
}

// WithRaycast installs a scene intersector tried before the ground plane.
//
// Parameters:
//   - fn: the raycast closure
//
// Returns:
//   - ManipulatorOption: functional option to set the raycast function
func WithRaycast(fn RaycastFunc) ManipulatorOption {
	return func(m *manipulatorBase) {
		m.cfg.Raycast = fn
	}
}

// WithOrbitSpeed sets the radians-per-pixel rotation speed.
//
// Parameters:
//   - theta: horizontal speed
//   - phi: vertical speed
//
// Returns:
//   - ManipulatorOption: functional option to set the orbit speed
func WithOrbitSpeed(theta, phi float32) ManipulatorOption {
	return func(m *manipulatorBase) {
		m.cfg.OrbitSpeed = mgl32.Vec2{theta, phi}
	}
}

// WithStrafeSpeed sets the world-units-per-pixel strafe speed.
//
// Parameters:
//   - right: horizontal speed
//   - up: vertical speed
//
// Returns:
//   - ManipulatorOption: functional option to set the strafe speed
func WithStrafeSpeed(right, up float32) ManipulatorOption {
	return func(m *manipulatorBase) {
		m.cfg.StrafeSpeed = mgl32.Vec2{right, up}
	}
}

// WithFov sets the field of view and the axis it is measured along.
//
// Parameters:
//   - direction: FovVertical or FovHorizontal
//   - degrees: full field-of-view angle in degrees
//
// Returns:
//   - ManipulatorOption: functional option to set the field of view
func WithFov(direction Fov, degrees float32) ManipulatorOption {
	return func(m *manipulatorBase) {
		m.cfg.FovDirection = direction
		m.cfg.FovDegrees = degrees
	}
}

// WithFarPlane sets the far clipping distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - ManipulatorOption: functional option to set the far plane
func WithFarPlane(far float32) ManipulatorOption {
	return func(m *manipulatorBase) {
		m.cfg.FarPlane = far
	}
}

// WithMapExtent sets the map size in world units.
//
// Parameters:
//   - width: map width
//   - height: map height
//
// Returns:
//   - ManipulatorOption: functional option to set the map extent
func WithMapExtent(width, height float32) ManipulatorOption {
	return func(m *manipulatorBase) {
		m.cfg.MapExtent = mgl32.Vec2{width, height}
	}
}

// WithMapMinDistance sets how close the map-mode eye may get to the ground plane.
//
// Parameters:
//   - distance: minimum eye height above the plane (0 disables the check)
//
// Returns:
//   - ManipulatorOption: functional option to set the minimum map distance
func WithMapMinDistance(distance float32) ManipulatorOption {
	return func(m *manipulatorBase) {
		m.cfg.MapMinDistance = distance
	}
}

// WithLogger sets the logger used for debug tracing of grab sessions and bookmark jumps.
//
// Parameters:
//   - logger: the zerolog logger to use
//
// Returns:
//   - ManipulatorOption: functional option to set the logger
func WithLogger(logger zerolog.Logger) ManipulatorOption {
	return func(m *manipulatorBase) {
		m.logger = logger
	}
}
