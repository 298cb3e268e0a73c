// Package manipulator turns pointer gestures into camera motion without depending on any
// renderer or camera object. The host feeds pixel-space events (GrabBegin, GrabUpdate,
// GrabEnd, Zoom) and periodically reads the camera back with LookAt.
//
// Two modes are available: ModeOrbit rotates around a pivot, ModeMap pans and zooms over
// a ground plane. A Manipulator is owned by a single goroutine; no locking is done.
package manipulator

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// Manipulator defines the interface shared by the orbit and map implementations.
// Eye and target are owned by the manipulator; hosts read them through LookAt.
type Manipulator interface {
	// Mode returns the mode selected at construction.
	//
	// Returns:
	//   - Mode: ModeOrbit or ModeMap
	Mode() Mode

	// SetConfig replaces the configuration. Zero-valued fields are replaced by defaults.
	//
	// Parameters:
	//   - cfg: the new configuration
	SetConfig(cfg Config)

	// Config returns the current configuration with defaults applied.
	//
	// Returns:
	//   - Config: the active configuration
	Config() Config

	// LookAt returns the camera's eye, target and an up vector.
	// The up vector is rederived each call from the configured home up vector so the
	// basis stays orthonormal. The gaze must not be parallel to the home up vector.
	//
	// Returns:
	//   - eye: world-space camera position
	//   - target: world-space look-at point
	//   - up: unit vector orthogonal to the gaze
	LookAt() (eye, target, up mgl32.Vec3)

	// Raycast casts the camera ray through a pixel center into the scene.
	// The configured RaycastFunc is tried first and the ground plane is the fallback.
	//
	// Parameters:
	//   - x: pixel column
	//   - y: pixel row
	//
	// Returns:
	//   - mgl32.Vec3: world-space hit point (zero on miss)
	//   - bool: true on hit
	Raycast(x, y int) (mgl32.Vec3, bool)

	// GrabBegin starts a grab session (the user starts dragging in the viewport).
	// Orbit mode rotates, or strafes when strafe is true. Map mode pans and ignores strafe
	// requests; it also does not start a session when the cursor misses the scene.
	//
	// Parameters:
	//   - x: pixel column of the cursor
	//   - y: pixel row of the cursor
	//   - strafe: orbit mode only; translate instead of rotate
	GrabBegin(x, y int, strafe bool)

	// GrabUpdate moves the camera relative to the state captured by GrabBegin.
	// Does nothing when no session is active.
	//
	// Parameters:
	//   - x: pixel column of the cursor
	//   - y: pixel row of the cursor
	GrabUpdate(x, y int)

	// GrabEnd ends the grab session. Safe to call when no session is active.
	GrabEnd()

	// Zoom dollies the camera along the viewing direction.
	//
	// Parameters:
	//   - x: pixel column of the point of interest
	//   - y: pixel row of the point of interest
	//   - scrollDelta: positive zooms in, negative zooms out
	Zoom(x, y int, scrollDelta float32)

	// CurrentBookmark snapshots the current view.
	//
	// Returns:
	//   - Bookmark: a bookmark tagged with this manipulator's mode
	CurrentBookmark() Bookmark

	// HomeBookmark returns the view described by the configured home properties.
	//
	// Returns:
	//   - Bookmark: a bookmark tagged with this manipulator's mode
	HomeBookmark() Bookmark

	// JumpToBookmark moves the camera to a bookmarked view.
	// Bookmarks from the other mode are rejected and leave the camera untouched.
	//
	// Parameters:
	//   - bookmark: a bookmark produced by a manipulator of the same mode
	JumpToBookmark(bookmark Bookmark)
}

// manipulatorBase holds the state and helpers common to every mode.
type manipulatorBase struct {
	mode   Mode
	cfg    Config
	eye    mgl32.Vec3
	target mgl32.Vec3
	logger zerolog.Logger
}

// Create builds a manipulator for the given mode.
//
// Parameters:
//   - mode: ModeOrbit or ModeMap
//   - cfg: the configuration; zero-valued fields receive defaults
//
// Returns:
//   - Manipulator: the newly created manipulator
func Create(mode Mode, cfg Config) Manipulator {
	return NewManipulator(mode, WithConfig(cfg))
}

// NewManipulator builds a manipulator for the given mode from functional options.
// Orbit mode starts with the eye at HomeTarget + HomeVector looking at HomeTarget.
// Map mode starts at its home bookmark.
//
// Parameters:
//   - mode: ModeOrbit or ModeMap (anything else falls back to orbit)
//   - options: functional options to configure the manipulator
//
// Returns:
//   - Manipulator: the newly created manipulator
func NewManipulator(mode Mode, options ...ManipulatorOption) Manipulator {
	if mode != ModeMap {
		mode = ModeOrbit
	}
	base := manipulatorBase{
		mode:   mode,
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(&base)
	}
	base.cfg = base.cfg.WithDefaults()
	base.logger = base.logger.With().Str("component", "manipulator").Stringer("mode", mode).Logger()

	if mode == ModeMap {
		return newMapManipulator(base)
	}
	return newOrbitManipulator(base)
}

func (m *manipulatorBase) Mode() Mode {
	return m.mode
}

func (m *manipulatorBase) SetConfig(cfg Config) {
	m.cfg = cfg.WithDefaults()
	m.logger.Debug().
		Ints("viewport", m.cfg.Viewport[:]).
		Float32("fov", m.cfg.FovDegrees).
		Stringer("fovDirection", m.cfg.FovDirection).
		Msg("configuration updated")
}

func (m *manipulatorBase) Config() Config {
	return m.cfg
}

func (m *manipulatorBase) LookAt() (eye, target, up mgl32.Vec3) {
	_, _, up = m.basis()
	return m.eye, m.target, up
}

func (m *manipulatorBase) Raycast(x, y int) (mgl32.Vec3, bool) {
	dir := m.rayDirection(x, y)
	t, ok := m.intersect(m.eye, dir)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return m.eye.Add(dir.Mul(t)), true
}

// basis derives the camera frame from eye, target and the home up vector.
// gaze points from eye to target; right and up are unit length and orthogonal to gaze.
func (m *manipulatorBase) basis() (gaze, right, up mgl32.Vec3) {
	gaze = m.target.Sub(m.eye).Normalize()
	right = gaze.Cross(m.cfg.HomeUpVector).Normalize()
	up = right.Cross(gaze)
	return gaze, right, up
}

// rayDirection returns the normalized world-space direction through the center of pixel (x, y).
// With a vertical fov axis the horizontal tangent is scaled by the aspect ratio; with a
// horizontal axis the vertical tangent is divided by it.
func (m *manipulatorBase) rayDirection(x, y int) mgl32.Vec3 {
	gaze, right, up := m.basis()
	width := float32(m.cfg.Viewport[0])
	height := float32(m.cfg.Viewport[1])

	// Remap the pixel into [-1, +1] and shift it to the pixel center.
	u := 2.0*(0.5+float32(x))/width - 1.0
	v := 2.0*(0.5+float32(y))/height - 1.0

	tangent := math32.Tan(m.cfg.fovRadians() / 2.0)
	aspect := m.cfg.aspect()

	dir := gaze
	if m.cfg.FovDirection == FovVertical {
		dir = dir.Add(right.Mul(tangent * u * aspect))
		dir = dir.Add(up.Mul(tangent * v))
	} else {
		dir = dir.Add(right.Mul(tangent * u))
		dir = dir.Add(up.Mul(tangent * v / aspect))
	}
	return dir.Normalize()
}

// intersect runs the user raycast, falling back to the ground plane when it is absent or misses.
func (m *manipulatorBase) intersect(origin, dir mgl32.Vec3) (float32, bool) {
	if m.cfg.Raycast != nil {
		if t, ok := m.cfg.Raycast(origin, dir); ok {
			return t, true
		}
	}
	return m.cfg.groundPlane().Intersect(origin, dir)
}
