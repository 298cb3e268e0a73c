package manipulator

import (
	"github.com/Carmen-Shannon/oxy-manip/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxPhi is the largest elevation an orbit drag can reach, just short of the pole.
const MaxPhi = common.Pi/2 - 0.001

// grabState tracks what an orbit grab session is doing.
type grabState int

const (
	grabInactive grabState = iota
	grabRotating
	grabStrafing
)

// orbitManipulator keeps the eye on a sphere around a pivot.
// Zooming moves eye and target together; passing through the pivot sets flipped so the
// camera keeps looking the same way, now facing back toward the pivot.
type orbitManipulator struct {
	manipulatorBase

	pivot   mgl32.Vec3
	flipped bool

	grabState    grabState
	grabPivot    mgl32.Vec3
	grabEye      mgl32.Vec3
	grabTarget   mgl32.Vec3
	grabBookmark Bookmark
	grabWinX     int
	grabWinY     int
}

// Compile-time interface compliance check
var _ Manipulator = &orbitManipulator{}

// newOrbitManipulator places the eye at HomeTarget + HomeVector, looking at HomeTarget.
func newOrbitManipulator(base manipulatorBase) *orbitManipulator {
	m := &orbitManipulator{manipulatorBase: base}
	m.eye = m.cfg.HomeTarget.Add(m.cfg.HomeVector)
	m.target = m.cfg.HomeTarget
	m.pivot = m.cfg.HomeTarget
	return m
}

func (m *orbitManipulator) GrabBegin(x, y int, strafe bool) {
	m.grabState = grabRotating
	if strafe {
		m.grabState = grabStrafing
	}
	m.grabPivot = m.pivot
	m.grabEye = m.eye
	m.grabTarget = m.target
	m.grabBookmark = m.CurrentBookmark()
	m.grabWinX = x
	m.grabWinY = y

	m.logger.Debug().Int("x", x).Int("y", y).Bool("strafe", strafe).Msg("grab begin")
}

func (m *orbitManipulator) GrabUpdate(x, y int) {
	delx := float32(m.grabWinX - x)
	dely := float32(m.grabWinY - y)

	switch m.grabState {
	case grabRotating:
		bookmark := m.CurrentBookmark()
		theta := delx * m.cfg.OrbitSpeed.X()
		phi := dely * m.cfg.OrbitSpeed.Y()

		bookmark.Orbit.Phi = common.Clamp(m.grabBookmark.Orbit.Phi+phi, -MaxPhi, MaxPhi)
		bookmark.Orbit.Theta = m.grabBookmark.Orbit.Theta + theta
		m.JumpToBookmark(bookmark)

	case grabStrafing:
		_, right, up := m.basis()
		dx := delx * m.cfg.StrafeSpeed.X()
		dy := dely * m.cfg.StrafeSpeed.Y()
		movement := up.Mul(dy).Add(right.Mul(dx))

		m.pivot = m.grabPivot.Add(movement)
		m.eye = m.grabEye.Add(movement)
		m.target = m.grabTarget.Add(movement)
	}
}

func (m *orbitManipulator) GrabEnd() {
	if m.grabState != grabInactive {
		m.logger.Debug().Msg("grab end")
	}
	m.grabState = grabInactive
}

func (m *orbitManipulator) Zoom(x, y int, scrollDelta float32) {
	gaze, _, _ := m.basis()
	movement := gaze.Mul(m.cfg.ZoomSpeed * scrollDelta)
	v0 := m.pivot.Sub(m.eye)
	m.eye = m.eye.Add(movement)
	m.target = m.target.Add(movement)
	v1 := m.pivot.Sub(m.eye)

	// The camera moved past the point of interest.
	if v0.Dot(v1) < 0 {
		m.flipped = !m.flipped
		m.logger.Debug().Bool("flipped", m.flipped).Msg("zoomed through pivot")
	}
}

func (m *orbitManipulator) CurrentBookmark() Bookmark {
	pivotToEye := m.eye.Sub(m.pivot)
	d := pivotToEye.Len()
	dir := pivotToEye.Mul(1 / d)

	distance := d
	if m.flipped {
		distance = -d
	}
	return NewOrbitBookmark(
		math32.Asin(common.Clamp(dir.Y(), -1, 1)),
		math32.Atan2(dir.X(), dir.Z()),
		distance,
		m.pivot,
	)
}

func (m *orbitManipulator) HomeBookmark() Bookmark {
	return NewOrbitBookmark(0, 0, m.cfg.HomeVector.Len(), m.cfg.HomeTarget)
}

func (m *orbitManipulator) JumpToBookmark(bookmark Bookmark) {
	if bookmark.Mode != ModeOrbit {
		m.logger.Warn().Stringer("bookmark", bookmark.Mode).Msg("ignoring bookmark from another mode")
		return
	}
	b := bookmark.Orbit
	m.pivot = b.Pivot

	sinPhi, cosPhi := math32.Sincos(b.Phi)
	sinTheta, cosTheta := math32.Sincos(b.Theta)
	dir := mgl32.Vec3{sinTheta * cosPhi, sinPhi, cosTheta * cosPhi}

	m.eye = m.pivot.Add(dir.Mul(math32.Abs(b.Distance)))
	m.flipped = b.Distance < 0
	if m.flipped {
		m.target = m.eye.Add(dir)
	} else {
		m.target = m.eye.Sub(dir)
	}
}
