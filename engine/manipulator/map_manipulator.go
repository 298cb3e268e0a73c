package manipulator

import (
	"github.com/Carmen-Shannon/oxy-manip/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// mapManipulator looks along the ground plane normal and pans/zooms across the plane.
// Panning keeps the grabbed scene point under the cursor by scaling the far-plane motion
// down to the depth of the grabbed point.
type mapManipulator struct {
	manipulatorBase

	grabbing   bool
	grabScene  mgl32.Vec3
	grabFar    mgl32.Vec3
	grabEye    mgl32.Vec3
	grabTarget mgl32.Vec3
}

// Compile-time interface compliance check
var _ Manipulator = &mapManipulator{}

// maxZoomStep bounds the fraction of the eye-to-surface distance a single zoom may cover,
// so the eye never reaches or crosses the ground plane.
const maxZoomStep = 0.9

// newMapManipulator starts the camera at the home bookmark.
func newMapManipulator(base manipulatorBase) *mapManipulator {
	m := &mapManipulator{manipulatorBase: base}
	m.JumpToBookmark(m.HomeBookmark())
	return m
}

func (m *mapManipulator) GrabBegin(x, y int, strafe bool) {
	if strafe {
		return
	}
	scene, ok := m.Raycast(x, y)
	if !ok {
		m.logger.Debug().Int("x", x).Int("y", y).Msg("grab missed the scene")
		return
	}
	m.grabScene = scene
	m.grabFar = m.raycastFarPlane(m.eye, x, y)
	m.grabEye = m.eye
	m.grabTarget = m.target
	m.grabbing = true

	m.logger.Debug().Int("x", x).Int("y", y).Msg("grab begin")
}

func (m *mapManipulator) GrabUpdate(x, y int) {
	if !m.grabbing {
		return
	}
	ulen := m.grabScene.Sub(m.grabEye).Len()
	vlen := m.grabFar.Sub(m.grabScene).Len()
	translation := m.grabFar.Sub(m.raycastFarPlane(m.grabEye, x, y)).Mul(ulen / vlen)
	m.moveWithConstraints(m.grabEye.Add(translation), m.grabTarget.Add(translation))
}

func (m *mapManipulator) GrabEnd() {
	if m.grabbing {
		m.logger.Debug().Msg("grab end")
	}
	m.grabbing = false
}

func (m *mapManipulator) Zoom(x, y int, scrollDelta float32) {
	scene, ok := m.Raycast(x, y)
	if !ok {
		return
	}

	// Not normalized: the dolly is faster when further away from the surface.
	u := scene.Sub(m.eye)

	// Prevent getting stuck on the surface when zooming in.
	if scrollDelta > 0 && u.Len() < m.cfg.ZoomSpeed {
		m.logger.Debug().Float32("distance", u.Len()).Msg("zoom cancelled at surface")
		return
	}

	step := common.Clamp(m.cfg.ZoomSpeed*scrollDelta, -maxZoomStep, maxZoomStep)
	u = u.Mul(step)
	m.moveWithConstraints(m.eye.Add(u), m.target.Add(u))
}

func (m *mapManipulator) CurrentBookmark() Bookmark {
	dir := m.target.Sub(m.eye).Normalize()

	distance, ok := m.cfg.groundPlane().Intersect(m.eye, dir)
	if !ok {
		distance = m.target.Sub(m.eye).Len()
	}

	halfExtent := distance * math32.Tan(m.cfg.fovRadians()/2.0)
	focal := m.eye.Add(dir.Mul(distance))

	uvec, vvec := m.planeAxes()
	offset := focal.Sub(m.cfg.HomeTarget)
	return NewMapBookmark(halfExtent*2.0, mgl32.Vec2{uvec.Dot(offset), vvec.Dot(offset)})
}

func (m *mapManipulator) HomeBookmark() Bookmark {
	extent := m.cfg.MapExtent.Y() / 2.0
	if m.cfg.FovDirection == FovHorizontal {
		extent = m.cfg.MapExtent.X() / 2.0
	}
	return NewMapBookmark(extent, mgl32.Vec2{0, 0})
}

func (m *mapManipulator) JumpToBookmark(bookmark Bookmark) {
	if bookmark.Mode != ModeMap {
		m.logger.Warn().Stringer("bookmark", bookmark.Mode).Msg("ignoring bookmark from another mode")
		return
	}
	b := bookmark.Map
	targetToEye := m.cfg.GroundPlane.Vec3()

	halfExtent := b.Extent / 2.0
	distance := halfExtent / math32.Tan(m.cfg.fovRadians()/2.0)

	uvec, vvec := m.planeAxes()
	m.target = m.cfg.HomeTarget.Add(uvec.Mul(b.Center.X())).Add(vvec.Mul(b.Center.Y()))
	m.eye = m.target.Add(targetToEye.Mul(distance))
}

// planeAxes returns the unit 2D basis of the ground plane used for bookmark centers:
// u = homeUp x normal, v = normal x u.
func (m *mapManipulator) planeAxes() (u, v mgl32.Vec3) {
	normal := m.cfg.GroundPlane.Vec3()
	u = m.cfg.HomeUpVector.Cross(normal).Normalize()
	v = normal.Cross(u).Normalize()
	return u, v
}

// raycastFarPlane returns where the ray through pixel (x, y), cast from eye, meets the far
// clipping plane. Map mode never rotates, so the ray direction does not depend on eye.
func (m *mapManipulator) raycastFarPlane(eye mgl32.Vec3, x, y int) mgl32.Vec3 {
	gaze, _, _ := m.basis()
	dir := m.rayDirection(x, y)
	return eye.Add(dir.Mul(m.cfg.FarPlane / dir.Dot(gaze)))
}

// moveWithConstraints applies a new eye/target pair unless it would put the eye on or below
// the ground plane, or closer to it than MapMinDistance. The target is projected back onto
// the plane along the gaze.
func (m *mapManipulator) moveWithConstraints(eye, target mgl32.Vec3) {
	plane := m.cfg.groundPlane()
	height := plane.SignedDistance(eye)
	if height <= 0 || height < m.cfg.MapMinDistance {
		m.logger.Debug().Float32("height", height).Msg("move rejected below minimum distance")
		return
	}
	dir := target.Sub(eye).Normalize()
	if distance, ok := plane.Intersect(eye, dir); ok {
		target = eye.Add(dir.Mul(distance))
	}
	m.eye = eye
	m.target = target
}
