package manipulator

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrbit_HomeBookmark(t *testing.T) {
	cfg := sceneConfig()
	cfg.HomeTarget = mgl32.Vec3{1, 2, 3}
	m := Create(ModeOrbit, cfg)

	home := m.HomeBookmark()
	require.Equal(t, ModeOrbit, home.Mode)
	assert.Zero(t, home.Orbit.Phi)
	assert.Zero(t, home.Orbit.Theta)
	assert.InDelta(t, 5, home.Orbit.Distance, 1e-6)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, home.Orbit.Pivot)
}

func TestOrbit_GrabRotateScenario(t *testing.T) {
	m := Create(ModeOrbit, sceneConfig())

	m.GrabBegin(400, 300, false)
	m.GrabUpdate(450, 300)
	m.GrabEnd()

	b := m.CurrentBookmark()
	assert.InDelta(t, 0.5, math32.Abs(b.Orbit.Theta), 1e-4)
	assert.InDelta(t, 0, b.Orbit.Phi, 1e-4)
	assert.InDelta(t, 5, b.Orbit.Distance, 1e-4)

	eye, _, _ := m.LookAt()
	assert.InDelta(t, 5, eye.Len(), 1e-4)
	assert.InDelta(t, 0, eye.Y(), 1e-4)
}

func TestOrbit_PhiClamp(t *testing.T) {
	tests := []struct {
		name string
		dy   int
		want float32
	}{
		{name: "toward +phi", dy: -100000, want: MaxPhi},
		{name: "toward -phi", dy: 100000, want: -MaxPhi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Create(ModeOrbit, sceneConfig())
			m.GrabBegin(400, 300, false)
			m.GrabUpdate(400, 300+tt.dy)

			phi := m.CurrentBookmark().Orbit.Phi
			assert.LessOrEqual(t, math32.Abs(phi), MaxPhi+1e-4)
			assert.InDelta(t, tt.want, phi, 1e-3)

			eye, target, up := m.LookAt()
			gaze := target.Sub(eye).Normalize()
			assert.InDelta(t, 0, gaze.Dot(up), 1e-3)
		})
	}
}

func TestOrbit_GrabUpdateWithoutBegin(t *testing.T) {
	m := Create(ModeOrbit, sceneConfig())
	eye0, target0, _ := m.LookAt()

	m.GrabUpdate(10, 10)
	m.GrabEnd()
	m.GrabEnd()

	eye, target, _ := m.LookAt()
	assert.Equal(t, eye0, eye)
	assert.Equal(t, target0, target)
}

func TestOrbit_GrabAfterEndIsIgnored(t *testing.T) {
	m := Create(ModeOrbit, sceneConfig())
	m.GrabBegin(400, 300, false)
	m.GrabEnd()
	eye0, _, _ := m.LookAt()

	m.GrabUpdate(600, 100)

	eye, _, _ := m.LookAt()
	assert.Equal(t, eye0, eye)
}

func TestOrbit_Strafe(t *testing.T) {
	m := Create(ModeOrbit, sceneConfig())

	m.GrabBegin(400, 300, true)
	m.GrabUpdate(300, 280)
	m.GrabEnd()

	eye, target, _ := m.LookAt()
	assertVec3InDelta(t, mgl32.Vec3{1, 0.2, 5}, eye, 1e-5)
	assertVec3InDelta(t, mgl32.Vec3{1, 0.2, 0}, target, 1e-5)
	assertVec3InDelta(t, mgl32.Vec3{1, 0.2, 0}, m.CurrentBookmark().Orbit.Pivot, 1e-5)
}

func TestOrbit_BookmarkRoundTrip(t *testing.T) {
	m := Create(ModeOrbit, sceneConfig())
	m.JumpToBookmark(NewOrbitBookmark(0.3, 1.2, 7, mgl32.Vec3{1, 2, 3}))

	m.GrabBegin(400, 300, false)
	m.GrabUpdate(340, 350)
	m.GrabEnd()
	m.GrabBegin(400, 300, true)
	m.GrabUpdate(420, 310)
	m.GrabEnd()

	eye0, target0, up0 := m.LookAt()
	b := m.CurrentBookmark()
	m.JumpToBookmark(b)
	eye, target, up := m.LookAt()

	assertVec3InDelta(t, eye0, eye, 1e-3)
	assertVec3InDelta(t, target0, target, 1e-3)
	assertVec3InDelta(t, up0, up, 1e-3)
}

func TestOrbit_JumpPreservesGaze(t *testing.T) {
	m := Create(ModeOrbit, sceneConfig())
	m.Zoom(400, 300, 50)

	eye0, target0, _ := m.LookAt()
	m.JumpToBookmark(m.CurrentBookmark())
	eye, target, _ := m.LookAt()

	assertVec3InDelta(t, eye0, eye, 1e-4)
	assertVec3InDelta(t, target0.Sub(eye0).Normalize(), target.Sub(eye).Normalize(), 1e-4)
}

func TestOrbit_ZoomThroughPivotFlips(t *testing.T) {
	m := Create(ModeOrbit, sceneConfig())

	signChanges := 0
	prev := m.CurrentBookmark().Orbit.Distance
	step := func(delta float32) {
		m.Zoom(400, 300, delta)
		d := m.CurrentBookmark().Orbit.Distance
		if (d < 0) != (prev < 0) {
			signChanges++
		}
		prev = d
	}

	for range 12 {
		step(70)
	}
	assert.Equal(t, 1, signChanges, "zooming through the pivot flips once")
	assert.Negative(t, prev)

	_, _, up := m.LookAt()
	eye, target, _ := m.LookAt()
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, target.Sub(eye).Normalize(), 1e-5)
	assertVec3InDelta(t, mgl32.Vec3{0, 1, 0}, up, 1e-5)

	// A flipped bookmark restores the same view.
	b := m.CurrentBookmark()
	m.JumpToBookmark(b)
	eye2, target2, _ := m.LookAt()
	assertVec3InDelta(t, eye, eye2, 1e-4)
	assertVec3InDelta(t, target.Sub(eye).Normalize(), target2.Sub(eye2).Normalize(), 1e-4)

	for range 12 {
		step(-70)
	}
	assert.Equal(t, 2, signChanges, "zooming back flips again")
	assert.Positive(t, prev)
}

func TestOrbit_JumpIgnoresMapBookmark(t *testing.T) {
	m := Create(ModeOrbit, sceneConfig())
	eye0, target0, _ := m.LookAt()

	m.JumpToBookmark(NewMapBookmark(100, mgl32.Vec2{5, 5}))

	eye, target, _ := m.LookAt()
	assert.Equal(t, eye0, eye)
	assert.Equal(t, target0, target)
}
