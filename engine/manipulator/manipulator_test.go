package manipulator

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec3InDelta(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDeltaf(t, want[i], got[i], delta, "component %d: want %v, got %v", i, want, got)
	}
}

func sceneConfig() Config {
	return Config{
		Viewport:   [2]int{800, 600},
		HomeTarget: mgl32.Vec3{0, 0, 0},
		HomeVector: mgl32.Vec3{0, 0, 5},
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()

	assert.Equal(t, DefaultZoomSpeed, cfg.ZoomSpeed)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cfg.HomeUpVector)
	assert.Equal(t, mgl32.Vec4{0, 0, 1, 0}, cfg.GroundPlane)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, cfg.HomeVector)
	assert.Equal(t, mgl32.Vec2{0.01, 0.01}, cfg.OrbitSpeed)
	assert.Equal(t, mgl32.Vec2{0.01, 0.01}, cfg.StrafeSpeed)
	assert.Equal(t, float32(33), cfg.FovDegrees)
	assert.Equal(t, float32(5000), cfg.FarPlane)
	assert.Equal(t, mgl32.Vec2{512, 512}, cfg.MapExtent)

	// No documented default: passed through.
	assert.Equal(t, [2]int{0, 0}, cfg.Viewport)
	assert.Equal(t, mgl32.Vec3{}, cfg.HomeTarget)
	assert.Equal(t, FovVertical, cfg.FovDirection)
	assert.Zero(t, cfg.MapMinDistance)
	assert.Nil(t, cfg.Raycast)
}

func TestConfig_WithDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := Config{
		ZoomSpeed:      0.5,
		HomeUpVector:   mgl32.Vec3{0, 0, 1},
		FovDegrees:     60,
		FovDirection:   FovHorizontal,
		MapMinDistance: 2,
	}.WithDefaults()

	assert.Equal(t, float32(0.5), cfg.ZoomSpeed)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, cfg.HomeUpVector)
	assert.Equal(t, float32(60), cfg.FovDegrees)
	assert.Equal(t, FovHorizontal, cfg.FovDirection)
	assert.Equal(t, float32(2), cfg.MapMinDistance)
}

func TestSetConfig_AppliesDefaults(t *testing.T) {
	m := Create(ModeOrbit, sceneConfig())
	m.SetConfig(Config{Viewport: [2]int{1024, 768}})

	cfg := m.Config()
	assert.Equal(t, [2]int{1024, 768}, cfg.Viewport)
	assert.Equal(t, DefaultZoomSpeed, cfg.ZoomSpeed)
	assert.Equal(t, DefaultHomeVector, cfg.HomeVector)
}

func TestNewManipulator_Options(t *testing.T) {
	m := NewManipulator(ModeMap,
		WithViewport(640, 480),
		WithZoomSpeed(0.2),
		WithHomeTarget(1, 2, 0),
		WithFov(FovHorizontal, 45),
		WithMapExtent(100, 50),
		WithFarPlane(900),
		WithMapMinDistance(3),
	)
	require.Equal(t, ModeMap, m.Mode())

	cfg := m.Config()
	assert.Equal(t, [2]int{640, 480}, cfg.Viewport)
	assert.Equal(t, float32(0.2), cfg.ZoomSpeed)
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, cfg.HomeTarget)
	assert.Equal(t, FovHorizontal, cfg.FovDirection)
	assert.Equal(t, float32(45), cfg.FovDegrees)
	assert.Equal(t, mgl32.Vec2{100, 50}, cfg.MapExtent)
	assert.Equal(t, float32(900), cfg.FarPlane)
	assert.Equal(t, float32(3), cfg.MapMinDistance)
}

func TestNewManipulator_UnknownModeFallsBackToOrbit(t *testing.T) {
	m := NewManipulator(Mode(42), WithConfig(sceneConfig()))
	assert.Equal(t, ModeOrbit, m.Mode())
}

func TestLookAt_HomeScenario(t *testing.T) {
	m := Create(ModeOrbit, sceneConfig())

	eye, target, up := m.LookAt()
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 5}, eye, 1e-6)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 0}, target, 1e-6)
	assertVec3InDelta(t, mgl32.Vec3{0, 1, 0}, up, 1e-6)
}

func TestLookAt_UpIsOrthonormal(t *testing.T) {
	m := Create(ModeOrbit, sceneConfig())

	tests := []Bookmark{
		NewOrbitBookmark(0.4, 1.1, 3, mgl32.Vec3{1, 2, 3}),
		NewOrbitBookmark(-1.2, -2.5, 12, mgl32.Vec3{-4, 0, 9}),
		NewOrbitBookmark(MaxPhi, 0.3, 1, mgl32.Vec3{}),
		NewOrbitBookmark(0.2, 3, -6, mgl32.Vec3{0, -1, 0}),
	}
	for _, b := range tests {
		m.JumpToBookmark(b)
		eye, target, up := m.LookAt()
		gaze := target.Sub(eye).Normalize()

		assert.InDelta(t, 0, gaze.Dot(up), 1e-4, "up must be orthogonal to gaze for %+v", b.Orbit)
		assert.InDelta(t, 1, up.Len(), 1e-4, "up must be unit length for %+v", b.Orbit)
	}
}

func TestRaycast_StraightDown(t *testing.T) {
	cfg := sceneConfig()
	cfg.HomeTarget = mgl32.Vec3{3, -2, 0}
	cfg.HomeVector = mgl32.Vec3{0, 0, 10}
	m := Create(ModeOrbit, cfg)

	// The pixel center sits half a pixel off the optical axis.
	hit, ok := m.Raycast(400, 300)
	require.True(t, ok)
	assertVec3InDelta(t, mgl32.Vec3{3, -2, 0}, hit, 0.01)
}

func TestRaycast_MissesParallelPlane(t *testing.T) {
	cfg := sceneConfig()
	cfg.GroundPlane = mgl32.Vec4{0, 1, 0, 0}
	cfg.HomeUpVector = mgl32.Vec3{0, 1, 0}
	cfg.HomeTarget = mgl32.Vec3{0, 2, 0}
	m := Create(ModeOrbit, cfg)

	_, ok := m.Raycast(400, 300)
	assert.False(t, ok, "a ray nearly parallel to the plane must miss")

	hit, ok := m.Raycast(400, 0)
	require.True(t, ok, "row 0 looks down toward the plane")
	assert.InDelta(t, 0, hit.Y(), 1e-4)
	assert.Less(t, hit.Z(), float32(5))
}

func TestRaycast_UserCallbackFirst(t *testing.T) {
	var gotOrigin mgl32.Vec3
	cfg := sceneConfig()
	cfg.Raycast = func(origin, dir mgl32.Vec3) (float32, bool) {
		gotOrigin = origin
		return 2, true
	}
	m := Create(ModeOrbit, cfg)

	hit, ok := m.Raycast(400, 300)
	require.True(t, ok)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 5}, gotOrigin, 1e-6)
	assert.InDelta(t, 3, hit.Z(), 1e-3)
}

func TestRaycast_FallsBackToGroundPlane(t *testing.T) {
	calls := 0
	cfg := sceneConfig()
	cfg.Raycast = func(origin, dir mgl32.Vec3) (float32, bool) {
		calls++
		return 0, false
	}
	m := Create(ModeOrbit, cfg)

	hit, ok := m.Raycast(400, 300)
	require.True(t, ok)
	assert.Equal(t, 1, calls)
	assert.InDelta(t, 0, hit.Z(), 1e-4)
}

func TestRaycast_FovAxisAspectCorrection(t *testing.T) {
	cfg := sceneConfig()
	cfg.HomeVector = mgl32.Vec3{0, 0, 10}

	vertical := Create(ModeOrbit, cfg)
	cfg.FovDirection = FovHorizontal
	horizontal := Create(ModeOrbit, cfg)

	// Right edge: vertical fov stretches x by the aspect ratio, horizontal fov does not.
	hv, ok := vertical.Raycast(799, 300)
	require.True(t, ok)
	hh, ok := horizontal.Raycast(799, 300)
	require.True(t, ok)
	assert.InDelta(t, 800.0/600.0, hv.X()/hh.X(), 1e-3)

	// Top edge: horizontal fov shrinks y by the aspect ratio, vertical fov does not.
	vv, ok := vertical.Raycast(400, 599)
	require.True(t, ok)
	vh, ok := horizontal.Raycast(400, 599)
	require.True(t, ok)
	assert.InDelta(t, 800.0/600.0, vv.Y()/vh.Y(), 1e-3)
}
