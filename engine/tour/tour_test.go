package tour

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-manip/engine/manipulator"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapTour(t *testing.T) *Tour {
	t.Helper()
	tr, err := New("harbor",
		manipulator.NewMapBookmark(256, mgl32.Vec2{0, 0}),
		manipulator.NewMapBookmark(64, mgl32.Vec2{100, 40}),
		manipulator.NewMapBookmark(128, mgl32.Vec2{-80, 10}),
	)
	require.NoError(t, err)
	return tr
}

func TestNew_RejectsMixedModes(t *testing.T) {
	_, err := New("mixed",
		manipulator.NewMapBookmark(100, mgl32.Vec2{}),
		manipulator.NewOrbitBookmark(0, 0, 5, mgl32.Vec3{}),
	)
	assert.ErrorIs(t, err, ErrMixedModes)
}

func TestAdd(t *testing.T) {
	tr, err := New("orbit")
	require.NoError(t, err)

	_, ok := tr.Mode()
	assert.False(t, ok)

	require.NoError(t, tr.Add(manipulator.NewOrbitBookmark(0, 0, 5, mgl32.Vec3{})))
	mode, ok := tr.Mode()
	require.True(t, ok)
	assert.Equal(t, manipulator.ModeOrbit, mode)

	assert.ErrorIs(t, tr.Add(manipulator.NewMapBookmark(10, mgl32.Vec2{})), ErrMixedModes)
	assert.Len(t, tr.Waypoints, 1)
}

func TestDurations_Additive(t *testing.T) {
	tr := mapTour(t)

	durations := tr.Durations()
	require.Len(t, durations, 2)
	assert.InDelta(t, manipulator.Duration(tr.Waypoints[0], tr.Waypoints[1]), durations[0], 1e-12)
	assert.InDelta(t, manipulator.Duration(tr.Waypoints[1], tr.Waypoints[2]), durations[1], 1e-12)
	assert.InDelta(t, durations[0]+durations[1], tr.TotalDuration(), 1e-12)
}

func TestSample_Endpoints(t *testing.T) {
	tr := mapTour(t)

	first, err := tr.Sample(0)
	require.NoError(t, err)
	assert.Equal(t, tr.Waypoints[0], first)

	last, err := tr.Sample(tr.TotalDuration())
	require.NoError(t, err)
	assert.Equal(t, tr.Waypoints[2], last)

	before, err := tr.Sample(-3)
	require.NoError(t, err)
	assert.Equal(t, tr.Waypoints[0], before)

	after, err := tr.Sample(tr.TotalDuration() + 10)
	require.NoError(t, err)
	assert.Equal(t, tr.Waypoints[2], after)
}

func TestSample_SegmentBoundary(t *testing.T) {
	tr := mapTour(t)
	durations := tr.Durations()

	mid, err := tr.Sample(durations[0])
	require.NoError(t, err)
	assert.InDelta(t, 64, mid.Map.Extent, 1e-3)
	assert.InDelta(t, 100, mid.Map.Center.X(), 1e-3)
	assert.InDelta(t, 40, mid.Map.Center.Y(), 1e-3)
}

func TestSample_WithinSegment(t *testing.T) {
	tr := mapTour(t)
	durations := tr.Durations()

	got, err := tr.Sample(durations[0] + durations[1]/2)
	require.NoError(t, err)
	want := manipulator.Interpolate(tr.Waypoints[1], tr.Waypoints[2], 0.5)
	assert.InDelta(t, want.Map.Extent, got.Map.Extent, 1e-3)
	assert.InDelta(t, want.Map.Center.X(), got.Map.Center.X(), 1e-3)
}

func TestSample_SkipsZeroLengthSegments(t *testing.T) {
	a := manipulator.NewOrbitBookmark(0, 0, 5, mgl32.Vec3{})
	b := manipulator.NewOrbitBookmark(0, 1, 5, mgl32.Vec3{})
	tr, err := New("pause", a, a, b)
	require.NoError(t, err)

	durations := tr.Durations()
	require.Len(t, durations, 2)
	assert.Zero(t, durations[0])
	assert.InDelta(t, 1, durations[1], 1e-6)

	got, err := tr.Sample(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got.Orbit.Theta, 1e-6)
}

func TestSample_SingleWaypoint(t *testing.T) {
	only := manipulator.NewMapBookmark(42, mgl32.Vec2{1, 2})
	tr, err := New("still", only)
	require.NoError(t, err)

	assert.Zero(t, tr.TotalDuration())
	got, err := tr.Sample(5)
	require.NoError(t, err)
	assert.Equal(t, only, got)
}

func TestSample_Errors(t *testing.T) {
	_, err := (&Tour{}).Sample(0)
	assert.ErrorIs(t, err, ErrEmptyTour)

	mixed := &Tour{Waypoints: []manipulator.Bookmark{
		manipulator.NewMapBookmark(100, mgl32.Vec2{}),
		manipulator.NewOrbitBookmark(0, 0, 5, mgl32.Vec3{}),
	}}
	_, err = mixed.Sample(0)
	assert.ErrorIs(t, err, ErrMixedModes)
}
