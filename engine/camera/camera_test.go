package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-manip/engine/manipulator"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamera_WithoutManipulator(t *testing.T) {
	c := NewCamera()
	c.Update()

	assert.Nil(t, c.Manipulator())
	assert.Equal(t, mgl32.Ident4(), c.ViewMatrix())
	assert.Equal(t, mgl32.Vec3{}, c.Position())
}

func TestCamera_FollowsManipulator(t *testing.T) {
	m := manipulator.Create(manipulator.ModeOrbit, manipulator.Config{
		Viewport:   [2]int{800, 600},
		HomeVector: mgl32.Vec3{0, 0, 5},
	})
	c := NewCamera(WithManipulator(m), WithNear(0.5))

	assert.Equal(t, float32(0.5), c.Near())
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, c.Position())

	m.Zoom(400, 300, 100)
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, c.Position(), "matrices only change on Update")

	c.Update()
	assert.InDelta(t, 4, c.Position().Z(), 1e-5)

	// The target projects onto the viewport center.
	_, target, _ := m.LookAt()
	p, ok := c.Project(target)
	require.True(t, ok)
	assert.InDelta(t, 400, p.X(), 1e-2)
	assert.InDelta(t, 300, p.Y(), 1e-2)

	_, ok = c.Project(mgl32.Vec3{0, 0, 10})
	assert.False(t, ok, "points behind the eye do not project")

	f := c.Frustum()
	assert.True(t, f.ContainsPoint(target))
	assert.False(t, f.ContainsPoint(mgl32.Vec3{0, 0, 10}))
}

func TestCamera_ProjectInvertsRaycast(t *testing.T) {
	tests := []struct {
		name string
		mode manipulator.Mode
		cfg  manipulator.Config
		jump *manipulator.Bookmark
	}{
		{
			name: "orbit vertical fov",
			mode: manipulator.ModeOrbit,
			cfg:  manipulator.Config{Viewport: [2]int{800, 600}, HomeVector: mgl32.Vec3{0, 0, 20}},
		},
		{
			name: "orbit rotated",
			mode: manipulator.ModeOrbit,
			cfg:  manipulator.Config{Viewport: [2]int{640, 480}, HomeVector: mgl32.Vec3{0, 0, 20}},
			jump: ptr(manipulator.NewOrbitBookmark(0.6, 0.8, 30, mgl32.Vec3{1, 2, -3})),
		},
		{
			name: "map horizontal fov",
			mode: manipulator.ModeMap,
			cfg: manipulator.Config{
				Viewport:     [2]int{1024, 512},
				FovDirection: manipulator.FovHorizontal,
				FovDegrees:   60,
			},
		},
	}
	pixels := [][2]int{{0, 0}, {100, 50}, {320, 240}, {500, 100}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := manipulator.Create(tt.mode, tt.cfg)
			if tt.jump != nil {
				m.JumpToBookmark(*tt.jump)
			}
			c := NewCamera(WithManipulator(m))

			for _, px := range pixels {
				hit, ok := m.Raycast(px[0], px[1])
				if !ok {
					continue
				}
				p, ok := c.Project(hit)
				require.True(t, ok)
				assert.InDelta(t, float32(px[0])+0.5, p.X(), 2e-2, "pixel %v", px)
				assert.InDelta(t, float32(px[1])+0.5, p.Y(), 2e-2, "pixel %v", px)
			}
		})
	}
}

func TestCamera_InverseProjection(t *testing.T) {
	m := manipulator.Create(manipulator.ModeMap, manipulator.Config{Viewport: [2]int{800, 600}})
	c := NewCamera(WithManipulator(m))

	product := c.ProjectionMatrix().Mul4(c.InverseProjectionMatrix())
	assert.True(t, product.ApproxEqualThreshold(mgl32.Ident4(), 1e-3))
}

func TestCamera_Uniform(t *testing.T) {
	m := manipulator.Create(manipulator.ModeOrbit, manipulator.Config{
		Viewport:   [2]int{800, 600},
		HomeVector: mgl32.Vec3{1, 2, 3},
	})
	c := NewCamera(WithManipulator(m))

	u := c.Uniform()
	assert.Equal(t, 80, u.Size())
	assert.Equal(t, c.ViewProjectionMatrix(), u.ViewProj)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, u.CameraPosition)

	buf := u.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, math.Float32bits(u.ViewProj[5]), binary.LittleEndian.Uint32(buf[20:]))
	assert.Equal(t, math.Float32bits(2), binary.LittleEndian.Uint32(buf[68:]))
	assert.Zero(t, binary.LittleEndian.Uint32(buf[76:]))
}

func ptr[T any](v T) *T {
	return &v
}
