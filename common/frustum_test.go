package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestExtractFrustumFromMatrix(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1, 1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	f := ExtractFrustumFromMatrix(proj.Mul4(view))

	for i, plane := range f.Planes {
		assert.InDelta(t, 1, plane.Normal.Len(), 1e-5, "plane %d", i)
	}
	assert.InDelta(t, 1, f.Planes[FrustumNear].SignedDistance(mgl32.Vec3{0, 0, -2}), 1e-4)

	tests := []struct {
		name  string
		point mgl32.Vec3
		want  bool
	}{
		{"ahead", mgl32.Vec3{0, 0, -10}, true},
		{"inside edge", mgl32.Vec3{9, 0, -10}, true},
		{"behind", mgl32.Vec3{0, 0, 10}, false},
		{"before near", mgl32.Vec3{0, 0, -0.5}, false},
		{"beyond far", mgl32.Vec3{0, 0, -200}, false},
		{"right of frustum", mgl32.Vec3{20, 0, -10}, false},
		{"above frustum", mgl32.Vec3{0, 20, -10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.ContainsPoint(tt.point))
		})
	}

	assert.True(t, f.IntersectsSphere(mgl32.Vec3{11, 0, -10}, 2))
	assert.False(t, f.IntersectsSphere(mgl32.Vec3{20, 0, -10}, 2))
}
