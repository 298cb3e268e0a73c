package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in   float32
		want float32
	}{
		{in: 0, want: 0},
		{in: 1, want: 1},
		{in: -1, want: -1},
		{in: 2*Pi + 0.5, want: 0.5},
		{in: -6, want: -6 + 2*Pi},
		{in: 3*Pi - 0.25, want: Pi - 0.25},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, WrapAngle(tt.in), 1e-5, "WrapAngle(%v)", tt.in)
	}
	assert.GreaterOrEqual(t, WrapAngle(Pi), -Pi)
	assert.Less(t, WrapAngle(Pi), Pi+1e-6)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 2, Clamp(5, 0, 2))
	assert.Equal(t, float32(-1), Clamp(float32(-3), -1, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}

func TestLerp(t *testing.T) {
	assert.Equal(t, float32(2), Lerp(0, 4, 0.5))
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, LerpVec3(mgl32.Vec3{}, mgl32.Vec3{2, 4, 6}, 0.5))
}

func TestSafeNormalize(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{}, SafeNormalize(mgl32.Vec3{}))
	assert.InDelta(t, 1, SafeNormalize(mgl32.Vec3{3, 4, 0}).Len(), 1e-6)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, float32(0.01), Coalesce(float32(0), 0.01))
	assert.Equal(t, float32(2), Coalesce(float32(2), 0.01))
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, Coalesce(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))
	assert.Equal(t, "", Coalesce[string]())
}
