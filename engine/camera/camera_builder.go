package camera

import (
	"github.com/Carmen-Shannon/oxy-manip/engine/manipulator"
)

type CameraBuilderOption func(*cameraImpl)

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithManipulator attaches the manipulator the camera follows.
// After all options are applied, the camera computes its matrices from the manipulator's state.
//
// Parameters:
//   - m: the manipulator to follow
//
// Returns:
//   - CameraBuilderOption: functional option to set the manipulator
func WithManipulator(m manipulator.Manipulator) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.manip = m
	}
}
