package input

import "github.com/rs/zerolog"

// ControllerOption is a functional option for configuring a Controller.
type ControllerOption func(*controller)

// WithFlipY converts top-left window coordinates (GLFW, most window systems) into the
// bottom-left pixel rows the manipulator expects.
//
// Parameters:
//   - flip: true to flip y against the viewport height
//
// Returns:
//   - ControllerOption: functional option to set y flipping
func WithFlipY(flip bool) ControllerOption {
	return func(c *controller) {
		c.flipY = flip
	}
}

// WithScrollScale multiplies every scroll delta before it reaches Zoom.
//
// Parameters:
//   - scale: scroll multiplier
//
// Returns:
//   - ControllerOption: functional option to set the scroll scale
func WithScrollScale(scale float32) ControllerOption {
	return func(c *controller) {
		c.scrollScale = scale
	}
}

// WithLogger sets the logger used for debug tracing of ignored events.
//
// Parameters:
//   - logger: the zerolog logger to use
//
// Returns:
//   - ControllerOption: functional option to set the logger
func WithLogger(logger zerolog.Logger) ControllerOption {
	return func(c *controller) {
		c.logger = logger
	}
}
