package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-manip/engine/camera"
	"github.com/Carmen-Shannon/oxy-manip/engine/input"
	"github.com/Carmen-Shannon/oxy-manip/engine/window"
	"github.com/rs/zerolog"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables frame statistics output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithWindow sets the window the engine reads input from and runs its loop on.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithLogger sets the logger shared by the engine, its controller and its profiler.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger zerolog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}

// WithTourSpeed sets the playback speed for tours and FlyTo, in path units per second.
// Values <= 0 will be treated as 1.
//
// Parameters:
//   - speed: playback speed
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTourSpeed(speed float64) EngineBuilderOption {
	return func(e *engine) {
		if speed <= 0 {
			speed = 1
		}
		e.tourSpeed = speed
	}
}

// WithControllerOptions forwards options to the input controller.
//
// Parameters:
//   - options: controller options such as input.WithFlipY
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithControllerOptions(options ...input.ControllerOption) EngineBuilderOption {
	return func(e *engine) {
		e.controllerOptions = append(e.controllerOptions, options...)
	}
}

// WithCameraOptions forwards options to the camera.
//
// Parameters:
//   - options: camera options such as camera.WithNear
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCameraOptions(options ...camera.CameraBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.cameraOptions = append(e.cameraOptions, options...)
	}
}
