package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-manip/common"
	"github.com/Carmen-Shannon/oxy-manip/engine/camera"
	"github.com/Carmen-Shannon/oxy-manip/engine/input"
	"github.com/Carmen-Shannon/oxy-manip/engine/manipulator"
	"github.com/Carmen-Shannon/oxy-manip/engine/profiler"
	"github.com/Carmen-Shannon/oxy-manip/engine/tour"
	"github.com/Carmen-Shannon/oxy-manip/engine/window"
	"github.com/rs/zerolog"
)

// maxTicksPerFrame bounds how many fixed ticks a single slow frame may catch up on.
const maxTicksPerFrame = 5

// engine implements the Engine interface.
// Every callback runs on the window thread, so the manipulator is never touched concurrently.
type engine struct {
	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window     window.Window
	camera     camera.Camera
	controller input.Controller
	logger     zerolog.Logger

	controllerOptions []input.ControllerOption
	cameraOptions     []camera.CameraBuilderOption

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	keyCallback    func(keyCode uint32, mods int)

	player    *tour.Player
	tourSpeed float64

	lastFrame time.Time
	tickDebt  time.Duration
}

// Engine drives a manipulator from a window: it routes input to an input.Controller, keeps
// a camera.Camera in sync, runs a fixed-rate tick callback and plays tours.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Camera returns the camera that follows the active manipulator.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Controller returns the input controller.
	//
	// Returns:
	//   - input.Controller: the controller
	Controller() input.Controller

	// Manipulator returns the active manipulator.
	//
	// Returns:
	//   - manipulator.Manipulator: the manipulator driven by input and tours
	Manipulator() manipulator.Manipulator

	// SetManipulator replaces the active manipulator, stopping any tour and ending any drag.
	//
	// Parameters:
	//   - m: the new manipulator
	SetManipulator(m manipulator.Manipulator)

	// EnableProfiler enables frame statistics output to the logger.
	EnableProfiler()

	// DisableProfiler disables frame statistics output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the tick length in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetKeyCallback registers the function called for key presses and repeats.
	//
	// Parameters:
	//   - callback: function receiving the key code and modifier bits
	SetKeyCallback(callback func(keyCode uint32, mods int))

	// PlayTour starts playing t from its first waypoint, replacing any tour in progress.
	// Pointer presses and scrolling stop playback.
	//
	// Parameters:
	//   - t: the tour to play; its mode must match the active manipulator
	//
	// Returns:
	//   - error: error if the tour is empty, mixed, or of the wrong mode
	PlayTour(t *tour.Tour) error

	// FlyTo animates from the current view to b along the interpolation path.
	//
	// Parameters:
	//   - b: the destination bookmark
	//
	// Returns:
	//   - error: error if b does not match the manipulator's mode
	FlyTo(b manipulator.Bookmark) error

	// StopTour stops tour playback, leaving the view where it is.
	StopTour()

	// Playing reports whether a tour is in progress.
	//
	// Returns:
	//   - bool: true while a tour is playing
	Playing() bool

	// Run starts the main loop (blocks until the window closes or Quit is called).
	Run()

	// Quit stops the main loop and closes the window.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done returns a channel that is closed once Quit has been called.
	//
	// Returns:
	//   - <-chan struct{}: the quit channel
	Done() <-chan struct{}
}

var _ Engine = &engine{}

// NewEngine creates a new Engine driving m from the window given by WithWindow.
// Window input callbacks are routed to the controller; the camera follows m.
//
// Parameters:
//   - m: the manipulator to drive
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(m manipulator.Manipulator, options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:    make(chan struct{}),
		logger:         zerolog.Nop(),
		engineTickRate: time.Second / 60,
		tourSpeed:      1,
	}

	for _, opt := range options {
		opt(e)
	}

	e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	e.controller = input.NewController(m, append([]input.ControllerOption{input.WithLogger(e.logger)}, e.controllerOptions...)...)
	e.camera = camera.NewCamera(append(e.cameraOptions, camera.WithManipulator(m))...)

	if e.window != nil {
		e.bindWindow()
	}

	return e
}

// bindWindow registers the window callbacks that feed the controller and the frame loop.
func (e *engine) bindWindow() {
	e.window.SetResizeCallback(func(width, height int) {
		e.controller.Resize(width, height)
		e.camera.Update()
	})
	e.window.SetMouseButtonCallback(func(x, y, button, action, mods int) {
		if action == common.ActionPress {
			e.StopTour()
			e.controller.PointerDown(x, y, input.Button(button), input.Modifier(mods))
			return
		}
		e.controller.PointerUp(x, y, input.Button(button))
	})
	e.window.SetMouseMoveCallback(func(x, y int) {
		e.controller.PointerMove(x, y)
	})
	e.window.SetScrollCallback(func(x, y int, delta float32) {
		e.StopTour()
		e.controller.Scroll(x, y, delta)
	})
	e.window.SetKeyDownCallback(func(keyCode uint32, mods int) {
		if e.keyCallback != nil {
			e.keyCallback(keyCode, mods)
		}
	})
	e.window.SetUpdateCallback(func() {
		e.step(time.Now())
	})
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Controller() input.Controller {
	return e.controller
}

func (e *engine) Manipulator() manipulator.Manipulator {
	return e.controller.Manipulator()
}

func (e *engine) SetManipulator(m manipulator.Manipulator) {
	e.StopTour()
	e.controller.SetManipulator(m)
	e.camera.SetManipulator(m)
	e.logger.Info().Stringer("mode", m.Mode()).Msg("manipulator replaced")
}

func (e *engine) Run() {
	if e.window == nil {
		e.logger.Error().Msg("engine has no window to run")
		return
	}
	e.lastFrame = time.Now()
	e.window.ProcessMessages()
	e.signalQuit()
}

// Quit signals the main loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// signalQuit closes the quit channel to signal the loop to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// step runs one frame: it catches up on fixed-rate ticks, advances tour playback, refreshes
// the camera and feeds the profiler. Once Quit has been called it closes the window instead.
func (e *engine) step(now time.Time) {
	select {
	case <-e.quitChannel:
		if e.window != nil && e.window.IsRunning() {
			if err := e.window.Close(); err != nil {
				e.logger.Error().Err(err).Msg("failed to close window")
			}
		}
		return
	default:
	}

	if e.lastFrame.IsZero() {
		e.lastFrame = now
	}
	frame := max(now.Sub(e.lastFrame), 0)
	e.lastFrame = now

	e.tickDebt += frame
	for ticks := 0; e.tickDebt >= e.engineTickRate; ticks++ {
		if ticks == maxTicksPerFrame {
			e.tickDebt = 0
			break
		}
		e.tickDebt -= e.engineTickRate
		if e.tickCallback != nil {
			e.tickCallback(float32(e.engineTickRate.Seconds()))
		}
	}

	if e.player != nil {
		b, done := e.player.Advance(frame.Seconds())
		e.Manipulator().JumpToBookmark(b)
		if done {
			e.logger.Debug().Str("tour", e.player.Tour().Name).Msg("tour finished")
			e.player = nil
		}
	}

	e.camera.Update()

	if e.profilingEnabled {
		e.profiler.Tick()
	}
}

// EnableProfiler enables frame statistics output to the logger.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables frame statistics output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// Takes effect on the next frame.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	e.engineTickRate = time.Duration(float64(time.Second) / fps)
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetKeyCallback(callback func(keyCode uint32, mods int)) {
	e.keyCallback = callback
}

func (e *engine) PlayTour(t *tour.Tour) error {
	if mode, ok := t.Mode(); ok && mode != e.Manipulator().Mode() {
		return fmt.Errorf("failed to play tour %q: %w: tour is %s, manipulator is %s",
			t.Name, tour.ErrMixedModes, mode, e.Manipulator().Mode())
	}
	p, err := tour.NewPlayer(t, e.tourSpeed)
	if err != nil {
		return err
	}
	// Re-attaching the same manipulator ends any drag in progress.
	e.controller.SetManipulator(e.Manipulator())
	e.player = p
	e.logger.Info().Str("tour", t.Name).Int("waypoints", len(t.Waypoints)).Msg("tour started")
	return nil
}

func (e *engine) FlyTo(b manipulator.Bookmark) error {
	t, err := tour.New("fly-to", e.Manipulator().CurrentBookmark(), b)
	if err != nil {
		return fmt.Errorf("failed to fly to bookmark: %w", err)
	}
	return e.PlayTour(t)
}

func (e *engine) StopTour() {
	if e.player == nil {
		return
	}
	e.logger.Debug().Str("tour", e.player.Tour().Name).Float64("elapsed", e.player.Elapsed()).Msg("tour stopped")
	e.player = nil
}

func (e *engine) Playing() bool {
	return e.player != nil
}
