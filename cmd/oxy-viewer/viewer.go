package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-manip/common"
	"github.com/Carmen-Shannon/oxy-manip/engine"
	"github.com/Carmen-Shannon/oxy-manip/engine/camera"
	"github.com/Carmen-Shannon/oxy-manip/engine/input"
	"github.com/Carmen-Shannon/oxy-manip/engine/loader"
	"github.com/Carmen-Shannon/oxy-manip/engine/manipulator"
	"github.com/Carmen-Shannon/oxy-manip/engine/settings"
	"github.com/Carmen-Shannon/oxy-manip/engine/tour"
	"github.com/Carmen-Shannon/oxy-manip/engine/window"
	"github.com/rs/zerolog"
)

// runViewer opens the viewer window described by the settings file and blocks until it closes.
func runViewer(settingsPath string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	s, err := settings.Load(settingsPath)
	if err != nil {
		return err
	}
	if level, err := s.Level(); err != nil {
		logger.Warn().Err(err).Msg("using info log level")
	} else {
		logger = logger.Level(level)
	}

	mode, err := s.ManipulatorMode()
	if err != nil {
		return err
	}
	cfg, err := s.ManipulatorConfig()
	if err != nil {
		return err
	}

	// ── Window + Engine ─────────────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle(s.Window.Title),
		window.WithSize(s.Window.Width, s.Window.Height),
		window.WithMinSize(320, 240),
	)
	cfg.Viewport = [2]int{win.Width(), win.Height()}

	var modelBounds loader.Bounds
	if s.Model != "" {
		if modelBounds, err = loader.LoadBounds(s.Model); err != nil {
			logger.Warn().Err(err).Msg("keeping configured home view")
		} else {
			logger.Info().Str("model", s.Model).Float32("radius", modelBounds.Radius()).Msg("home view framed on model")
		}
	}
	cfg = loader.FrameBounds(cfg, modelBounds)

	eng := engine.NewEngine(
		manipulator.NewManipulator(mode, manipulator.WithConfig(cfg), manipulator.WithLogger(logger)),
		engine.WithWindow(win),
		engine.WithLogger(logger),
		engine.WithTickRate(s.Engine.TickRate),
		engine.WithProfiling(s.Engine.Profiling),
		engine.WithTourSpeed(s.Engine.TourSpeed),
		engine.WithControllerOptions(
			input.WithFlipY(s.Input.FlipY),
			input.WithScrollScale(s.Input.ScrollScale),
		),
		engine.WithCameraOptions(camera.WithNear(0.05)),
	)

	// ── Tour ────────────────────────────────────────────────────────────
	tourPath := s.Tour
	if tourPath == "" {
		tourPath = "tour.yaml"
	}
	current, _ := tour.New("viewer")
	if loaded, err := tour.Load(tourPath); err == nil {
		current = loaded
		logger.Info().Str("path", tourPath).Int("waypoints", len(current.Waypoints)).Msg("tour loaded")
	} else if !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Str("path", tourPath).Msg("ignoring tour file")
	}

	// ── Settings hot reload ─────────────────────────────────────────────
	// Watch callbacks arrive on the fsnotify goroutine; hand them to the window thread.
	reloads := make(chan *settings.Settings, 1)
	if err := settings.Watch(settingsPath, func(next *settings.Settings) {
		select {
		case reloads <- next:
		default:
		}
	}, settings.WithLogger(logger)); err != nil {
		logger.Debug().Err(err).Msg("settings hot reload disabled")
	}

	switchMode := func(next manipulator.Mode) {
		c := eng.Manipulator().Config()
		eng.SetManipulator(manipulator.NewManipulator(next, manipulator.WithConfig(c), manipulator.WithLogger(logger)))
	}

	fly := func(b manipulator.Bookmark) {
		if err := eng.FlyTo(b); err != nil {
			logger.Warn().Err(err).Msg("cannot fly to bookmark")
		}
	}

	eng.SetKeyCallback(func(keyCode uint32, mods int) {
		m := eng.Manipulator()
		switch {
		case keyCode == common.KeyH:
			fly(m.HomeBookmark())
		case keyCode == common.KeyB:
			if err := current.Add(m.CurrentBookmark()); err != nil {
				logger.Warn().Err(err).Msg("cannot add waypoint")
				return
			}
			logger.Info().Int("waypoint", len(current.Waypoints)).Msg("waypoint added")
		case keyCode >= common.Key1 && keyCode <= common.Key9:
			i := int(keyCode - common.Key1)
			if i < len(current.Waypoints) {
				fly(current.Waypoints[i])
			}
		case keyCode == common.KeyP:
			if err := eng.PlayTour(current); err != nil {
				logger.Warn().Err(err).Msg("cannot play tour")
			}
		case keyCode == common.KeyC:
			eng.StopTour()
			current.Waypoints = nil
			logger.Info().Msg("tour cleared")
		case keyCode == common.KeyS:
			if err := tour.Save(tourPath, current); err != nil {
				logger.Error().Err(err).Msg("failed to save tour")
				return
			}
			logger.Info().Str("path", tourPath).Msg("tour saved")
		case keyCode == common.KeyL:
			loaded, err := tour.Load(tourPath)
			if err != nil {
				logger.Error().Err(err).Msg("failed to load tour")
				return
			}
			eng.StopTour()
			current = loaded
			logger.Info().Str("path", tourPath).Int("waypoints", len(current.Waypoints)).Msg("tour loaded")
		case keyCode == common.KeyM:
			next := manipulator.ModeMap
			if m.Mode() == manipulator.ModeMap {
				next = manipulator.ModeOrbit
			}
			switchMode(next)
		}
	})

	eng.SetTickCallback(func(float32) {
		select {
		case next := <-reloads:
			c, err := next.ManipulatorConfig()
			if err != nil {
				logger.Warn().Err(err).Msg("ignoring settings reload")
				return
			}
			c.Viewport = eng.Manipulator().Config().Viewport
			eng.Manipulator().SetConfig(loader.FrameBounds(c, modelBounds))
			if nextMode, err := next.ManipulatorMode(); err == nil && nextMode != eng.Manipulator().Mode() {
				switchMode(nextMode)
			}
		default:
		}

		eye, target, _ := eng.Manipulator().LookAt()
		win.SetTitle(fmt.Sprintf("%s [%s] eye (%.2f, %.2f, %.2f) target (%.2f, %.2f, %.2f)",
			s.Window.Title, eng.Manipulator().Mode(),
			eye.X(), eye.Y(), eye.Z(), target.X(), target.Y(), target.Z()))
	})

	logger.Info().Stringer("mode", mode).Msg("viewer started")
	eng.Run()
	return nil
}
