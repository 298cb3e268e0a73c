package settings

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// WatchOption is a functional option for configuring Watch.
type WatchOption func(*watchConfig)

type watchConfig struct {
	logger zerolog.Logger
}

// WithLogger sets the logger used to report reloads and reload failures.
//
// Parameters:
//   - logger: the zerolog logger to use
//
// Returns:
//   - WatchOption: functional option to set the logger
func WithLogger(logger zerolog.Logger) WatchOption {
	return func(c *watchConfig) {
		c.logger = logger
	}
}

// Watch loads the settings file and calls onChange with freshly decoded settings every time
// the file is written. Files that fail to decode are logged and skipped.
// onChange runs on the watcher goroutine; hosts that own a main loop should hand the
// settings over through a channel.
//
// Parameters:
//   - path: the settings file path; it must exist
//   - onChange: callback receiving the reloaded settings
//   - options: functional options to configure the watch
//
// Returns:
//   - error: error if the file cannot be read initially
func Watch(path string, onChange func(*Settings), options ...WatchOption) error {
	cfg := &watchConfig{logger: zerolog.Nop()}
	for _, opt := range options {
		opt(cfg)
	}
	logger := cfg.logger.With().Str("component", "settings").Str("path", path).Logger()

	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		s, err := decode(v)
		if err != nil {
			logger.Error().Err(err).Msg("settings reload failed")
			return
		}
		logger.Info().Stringer("op", e.Op).Msg("settings reloaded")
		onChange(s)
	})
	v.WatchConfig()
	return nil
}
