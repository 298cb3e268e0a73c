// Package settings loads the viewer settings file: window geometry, input tuning and the
// manipulator configuration. Values come from a YAML file with environment overrides
// (prefix OXYMANIP, dots replaced by underscores, e.g. OXYMANIP_MANIPULATOR_ZOOM_SPEED).
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/Carmen-Shannon/oxy-manip/engine/manipulator"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "OXYMANIP"

// Settings holds all viewer settings.
type Settings struct {
	Window      WindowSettings      `mapstructure:"window"`
	Engine      EngineSettings      `mapstructure:"engine"`
	Mode        string              `mapstructure:"mode"` // orbit or map
	Input       InputSettings       `mapstructure:"input"`
	Manipulator ManipulatorSettings `mapstructure:"manipulator"`
	Tour        string              `mapstructure:"tour"`  // tour file loaded at startup, optional
	Model       string              `mapstructure:"model"` // glTF file whose bounds set the home view, optional
	LogLevel    string              `mapstructure:"log_level"`
}

// WindowSettings configures the viewer window.
type WindowSettings struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

// EngineSettings configures the frame loop.
type EngineSettings struct {
	TickRate  float64 `mapstructure:"tick_rate"`  // ticks per second
	Profiling bool    `mapstructure:"profiling"`  // log frame statistics at debug level
	TourSpeed float64 `mapstructure:"tour_speed"` // tour path units per second
}

// InputSettings configures pointer event routing.
type InputSettings struct {
	FlipY       bool    `mapstructure:"flip_y"`
	ScrollScale float32 `mapstructure:"scroll_scale"`
}

// ManipulatorSettings mirrors manipulator.Config in file form.
// Zero values fall back to the manipulator defaults.
type ManipulatorSettings struct {
	ZoomSpeed      float32    `mapstructure:"zoom_speed"`
	HomeTarget     mgl32.Vec3 `mapstructure:"home_target"`
	HomeUpVector   mgl32.Vec3 `mapstructure:"home_up_vector"`
	GroundPlane    mgl32.Vec4 `mapstructure:"ground_plane"`
	HomeVector     mgl32.Vec3 `mapstructure:"home_vector"`
	OrbitSpeed     mgl32.Vec2 `mapstructure:"orbit_speed"`
	StrafeSpeed    mgl32.Vec2 `mapstructure:"strafe_speed"`
	FovDirection   string     `mapstructure:"fov_direction"` // vertical or horizontal
	FovDegrees     float32    `mapstructure:"fov_degrees"`
	FarPlane       float32    `mapstructure:"far_plane"`
	MapExtent      mgl32.Vec2 `mapstructure:"map_extent"`
	MapMinDistance float32    `mapstructure:"map_min_distance"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() *Settings {
	return &Settings{
		Window: WindowSettings{
			Title:  "oxy-manip viewer",
			Width:  1280,
			Height: 720,
		},
		Engine: EngineSettings{
			TickRate:  60,
			TourSpeed: 1,
		},
		Mode: manipulator.ModeOrbit.String(),
		Input: InputSettings{
			FlipY:       true,
			ScrollScale: 10,
		},
		Manipulator: ManipulatorSettings{
			HomeVector:   mgl32.Vec3{0, 0, 5},
			FovDirection: manipulator.FovVertical.String(),
			FovDegrees:   manipulator.DefaultFovDegrees,
		},
		LogLevel: zerolog.InfoLevel.String(),
	}
}

// Load reads settings from a YAML file, layered over DefaultSettings and under environment overrides.
// A missing file is not an error; the defaults (plus environment) are returned.
//
// Parameters:
//   - path: the settings file path
//
// Returns:
//   - *Settings: the loaded settings
//   - error: error if the file exists but cannot be read or decoded
func Load(path string) (*Settings, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
		}
	}
	return decode(v)
}

// ManipulatorMode parses the configured mode.
//
// Returns:
//   - manipulator.Mode: the parsed mode
//   - error: manipulator.ErrUnknownMode (wrapped) for an unknown name
func (s *Settings) ManipulatorMode() (manipulator.Mode, error) {
	return manipulator.ParseMode(s.Mode)
}

// ManipulatorConfig builds a defaulted manipulator configuration whose viewport matches the window.
//
// Returns:
//   - manipulator.Config: the configuration
//   - error: error if the fov direction is unknown
func (s *Settings) ManipulatorConfig() (manipulator.Config, error) {
	m := s.Manipulator
	fov, err := manipulator.ParseFov(m.FovDirection)
	if err != nil {
		return manipulator.Config{}, fmt.Errorf("invalid manipulator settings: %w", err)
	}
	cfg := manipulator.Config{
		Viewport:       [2]int{s.Window.Width, s.Window.Height},
		ZoomSpeed:      m.ZoomSpeed,
		HomeTarget:     m.HomeTarget,
		HomeUpVector:   m.HomeUpVector,
		GroundPlane:    m.GroundPlane,
		HomeVector:     m.HomeVector,
		OrbitSpeed:     m.OrbitSpeed,
		StrafeSpeed:    m.StrafeSpeed,
		FovDirection:   fov,
		FovDegrees:     m.FovDegrees,
		FarPlane:       m.FarPlane,
		MapExtent:      m.MapExtent,
		MapMinDistance: m.MapMinDistance,
	}
	return cfg.WithDefaults(), nil
}

// Level parses the configured log level, defaulting to info when empty.
//
// Returns:
//   - zerolog.Level: the parsed level
//   - error: error if the level name is unknown
func (s *Settings) Level() (zerolog.Level, error) {
	if s.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s.LogLevel))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level: %w", err)
	}
	return level, nil
}

// newViper creates an isolated viper instance for path with the scalar defaults registered,
// so environment overrides apply even to keys missing from the file.
func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultSettings()
	v.SetDefault("mode", d.Mode)
	v.SetDefault("tour", d.Tour)
	v.SetDefault("model", d.Model)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("engine.tick_rate", d.Engine.TickRate)
	v.SetDefault("engine.profiling", d.Engine.Profiling)
	v.SetDefault("engine.tour_speed", d.Engine.TourSpeed)
	v.SetDefault("input.flip_y", d.Input.FlipY)
	v.SetDefault("input.scroll_scale", d.Input.ScrollScale)
	v.SetDefault("manipulator.zoom_speed", d.Manipulator.ZoomSpeed)
	v.SetDefault("manipulator.fov_direction", d.Manipulator.FovDirection)
	v.SetDefault("manipulator.fov_degrees", d.Manipulator.FovDegrees)
	v.SetDefault("manipulator.far_plane", d.Manipulator.FarPlane)
	v.SetDefault("manipulator.map_min_distance", d.Manipulator.MapMinDistance)
	return v
}

// decode unmarshals the viper state over DefaultSettings.
func decode(v *viper.Viper) (*Settings, error) {
	s := DefaultSettings()
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, nil
}
