package tour

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for tour files whose extension is neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported tour file format")

// Format is a tour file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the encoding from a file extension: .yaml and .yml select YAML, .toml selects TOML.
//
// Parameters:
//   - path: the tour file path
//
// Returns:
//   - Format: the detected encoding
//   - error: ErrUnsupportedFormat (wrapped) for any other extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// Marshal encodes a tour.
//
// Parameters:
//   - t: the tour to encode
//   - format: the target encoding
//
// Returns:
//   - []byte: the encoded tour
//   - error: error if the format is unknown or encoding fails
func Marshal(t *Tour, format Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(t)
	case FormatTOML:
		data, err = toml.Marshal(t)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode tour as %s: %w", format, err)
	}
	return data, nil
}

// Unmarshal decodes and validates a tour.
//
// Parameters:
//   - data: the encoded tour
//   - format: the source encoding
//
// Returns:
//   - *Tour: the decoded tour
//   - error: error if decoding fails or the waypoints mix modes
func Unmarshal(data []byte, format Format) (*Tour, error) {
	var t Tour
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &t)
	case FormatTOML:
		err = toml.Unmarshal(data, &t)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s tour: %w", format, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Load reads a tour file, choosing the decoder from the file extension.
//
// Parameters:
//   - path: the tour file path
//
// Returns:
//   - *Tour: the loaded tour
//   - error: error if the file cannot be read, has an unsupported extension, or is invalid
func Load(path string) (*Tour, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tour file %s: %w", path, err)
	}
	t, err := Unmarshal(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load tour file %s: %w", path, err)
	}
	return t, nil
}

// Save writes a tour file, choosing the encoder from the file extension.
//
// Parameters:
//   - path: the tour file path
//   - t: the tour to write
//
// Returns:
//   - error: error if the extension is unsupported or the file cannot be written
func Save(path string, t *Tour) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(t, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write tour file %s: %w", path, err)
	}
	return nil
}
