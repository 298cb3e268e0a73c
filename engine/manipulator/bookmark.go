package manipulator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrUnknownMode is returned when a mode name cannot be parsed.
var ErrUnknownMode = errors.New("unknown manipulator mode")

// Mode identifies a manipulator implementation and the bookmark variant it produces.
type Mode int

const (
	// ModeOrbit rotates the camera on a sphere around a pivot.
	ModeOrbit Mode = iota
	// ModeMap looks along the ground plane normal and pans/zooms across the plane.
	ModeMap
)

func (m Mode) String() string {
	switch m {
	case ModeOrbit:
		return "orbit"
	case ModeMap:
		return "map"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts "orbit" or "map" (case-insensitive) into a Mode.
//
// Parameters:
//   - s: the mode name
//
// Returns:
//   - Mode: the parsed mode
//   - error: ErrUnknownMode (wrapped) if the name is not recognized
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "orbit":
		return ModeOrbit, nil
	case "map":
		return ModeMap, nil
	}
	return ModeOrbit, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MarshalText implements encoding.TextMarshaler so bookmarks serialize their tag by name.
func (m Mode) MarshalText() ([]byte, error) {
	if m != ModeOrbit && m != ModeMap {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MapParams is the map-mode view: the visible extent of the ground plane and its center
// in the plane's local 2D basis, relative to the home target.
type MapParams struct {
	Extent float32    `json:"extent" yaml:"extent" toml:"extent"`
	Center mgl32.Vec2 `json:"center" yaml:"center" toml:"center"`
}

// OrbitParams is the orbit-mode view: spherical angles of the eye around the pivot and
// the eye-to-pivot distance. A negative distance means the camera has zoomed through the
// pivot and looks back at it.
type OrbitParams struct {
	Phi      float32    `json:"phi" yaml:"phi" toml:"phi"`
	Theta    float32    `json:"theta" yaml:"theta" toml:"theta"`
	Distance float32    `json:"distance" yaml:"distance" toml:"distance"`
	Pivot    mgl32.Vec3 `json:"pivot" yaml:"pivot" toml:"pivot"`
}

// Bookmark is a snapshot of a viewing position, tagged with the mode that produced it.
// Only the variant selected by Mode is meaningful. Bookmarks are plain values: copy them,
// store them, and feed them back to a manipulator of the same mode.
type Bookmark struct {
	Mode  Mode        `json:"mode" yaml:"mode" toml:"mode"`
	Map   MapParams   `json:"map,omitempty" yaml:"map,omitempty" toml:"map,omitempty"`
	Orbit OrbitParams `json:"orbit,omitempty" yaml:"orbit,omitempty" toml:"orbit,omitempty"`
}

// NewMapBookmark builds a map-mode bookmark.
//
// Parameters:
//   - extent: visible width (or height, per the fov axis) of the plane
//   - center: view center in the plane's local basis
//
// Returns:
//   - Bookmark: the tagged bookmark
func NewMapBookmark(extent float32, center mgl32.Vec2) Bookmark {
	return Bookmark{Mode: ModeMap, Map: MapParams{Extent: extent, Center: center}}
}

// NewOrbitBookmark builds an orbit-mode bookmark.
//
// Parameters:
//   - phi: elevation in radians
//   - theta: azimuth in radians, measured from +Z toward +X
//   - distance: eye-to-pivot distance, negative when flipped through the pivot
//   - pivot: the orbit center
//
// Returns:
//   - Bookmark: the tagged bookmark
func NewOrbitBookmark(phi, theta, distance float32, pivot mgl32.Vec3) Bookmark {
	return Bookmark{Mode: ModeOrbit, Orbit: OrbitParams{Phi: phi, Theta: theta, Distance: distance, Pivot: pivot}}
}

// checkSameMode panics when two bookmarks come from different modes.
func checkSameMode(op string, a, b Bookmark) {
	if a.Mode != b.Mode {
		panic(fmt.Sprintf("manipulator: %s of %s and %s bookmarks", op, a.Mode, b.Mode))
	}
}
