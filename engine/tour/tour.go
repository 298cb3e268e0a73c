// Package tour strings bookmarks together into camera tours that play back at a uniform
// perceived speed, and reads and writes them as YAML or TOML files.
package tour

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-manip/common"
	"github.com/Carmen-Shannon/oxy-manip/engine/manipulator"
)

var (
	// ErrEmptyTour is returned when sampling a tour without waypoints.
	ErrEmptyTour = errors.New("tour has no waypoints")

	// ErrMixedModes is returned when a tour holds bookmarks from more than one manipulator mode.
	ErrMixedModes = errors.New("tour mixes bookmarks from different modes")
)

// Tour is a named, ordered list of bookmarks visited one after another.
// All waypoints must come from the same manipulator mode.
type Tour struct {
	Name      string                 `json:"name" yaml:"name" toml:"name"`
	Waypoints []manipulator.Bookmark `json:"waypoints" yaml:"waypoints" toml:"waypoints"`
}

// New creates a tour from the given waypoints.
//
// Parameters:
//   - name: display name of the tour
//   - waypoints: the bookmarks to visit, in order
//
// Returns:
//   - *Tour: the new tour
//   - error: ErrMixedModes if the waypoints do not share a mode
func New(name string, waypoints ...manipulator.Bookmark) (*Tour, error) {
	t := &Tour{Name: name, Waypoints: waypoints}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks that every waypoint shares the mode of the first one.
//
// Returns:
//   - error: ErrMixedModes (wrapped with the offending index) or nil
func (t *Tour) Validate() error {
	for i := 1; i < len(t.Waypoints); i++ {
		if t.Waypoints[i].Mode != t.Waypoints[0].Mode {
			return fmt.Errorf("%w: waypoint %d is %s, expected %s",
				ErrMixedModes, i, t.Waypoints[i].Mode, t.Waypoints[0].Mode)
		}
	}
	return nil
}

// Mode returns the manipulator mode of the tour's waypoints.
//
// Returns:
//   - manipulator.Mode: the shared mode
//   - bool: false if the tour is empty
func (t *Tour) Mode() (manipulator.Mode, bool) {
	if len(t.Waypoints) == 0 {
		return manipulator.ModeOrbit, false
	}
	return t.Waypoints[0].Mode, true
}

// Add appends a waypoint to the end of the tour.
//
// Parameters:
//   - b: the bookmark to append
//
// Returns:
//   - error: ErrMixedModes if b does not match the tour's mode
func (t *Tour) Add(b manipulator.Bookmark) error {
	if mode, ok := t.Mode(); ok && mode != b.Mode {
		return fmt.Errorf("%w: cannot add %s bookmark to %s tour", ErrMixedModes, b.Mode, mode)
	}
	t.Waypoints = append(t.Waypoints, b)
	return nil
}

// Durations returns the travel time of each segment between consecutive waypoints.
// The tour must be valid; mixing modes panics.
//
// Returns:
//   - []float64: one duration per segment, len(Waypoints)-1 entries
func (t *Tour) Durations() []float64 {
	if len(t.Waypoints) < 2 {
		return nil
	}
	durations := make([]float64, len(t.Waypoints)-1)
	for i := range durations {
		durations[i] = manipulator.Duration(t.Waypoints[i], t.Waypoints[i+1])
	}
	return durations
}

// TotalDuration returns the sum of all segment durations.
func (t *Tour) TotalDuration() float64 {
	var total float64
	for _, d := range t.Durations() {
		total += d
	}
	return total
}

// Sample returns the view at time at along the tour.
// Segments are traversed in order, each taking its Duration, so the whole tour moves at
// a uniform perceived speed. Zero-length segments are skipped.
//
// Parameters:
//   - at: time since the start of the tour, clamped to [0, TotalDuration()]
//
// Returns:
//   - manipulator.Bookmark: the interpolated view
//   - error: ErrEmptyTour or ErrMixedModes
func (t *Tour) Sample(at float64) (manipulator.Bookmark, error) {
	if len(t.Waypoints) == 0 {
		return manipulator.Bookmark{}, ErrEmptyTour
	}
	if err := t.Validate(); err != nil {
		return manipulator.Bookmark{}, err
	}

	durations := t.Durations()
	var total float64
	for _, d := range durations {
		total += d
	}
	at = common.Clamp(at, 0, total)

	for i, d := range durations {
		if d == 0 {
			continue
		}
		if at < d {
			return manipulator.Interpolate(t.Waypoints[i], t.Waypoints[i+1], at/d), nil
		}
		at -= d
	}
	return t.Waypoints[len(t.Waypoints)-1], nil
}
