package tour

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-manip/engine/manipulator"
)

// Player walks a Tour in real time.
// Speed is measured in tour duration units per second, so a speed of 1 plays every
// segment in exactly its Duration seconds.
type Player struct {
	tour    *Tour
	speed   float64
	total   float64
	elapsed float64
}

// NewPlayer validates t and prepares a player at its first waypoint.
//
// Parameters:
//   - t: the tour to play
//   - speed: playback speed; values <= 0 mean 1
//
// Returns:
//   - *Player: the player
//   - error: ErrEmptyTour or ErrMixedModes (wrapped)
func NewPlayer(t *Tour, speed float64) (*Player, error) {
	if len(t.Waypoints) == 0 {
		return nil, fmt.Errorf("failed to play tour %q: %w", t.Name, ErrEmptyTour)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("failed to play tour %q: %w", t.Name, err)
	}
	if speed <= 0 {
		speed = 1
	}
	return &Player{tour: t, speed: speed, total: t.TotalDuration()}, nil
}

// Advance moves the playhead by dt seconds and returns the view to show.
//
// Parameters:
//   - dt: wall-clock seconds since the previous call
//
// Returns:
//   - manipulator.Bookmark: the view at the new playhead
//   - bool: true once the last waypoint has been reached
func (p *Player) Advance(dt float64) (manipulator.Bookmark, bool) {
	p.elapsed = min(p.elapsed+max(dt, 0)*p.speed, p.total)
	b, _ := p.tour.Sample(p.elapsed)
	return b, p.Done()
}

// Done reports whether the playhead has reached the end of the tour.
func (p *Player) Done() bool {
	return p.elapsed >= p.total
}

// Elapsed returns the playhead position in tour duration units.
func (p *Player) Elapsed() float64 {
	return p.elapsed
}

func (p *Player) Tour() *Tour {
	return p.tour
}
