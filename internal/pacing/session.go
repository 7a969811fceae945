package pacing

import (
	"fmt"
	"math"
	"sync"

	"github.com/ericcurtin/BansheeRun/internal/geo"
)

// Status is the runner's standing against the ghost.
type Status string

const (
	StatusAhead   Status = "ahead"
	StatusBehind  Status = "behind"
	StatusUnknown Status = "unknown"
)

// Session compares a live run against one reference track (the ghost). The
// ghost's total distance is computed once at construction since every status
// query needs it. The mutex guards ghost replacement against concurrent
// status reads.
type Session struct {
	mu             sync.RWMutex
	ghost          []geo.Point
	totalDistanceM float64
}

func NewSession(ghost []geo.Point) *Session {
	return &Session{
		ghost:          ghost,
		totalDistanceM: geo.TotalDistance(ghost),
	}
}

// SetGhost replaces the reference track.
func (s *Session) SetGhost(ghost []geo.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ghost = ghost
	s.totalDistanceM = geo.TotalDistance(ghost)
}

// GhostDistance returns the ghost track's total distance in meters.
func (s *Session) GhostDistance() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalDistanceM
}

// GhostDurationMs returns the ghost track's total duration.
func (s *Session) GhostDurationMs() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.ghost) == 0 {
		return 0
	}
	return s.ghost[len(s.ghost)-1].TimestampMs - s.ghost[0].TimestampMs
}

// Status reports whether the runner at current is ahead of or behind the
// ghost elapsedMs into the run. Unknown when the ghost track is empty. The
// runner's progress along the ghost route is approximated by the cumulative
// distance to the nearest ghost point, not a true polyline projection; GPS
// noise dominates the difference in practice.
func (s *Session) Status(current geo.Point, elapsedMs int64) Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.ghost) == 0 {
		return StatusUnknown
	}

	ghostDistance := geo.DistanceAtTime(s.ghost, elapsedMs)
	runnerDistance := s.distanceFromStart(current)
	if ghostDistance > runnerDistance {
		return StatusBehind
	}
	return StatusAhead
}

// IsBehind reports whether the ghost is further along than the runner.
func (s *Session) IsBehind(current geo.Point, elapsedMs int64) bool {
	return s.Status(current, elapsedMs) == StatusBehind
}

// TimeDifferenceMs returns elapsedMs minus the ghost's time at the runner's
// distance. Positive means the runner is behind schedule. Zero for an empty
// ghost track.
func (s *Session) TimeDifferenceMs(current geo.Point, elapsedMs int64) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.ghost) == 0 {
		return 0
	}

	runnerDistance := s.distanceFromStart(current)
	ghostTime, ok := geo.TimeAtDistance(s.ghost, runnerDistance)
	if !ok {
		return 0
	}
	return elapsedMs - ghostTime
}

// State is a snapshot of the ghost relative to the runner, shaped for live
// display. Positive deltas mean the ghost is ahead.
type State struct {
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	DistanceM      float64 `json:"distance_m"`
	TimeDeltaMs    int64   `json:"time_delta_ms"`
	DistanceDeltaM float64 `json:"distance_delta_m"`
	Status         Status  `json:"status"`
	DeltaDisplay   string  `json:"delta_display"`
}

// State computes the full snapshot in one pass: ghost position and distance
// at elapsedMs, runner progress, and the display string.
func (s *Session) State(current geo.Point, elapsedMs int64) State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.ghost) == 0 {
		return State{Status: StatusUnknown, DeltaDisplay: "Even"}
	}

	ghostPos, _ := geo.PositionAtTime(s.ghost, elapsedMs)
	ghostDistance := geo.DistanceAtTime(s.ghost, elapsedMs)
	runnerDistance := s.distanceFromStart(current)

	distanceDelta := ghostDistance - runnerDistance
	status := StatusAhead
	if distanceDelta > 0 {
		status = StatusBehind
	}

	var timeDelta int64
	if ghostTime, ok := geo.TimeAtDistance(s.ghost, runnerDistance); ok {
		timeDelta = elapsedMs - ghostTime
	}

	return State{
		Lat:            ghostPos.Lat,
		Lon:            ghostPos.Lon,
		DistanceM:      ghostDistance,
		TimeDeltaMs:    timeDelta,
		DistanceDeltaM: distanceDelta,
		Status:         status,
		DeltaDisplay:   FormatDelta(distanceDelta),
	}
}

// distanceFromStart approximates how far along the ghost route the runner is
// by finding the nearest ghost point and returning its cumulative distance.
// Callers hold at least the read lock.
func (s *Session) distanceFromStart(current geo.Point) float64 {
	best := 0.0
	minSeparation := math.MaxFloat64
	cumulative := 0.0

	for i, p := range s.ghost {
		if i > 0 {
			cumulative += geo.Distance(s.ghost[i-1], p)
		}
		if separation := geo.Distance(current, p); separation < minSeparation {
			minSeparation = separation
			best = cumulative
		}
	}
	return best
}

// FormatDelta renders a distance gap for display, from the ghost's point of
// view: a positive delta means the runner trails the ghost.
func FormatDelta(distanceDeltaM float64) string {
	abs := math.Abs(distanceDeltaM)
	direction := "ahead"
	if distanceDeltaM > 0 {
		direction = "behind"
	}

	switch {
	case abs < 1:
		return "Even"
	case abs < 1000:
		return fmt.Sprintf("%.0fm %s", abs, direction)
	default:
		return fmt.Sprintf("%.2fkm %s", abs/1000, direction)
	}
}
