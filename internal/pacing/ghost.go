package pacing

import (
	"errors"

	"github.com/ericcurtin/BansheeRun/internal/geo"
)

// GhostKind distinguishes a replayed recorded activity from a synthetic pacer
// moving at a fixed target pace.
type GhostKind string

const (
	GhostRecorded GhostKind = "recorded"
	GhostPacer    GhostKind = "pacer"
)

// Ghost describes what the runner is racing against.
type Ghost struct {
	Kind               GhostKind `json:"kind"`
	Name               string    `json:"name"`
	ActivityID         string    `json:"activity_id,omitempty"`
	TargetPaceSecPerKm float64   `json:"target_pace_sec_per_km,omitempty"`
}

// FromActivity builds a ghost replaying a recorded activity.
func FromActivity(activityID, name string) Ghost {
	return Ghost{Kind: GhostRecorded, Name: name, ActivityID: activityID}
}

// Pacer builds a synthetic ghost holding a fixed pace in seconds per km.
func Pacer(targetPaceSecPerKm float64, name string) Ghost {
	return Ghost{Kind: GhostPacer, Name: name, TargetPaceSecPerKm: targetPaceSecPerKm}
}

// PacerFromMinPerKm builds a pacer from a minutes-per-km figure.
func PacerFromMinPerKm(minutes float64, name string) Ghost {
	return Pacer(minutes*60, name)
}

var errInvalidPace = errors.New("target pace must be positive")

// SyntheticTrack assigns timestamps to a route so that traversing it point to
// point matches the target pace exactly. The result plugs into Session like
// any recorded track.
func SyntheticTrack(route []geo.Point, targetPaceSecPerKm float64) ([]geo.Point, error) {
	if targetPaceSecPerKm <= 0 {
		return nil, errInvalidPace
	}

	track := make([]geo.Point, len(route))
	cumulative := geo.CumulativeDistances(route)
	for i, p := range route {
		track[i] = p
		track[i].TimestampMs = int64(cumulative[i] / 1000 * targetPaceSecPerKm * 1000)
	}
	return track, nil
}

// PacePreset is a common target pace offered in the UI.
type PacePreset struct {
	PaceSecPerKm float64 `json:"pace_sec_per_km"`
	Label        string  `json:"label"`
}

// PacePresets returns the built-in pace targets from 4:00/km down.
func PacePresets() []PacePreset {
	return []PacePreset{
		{240, "4:00/km (Elite)"},
		{270, "4:30/km"},
		{300, "5:00/km"},
		{330, "5:30/km"},
		{360, "6:00/km"},
		{390, "6:30/km"},
		{420, "7:00/km"},
		{480, "8:00/km"},
		{540, "9:00/km"},
		{600, "10:00/km"},
	}
}
