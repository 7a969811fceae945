package activity

import (
	"fmt"

	"github.com/ericcurtin/BansheeRun/internal/geo"
)

// Type is the kind of activity a track was recorded for.
type Type string

const (
	TypeRun         Type = "run"
	TypeWalk        Type = "walk"
	TypeCycle       Type = "cycle"
	TypeRollerSkate Type = "roller_skate"
)

// Standard distances in meters.
const (
	HalfMarathonM = 21_097.5
	MarathonM     = 42_195.0
)

var pbDistancesByType = map[Type][]float64{
	TypeRun:         {1000, 5000, 10_000, HalfMarathonM, MarathonM},
	TypeWalk:        {1000, 5000, 10_000, HalfMarathonM, MarathonM},
	TypeCycle:       {10_000, 25_000, 50_000, 100_000},
	TypeRollerSkate: {1000, 5000, 10_000, HalfMarathonM, MarathonM},
}

// ParseType validates an activity type string.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if _, ok := pbDistancesByType[t]; !ok {
		return "", fmt.Errorf("unknown activity type %q", s)
	}
	return t, nil
}

// PBDistances returns the standard personal-best distances for the type,
// sorted ascending.
func (t Type) PBDistances() []float64 {
	return pbDistancesByType[t]
}

// Valid reports whether the type is one of the known activity types.
func (t Type) Valid() bool {
	_, ok := pbDistancesByType[t]
	return ok
}

// DistanceName returns the display name for a standard distance.
func DistanceName(distanceM float64) string {
	switch int64(distanceM) {
	case 1000:
		return "1K"
	case 5000:
		return "5K"
	case 10_000:
		return "10K"
	case 21_097, 21_098:
		return "Half Marathon"
	case 25_000:
		return "25K"
	case 42_195:
		return "Marathon"
	case 50_000:
		return "50K"
	case 100_000:
		return "100K"
	}
	return "Custom"
}

// Activity is a recorded track with its derived totals.
type Activity struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Type           Type        `json:"activity_type"`
	Points         []geo.Point `json:"points"`
	TotalDistanceM float64     `json:"total_distance_meters"`
	DurationMs     int64       `json:"duration_ms"`
	RecordedAt     int64       `json:"recorded_at"`
}

// New derives totals from the coordinate sequence. Tracks with fewer than two
// points have zero distance and duration.
func New(id, name string, activityType Type, points []geo.Point, recordedAt int64) Activity {
	a := Activity{
		ID:         id,
		Name:       name,
		Type:       activityType,
		Points:     points,
		RecordedAt: recordedAt,
	}
	a.TotalDistanceM = geo.TotalDistance(points)
	if len(points) >= 2 {
		a.DurationMs = points[len(points)-1].TimestampMs - points[0].TimestampMs
	}
	return a
}

// AvgPaceSecPerKm returns the average pace over the whole activity.
func (a Activity) AvgPaceSecPerKm() float64 {
	return geo.Pace(a.TotalDistanceM, a.DurationMs)
}

// AvgSpeedKmh returns the average speed in km/h, 0 for zero-duration tracks.
func (a Activity) AvgSpeedKmh() float64 {
	if a.DurationMs <= 0 {
		return 0
	}
	hours := float64(a.DurationMs) / 3_600_000
	return (a.TotalDistanceM / 1000) / hours
}

// Summary is the list view of an activity, without the coordinates.
type Summary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Type           Type    `json:"activity_type"`
	TotalDistanceM float64 `json:"total_distance_meters"`
	DurationMs     int64   `json:"duration_ms"`
	RecordedAt     int64   `json:"recorded_at"`
	PaceSecPerKm   float64 `json:"pace_sec_per_km"`
	PaceFormatted  string  `json:"pace_formatted"`
}

// Summary builds the list view of the activity.
func (a Activity) Summary() Summary {
	pace := a.AvgPaceSecPerKm()
	return Summary{
		ID:             a.ID,
		Name:           a.Name,
		Type:           a.Type,
		TotalDistanceM: a.TotalDistanceM,
		DurationMs:     a.DurationMs,
		RecordedAt:     a.RecordedAt,
		PaceSecPerKm:   pace,
		PaceFormatted:  geo.FormatPace(pace),
	}
}
