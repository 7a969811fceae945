package records

import (
	"math"
	"sort"

	"github.com/ericcurtin/BansheeRun/internal/activity"
)

// PersonalBest is the fastest recorded effort over a standard distance for
// one activity type.
type PersonalBest struct {
	Type         activity.Type `json:"activity_type"`
	DistanceM    float64       `json:"distance_m"`
	TimeMs       int64         `json:"time_ms"`
	ActivityID   string        `json:"activity_id"`
	AchievedAt   int64         `json:"achieved_at"`
	PaceMinPerKm float64       `json:"pace_min_per_km"`
}

// DistanceName returns the display label for the PB's distance.
func (pb PersonalBest) DistanceName() string {
	return activity.DistanceName(pb.DistanceM)
}

type registryKey struct {
	activityType activity.Type
	distanceM    int64
}

func keyFor(t activity.Type, distanceM float64) registryKey {
	return registryKey{activityType: t, distanceM: int64(math.Round(distanceM))}
}

// Registry holds one PersonalBest per (activity type, distance) pair.
// Distances are keyed to the nearest meter.
type Registry struct {
	bests map[registryKey]PersonalBest
}

func NewRegistry() *Registry {
	return &Registry{bests: make(map[registryKey]PersonalBest)}
}

// Get returns the PB for a type/distance pair if one exists.
func (r *Registry) Get(t activity.Type, distanceM float64) (PersonalBest, bool) {
	pb, ok := r.bests[keyFor(t, distanceM)]
	return pb, ok
}

// ForType returns all PBs of one activity type sorted by distance.
func (r *Registry) ForType(t activity.Type) []PersonalBest {
	var out []PersonalBest
	for key, pb := range r.bests {
		if key.activityType == t {
			out = append(out, pb)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceM < out[j].DistanceM })
	return out
}

// All returns every PB sorted by type then distance.
func (r *Registry) All() []PersonalBest {
	var out []PersonalBest
	for _, pb := range r.bests {
		out = append(out, pb)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].DistanceM < out[j].DistanceM
	})
	return out
}

// Update records the candidate only when it is strictly faster than the
// existing PB for its key. Ties keep the older record. Reports whether the
// candidate was stored.
func (r *Registry) Update(candidate PersonalBest) bool {
	key := keyFor(candidate.Type, candidate.DistanceM)
	if existing, ok := r.bests[key]; ok && existing.TimeMs <= candidate.TimeMs {
		return false
	}
	r.bests[key] = candidate
	return true
}

// RemoveForActivity drops every PB sourced from the given activity. Used when
// an activity is deleted.
func (r *Registry) RemoveForActivity(activityID string) []PersonalBest {
	var removed []PersonalBest
	for key, pb := range r.bests {
		if pb.ActivityID == activityID {
			removed = append(removed, pb)
			delete(r.bests, key)
		}
	}
	return removed
}

// Apply computes segment times for the activity and folds them into the
// registry, returning the PBs that were newly achieved.
func Apply(r *Registry, a activity.Activity) []PersonalBest {
	var achieved []PersonalBest
	for _, st := range SegmentTimes(a) {
		candidate := PersonalBest{
			Type:         a.Type,
			DistanceM:    st.DistanceM,
			TimeMs:       st.TimeMs,
			ActivityID:   a.ID,
			AchievedAt:   a.RecordedAt,
			PaceMinPerKm: paceMinPerKm(st.DistanceM, st.TimeMs),
		}
		if r.Update(candidate) {
			achieved = append(achieved, candidate)
		}
	}
	return achieved
}

func paceMinPerKm(distanceM float64, timeMs int64) float64 {
	if distanceM <= 0 {
		return 0
	}
	return (float64(timeMs) / 60_000.0) / (distanceM / 1000.0)
}
