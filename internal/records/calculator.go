package records

import (
	"github.com/ericcurtin/BansheeRun/internal/activity"
	"github.com/ericcurtin/BansheeRun/internal/geo"
)

// SegmentTime is the fastest effort covering DistanceM within a track.
type SegmentTime struct {
	DistanceM float64 `json:"distance_m"`
	TimeMs    int64   `json:"time_ms"`
	StartIdx  int     `json:"start_idx"`
	EndIdx    int     `json:"end_idx"`
}

const zeroSegmentM = 0.001

// FindBestSegment runs a sliding window over the cumulative-distance array
// looking for the minimum-time window spanning at least targetM meters. Both
// pointers only move forward, so the scan is O(n) amortized. The end time is
// interpolated at the exact target distance rather than snapped to a point.
// Returns ok=false when the track is shorter than targetM.
func FindBestSegment(points []geo.Point, cumulative []float64, targetM float64) (SegmentTime, bool) {
	if len(points) < 2 || len(cumulative) != len(points) || targetM <= 0 {
		return SegmentTime{}, false
	}
	if cumulative[len(cumulative)-1] < targetM {
		return SegmentTime{}, false
	}

	best := SegmentTime{DistanceM: targetM}
	found := false
	end := 1
	for start := 0; start < len(points)-1; start++ {
		if cumulative[len(cumulative)-1]-cumulative[start] < targetM {
			break
		}
		if end <= start {
			end = start + 1
		}
		for end < len(points) && cumulative[end]-cumulative[start] < targetM {
			end++
		}
		if end == len(points) {
			break
		}

		endTime := timeAtCumulative(points, cumulative, end, cumulative[start]+targetM)
		elapsed := endTime - points[start].TimestampMs
		if !found || elapsed < best.TimeMs {
			best.TimeMs = elapsed
			best.StartIdx = start
			best.EndIdx = end
			found = true
		}
	}
	return best, found
}

// timeAtCumulative interpolates the timestamp at which the track reaches
// targetCum meters, where points[end] is the first point at or past it.
func timeAtCumulative(points []geo.Point, cumulative []float64, end int, targetCum float64) int64 {
	p1, p2 := points[end-1], points[end]
	segment := cumulative[end] - cumulative[end-1]
	if segment < zeroSegmentM {
		return p1.TimestampMs
	}
	fraction := (targetCum - cumulative[end-1]) / segment
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}
	return p1.TimestampMs + int64(fraction*float64(p2.TimestampMs-p1.TimestampMs))
}

// SegmentTimes finds the best effort for every standard distance of the
// activity's type, skipping distances the activity never covered.
func SegmentTimes(a activity.Activity) []SegmentTime {
	cumulative := geo.CumulativeDistances(a.Points)
	var results []SegmentTime
	for _, distance := range a.Type.PBDistances() {
		if st, ok := FindBestSegment(a.Points, cumulative, distance); ok {
			results = append(results, st)
		}
	}
	return results
}
