package geo

import (
	"fmt"
	"math"
)

// metersPerMile converts between metric pace and imperial pace.
const metersPerMile = 1609.344

// Split is one fixed-distance segment of a track.
type Split struct {
	Number        int     `json:"number"`
	DistanceM     float64 `json:"distance_m"`
	DurationMs    int64   `json:"duration_ms"`
	PaceSecPerKm  float64 `json:"pace_sec_per_km"`
	CumulativeM   float64 `json:"cumulative_distance_m"`
	CumulativeMs  int64   `json:"cumulative_time_ms"`
	PaceFormatted string  `json:"pace_formatted"`
}

// Pace returns seconds per kilometer, or 0 for degenerate input. The zero
// sentinel keeps display-path callers crash-free; FormatPace renders it as a
// placeholder.
func Pace(distanceM float64, durationMs int64) float64 {
	if distanceM <= 0 || durationMs <= 0 {
		return 0
	}
	return (float64(durationMs) / 1000) / (distanceM / 1000)
}

// PacePerMile returns seconds per mile, or 0 for degenerate input.
func PacePerMile(distanceM float64, durationMs int64) float64 {
	if distanceM <= 0 || durationMs <= 0 {
		return 0
	}
	return (float64(durationMs) / 1000) / (distanceM / metersPerMile)
}

// SpeedToPace converts meters per second to seconds per kilometer.
func SpeedToPace(speedMps float64) float64 {
	if speedMps <= 0 {
		return 0
	}
	return 1000 / speedMps
}

// PaceToSpeed converts seconds per kilometer to meters per second.
func PaceToSpeed(paceSecPerKm float64) float64 {
	if paceSecPerKm <= 0 {
		return 0
	}
	return 1000 / paceSecPerKm
}

// FormatPace renders a pace as M:SS. Sentinel, NaN and infinite paces render
// as "--:--".
func FormatPace(paceSecPerKm float64) string {
	if paceSecPerKm <= 0 || math.IsNaN(paceSecPerKm) || math.IsInf(paceSecPerKm, 0) {
		return "--:--"
	}
	total := int64(paceSecPerKm)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatPaceMile renders a per-km pace as the equivalent per-mile pace.
func FormatPaceMile(paceSecPerKm float64) string {
	return FormatPace(paceSecPerKm * 1.60934)
}

// FormatDuration renders milliseconds as M:SS, switching to H:MM:SS at one
// hour.
func FormatDuration(durationMs int64) string {
	totalSecs := durationMs / 1000
	hours := totalSecs / 3600
	minutes := (totalSecs % 3600) / 60
	seconds := totalSecs % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormatDistance renders meters, switching to kilometers at 1000 m.
func FormatDistance(distanceM float64) string {
	if distanceM < 1000 {
		return fmt.Sprintf("%.0f m", distanceM)
	}
	return fmt.Sprintf("%.2f km", distanceM/1000)
}

// FormatDistanceMiles renders meters as miles, or feet under a tenth of a
// mile.
func FormatDistanceMiles(distanceM float64) string {
	miles := distanceM / metersPerMile
	if miles < 0.1 {
		return fmt.Sprintf("%.0f ft", distanceM*3.28084)
	}
	return fmt.Sprintf("%.2f mi", miles)
}

// Splits cuts a track into consecutive fixed-distance segments. Boundary
// times are interpolated within the bracketing segment, so split durations
// are deltas between boundary times and cover the track exhaustively up to
// the last full split. A trailing partial split is not emitted.
func Splits(points []Point, splitDistanceM float64) []Split {
	if len(points) < 2 || splitDistanceM <= 0 {
		return nil
	}

	cumulative := CumulativeDistances(points)
	if cumulative[len(cumulative)-1] < splitDistanceM {
		return nil
	}

	var splits []Split
	splitNum := 1
	target := splitDistanceM
	var prevBoundaryMs int64

	for i := 1; i < len(points); i++ {
		for cumulative[i] >= target {
			segment := cumulative[i] - cumulative[i-1]
			segmentMs := float64(points[i].TimestampMs - points[i-1].TimestampMs)

			var boundaryMs int64
			if segment > zeroSegmentM {
				fraction := (target - cumulative[i-1]) / segment
				base := float64(points[i-1].TimestampMs - points[0].TimestampMs)
				boundaryMs = int64(base + segmentMs*fraction)
			} else {
				boundaryMs = points[i].TimestampMs - points[0].TimestampMs
			}

			duration := boundaryMs - prevBoundaryMs
			pace := Pace(splitDistanceM, duration)
			splits = append(splits, Split{
				Number:        splitNum,
				DistanceM:     splitDistanceM,
				DurationMs:    duration,
				PaceSecPerKm:  pace,
				CumulativeM:   target,
				CumulativeMs:  boundaryMs,
				PaceFormatted: FormatPace(pace),
			})

			prevBoundaryMs = boundaryMs
			splitNum++
			target += splitDistanceM
		}
	}
	return splits
}

// CurrentSpeed estimates speed in m/s from the last windowSize points,
// measuring straight-line distance between the window's endpoints.
func CurrentSpeed(points []Point, windowSize int) float64 {
	if len(points) < 2 {
		return 0
	}

	start := len(points) - windowSize
	if start < 0 {
		start = 0
	}
	window := points[start:]
	if len(window) < 2 {
		return 0
	}

	first, last := window[0], window[len(window)-1]
	elapsedMs := last.TimestampMs - first.TimestampMs
	if elapsedMs <= 0 {
		return 0
	}
	return Distance(first, last) / (float64(elapsedMs) / 1000)
}

// EstimateFinishTime projects the total duration for targetDistanceM at the
// pace implied by the progress so far. ok is false before any progress.
func EstimateFinishTime(targetDistanceM, currentDistanceM float64, currentDurationMs int64) (int64, bool) {
	if currentDistanceM <= 0 || currentDurationMs <= 0 {
		return 0, false
	}
	pacePerMeter := float64(currentDurationMs) / currentDistanceM
	return int64(targetDistanceM * pacePerMeter), true
}

// ProjectDistance extrapolates the distance covered at targetDurationMs from
// the average speed so far.
func ProjectDistance(currentDistanceM float64, currentDurationMs, targetDurationMs int64) float64 {
	if currentDurationMs <= 0 {
		return 0
	}
	speed := currentDistanceM / float64(currentDurationMs)
	return speed * float64(targetDurationMs)
}
