package geo

// Interpolation along a track assumes non-decreasing timestamps and therefore
// non-decreasing cumulative distances. The scan is linear and the first
// bracketing segment wins, so out-of-order input still yields a defined (if
// meaningless) result instead of a crash.

// zeroSegmentM is the segment length below which interpolation snaps to the
// segment start instead of dividing by a near-zero length.
const zeroSegmentM = 0.001

// PositionAtTime returns the interpolated position elapsedMs after the start
// of the track. Times before the start clamp to the first point and times
// past the end clamp to the last. ok is false only for an empty track.
func PositionAtTime(points []Point, elapsedMs int64) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	if len(points) == 1 || elapsedMs <= 0 {
		return points[0], true
	}

	target := points[0].TimestampMs + elapsedMs
	for i := 0; i < len(points)-1; i++ {
		p1, p2 := points[i], points[i+1]
		if target >= p1.TimestampMs && target <= p2.TimestampMs {
			segmentMs := p2.TimestampMs - p1.TimestampMs
			if segmentMs <= 0 {
				return p1, true
			}
			fraction := float64(target-p1.TimestampMs) / float64(segmentMs)
			return lerp(p1, p2, fraction), true
		}
	}
	return points[len(points)-1], true
}

// PositionAtDistance returns the interpolated position distanceM meters along
// the track. ok is false only for an empty track.
func PositionAtDistance(points []Point, distanceM float64) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	if len(points) == 1 || distanceM <= 0 {
		return points[0], true
	}

	cumulative := CumulativeDistances(points)
	if distanceM >= cumulative[len(cumulative)-1] {
		return points[len(points)-1], true
	}

	for i := 0; i < len(points)-1; i++ {
		d1, d2 := cumulative[i], cumulative[i+1]
		if distanceM >= d1 && distanceM <= d2 {
			segment := d2 - d1
			if segment < zeroSegmentM {
				return points[i], true
			}
			fraction := (distanceM - d1) / segment
			return lerp(points[i], points[i+1], fraction), true
		}
	}
	return points[len(points)-1], true
}

// TimeAtDistance returns the elapsed milliseconds at which the track reaches
// distanceM. ok is false for an empty track or when no bracketing segment is
// found.
func TimeAtDistance(points []Point, distanceM float64) (int64, bool) {
	if len(points) == 0 {
		return 0, false
	}
	if distanceM <= 0 {
		return 0, true
	}

	cumulative := CumulativeDistances(points)
	if distanceM >= cumulative[len(cumulative)-1] {
		return points[len(points)-1].TimestampMs - points[0].TimestampMs, true
	}

	for i := 0; i < len(points)-1; i++ {
		d1, d2 := cumulative[i], cumulative[i+1]
		if distanceM >= d1 && distanceM <= d2 {
			base := points[i].TimestampMs - points[0].TimestampMs
			segment := d2 - d1
			if segment < zeroSegmentM {
				return base, true
			}
			fraction := (distanceM - d1) / segment
			segmentMs := float64(points[i+1].TimestampMs - points[i].TimestampMs)
			return base + int64(segmentMs*fraction), true
		}
	}
	return 0, false
}

// DistanceAtTime returns the distance covered elapsedMs after the start of
// the track. Zero for empty tracks or non-positive elapsed time; the total
// distance once the elapsed time passes the last point.
func DistanceAtTime(points []Point, elapsedMs int64) float64 {
	if len(points) == 0 || elapsedMs <= 0 {
		return 0
	}

	target := points[0].TimestampMs + elapsedMs
	cumulative := CumulativeDistances(points)

	for i := 0; i < len(points)-1; i++ {
		p1, p2 := points[i], points[i+1]
		if target >= p1.TimestampMs && target <= p2.TimestampMs {
			segmentMs := p2.TimestampMs - p1.TimestampMs
			if segmentMs <= 0 {
				return cumulative[i]
			}
			fraction := float64(target-p1.TimestampMs) / float64(segmentMs)
			return cumulative[i] + (cumulative[i+1]-cumulative[i])*fraction
		}
	}
	return cumulative[len(cumulative)-1]
}

// lerp interpolates every component between two points by fraction in [0,1].
// Optional fields carry over from whichever side has them when only one does.
func lerp(p1, p2 Point, fraction float64) Point {
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}

	out := Point{
		Lat:         p1.Lat + (p2.Lat-p1.Lat)*fraction,
		Lon:         p1.Lon + (p2.Lon-p1.Lon)*fraction,
		TimestampMs: p1.TimestampMs + int64(float64(p2.TimestampMs-p1.TimestampMs)*fraction),
		Accuracy:    p1.Accuracy,
	}
	out.Altitude = lerpOptional(p1.Altitude, p2.Altitude, fraction)
	out.Speed = lerpOptional(p1.Speed, p2.Speed, fraction)
	return out
}

func lerpOptional(a, b *float64, fraction float64) *float64 {
	switch {
	case a != nil && b != nil:
		v := *a + (*b-*a)*fraction
		return &v
	case a != nil:
		v := *a
		return &v
	case b != nil:
		v := *b
		return &v
	default:
		return nil
	}
}
