package geo

import "math"

// earthRadiusM is the mean Earth radius used for great-circle math.
const earthRadiusM = 6_371_000.0

// Haversine returns the great-circle distance in meters between two
// coordinates.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	sinLat := math.Sin(deltaLat / 2)
	sinLon := math.Sin(deltaLon / 2)

	a := sinLat*sinLat + math.Cos(lat1Rad)*math.Cos(lat2Rad)*sinLon*sinLon
	// Floating rounding can push a just past 1, which would make Asin return NaN.
	if a > 1 {
		a = 1
	}
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusM * c
}

// Distance returns the great-circle distance in meters between two points.
func Distance(p1, p2 Point) float64 {
	return Haversine(p1.Lat, p1.Lon, p2.Lat, p2.Lon)
}

// TotalDistance sums consecutive pairwise distances along a track. Tracks
// with fewer than two points cover zero distance.
func TotalDistance(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}

// CumulativeDistances returns the running distance at each point, starting
// at 0 for the first point.
func CumulativeDistances(points []Point) []float64 {
	if len(points) == 0 {
		return nil
	}
	distances := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		distances[i] = distances[i-1] + Distance(points[i-1], points[i])
	}
	return distances
}

// Bearing returns the initial bearing in degrees [0,360) from the first
// coordinate toward the second.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	x := math.Sin(deltaLon) * math.Cos(lat2Rad)
	y := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(deltaLon)

	deg := math.Atan2(x, y) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// Destination returns the coordinate reached by travelling distanceM meters
// from (lat, lon) along the given bearing.
func Destination(lat, lon, bearingDeg, distanceM float64) (float64, float64) {
	latRad := lat * math.Pi / 180
	lonRad := lon * math.Pi / 180
	bearingRad := bearingDeg * math.Pi / 180
	angular := distanceM / earthRadiusM

	destLat := math.Asin(math.Sin(latRad)*math.Cos(angular) +
		math.Cos(latRad)*math.Sin(angular)*math.Cos(bearingRad))
	destLon := lonRad + math.Atan2(
		math.Sin(bearingRad)*math.Sin(angular)*math.Cos(latRad),
		math.Cos(angular)-math.Sin(latRad)*math.Sin(destLat))

	return destLat * 180 / math.Pi, destLon * 180 / math.Pi
}
