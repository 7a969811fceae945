package geo

// Point is a single GPS coordinate sample. TimestampMs is milliseconds since
// the start of the recording. Altitude, Accuracy and Speed are optional and
// nil when the platform did not report them.
type Point struct {
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	TimestampMs int64    `json:"timestamp_ms"`
	Altitude    *float64 `json:"altitude,omitempty"`
	Accuracy    *float64 `json:"accuracy,omitempty"`
	Speed       *float64 `json:"speed,omitempty"`
}

// NewPoint builds a point without optional fields.
func NewPoint(lat, lon float64, timestampMs int64) Point {
	return Point{Lat: lat, Lon: lon, TimestampMs: timestampMs}
}

// WithAltitude returns a copy of the point with altitude set.
func (p Point) WithAltitude(altitude float64) Point {
	p.Altitude = &altitude
	return p
}

// WithSpeed returns a copy of the point with speed set.
func (p Point) WithSpeed(speed float64) Point {
	p.Speed = &speed
	return p
}

// WithAccuracy returns a copy of the point with horizontal accuracy set.
func (p Point) WithAccuracy(accuracy float64) Point {
	p.Accuracy = &accuracy
	return p
}
