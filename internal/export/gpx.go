package export

import (
	"errors"
	"time"

	"github.com/ericcurtin/BansheeRun/internal/activity"
	"github.com/ericcurtin/BansheeRun/internal/geo"

	"github.com/tkrajina/gpxgo/gpx"
)

var errNoPoints = errors.New("gpx document contains no track points")

// BuildGPX renders an activity as a GPX 1.1 document with one track and one
// segment. Point times are absolute, derived from the activity's recording
// time plus each point's offset.
func BuildGPX(a activity.Activity) ([]byte, error) {
	base := time.UnixMilli(a.RecordedAt).UTC()

	segment := gpx.GPXTrackSegment{}
	for _, p := range a.Points {
		point := gpx.GPXPoint{
			Point: gpx.Point{
				Latitude:  p.Lat,
				Longitude: p.Lon,
			},
			Timestamp: base.Add(time.Duration(p.TimestampMs) * time.Millisecond),
		}
		if p.Altitude != nil {
			point.Elevation = *gpx.NewNullableFloat64(*p.Altitude)
		}
		segment.Points = append(segment.Points, point)
	}

	doc := &gpx.GPX{
		Version: "1.1",
		Creator: "BansheeRun",
		Name:    a.Name,
		Time:    &base,
		Tracks: []gpx.GPXTrack{{
			Name:     a.Name,
			Segments: []gpx.GPXTrackSegment{segment},
		}},
	}
	return doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
}

// ParseGPX extracts the track from a GPX document as points with timestamps
// relative to the first point. The returned recordedAt is the first point's
// absolute time in epoch milliseconds.
func ParseGPX(data []byte) ([]geo.Point, int64, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, 0, err
	}

	var raw []gpx.GPXPoint
	for _, track := range doc.Tracks {
		for _, segment := range track.Segments {
			raw = append(raw, segment.Points...)
		}
	}
	if len(raw) == 0 {
		return nil, 0, errNoPoints
	}

	start := raw[0].Timestamp
	points := make([]geo.Point, 0, len(raw))
	for _, p := range raw {
		point := geo.NewPoint(p.Latitude, p.Longitude, p.Timestamp.Sub(start).Milliseconds())
		if p.Elevation.NotNull() {
			point = point.WithAltitude(p.Elevation.Value())
		}
		points = append(points, point)
	}
	return points, start.UnixMilli(), nil
}
