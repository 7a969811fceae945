package activity

import (
	"context"
	"errors"

	"github.com/ericcurtin/BansheeRun/internal/db"
	"github.com/ericcurtin/BansheeRun/internal/geo"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an activity id does not exist.
var ErrNotFound = errors.New("activity not found")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// CreateInput is the payload for recording a finished activity.
type CreateInput struct {
	Name       string      `json:"name"`
	Type       Type        `json:"activity_type"`
	Points     []geo.Point `json:"points"`
	RecordedAt int64       `json:"recorded_at"`
}

// Create derives totals from the track and persists the activity with its
// points.
func (s *Service) Create(ctx context.Context, input CreateInput) (Activity, error) {
	if !input.Type.Valid() {
		return Activity{}, errors.New("unknown activity type")
	}

	a := New(uuid.NewString(), input.Name, input.Type, input.Points, input.RecordedAt)

	_, err := s.db.Exec(ctx, `
		INSERT INTO activities (id, name, activity_type, total_distance_m, duration_ms, recorded_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, a.ID, a.Name, string(a.Type), a.TotalDistanceM, a.DurationMs, a.RecordedAt)
	if err != nil {
		return Activity{}, err
	}

	for i, p := range a.Points {
		_, err := s.db.Exec(ctx, `
			INSERT INTO activity_points (activity_id, point_index, lat, lon, timestamp_ms, altitude, accuracy, speed)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`, a.ID, i, p.Lat, p.Lon, p.TimestampMs, p.Altitude, p.Accuracy, p.Speed)
		if err != nil {
			return Activity{}, err
		}
	}

	return a, nil
}

// Get loads one activity with its full track.
func (s *Service) Get(ctx context.Context, id string) (Activity, error) {
	var a Activity
	var activityType string
	row := s.db.QueryRow(ctx, `
		SELECT id, name, activity_type, total_distance_m, duration_ms, recorded_at
		FROM activities WHERE id=$1
	`, id)
	if err := row.Scan(&a.ID, &a.Name, &activityType, &a.TotalDistanceM, &a.DurationMs, &a.RecordedAt); err != nil {
		return Activity{}, err
	}
	a.Type = Type(activityType)

	points, err := s.Points(ctx, id)
	if err != nil {
		return Activity{}, err
	}
	a.Points = points
	return a, nil
}

// Points loads the ordered track of one activity.
func (s *Service) Points(ctx context.Context, id string) ([]geo.Point, error) {
	rows, err := s.db.Query(ctx, `
		SELECT lat, lon, timestamp_ms, altitude, accuracy, speed
		FROM activity_points WHERE activity_id=$1
		ORDER BY point_index
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []geo.Point
	for rows.Next() {
		var p geo.Point
		if err := rows.Scan(&p.Lat, &p.Lon, &p.TimestampMs, &p.Altitude, &p.Accuracy, &p.Speed); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// List returns summaries of all activities, most recent first.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, activity_type, total_distance_m, duration_ms, recorded_at
		FROM activities
		ORDER BY recorded_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var a Activity
		var activityType string
		if err := rows.Scan(&a.ID, &a.Name, &activityType, &a.TotalDistanceM, &a.DurationMs, &a.RecordedAt); err != nil {
			return nil, err
		}
		a.Type = Type(activityType)
		summaries = append(summaries, a.Summary())
	}
	return summaries, rows.Err()
}

// Delete removes an activity; points and personal bests cascade.
func (s *Service) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM activities WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Splits computes fixed-distance splits for a stored activity.
func (s *Service) Splits(ctx context.Context, id string, splitDistanceM float64) ([]geo.Split, error) {
	points, err := s.Points(ctx, id)
	if err != nil {
		return nil, err
	}
	return geo.Splits(points, splitDistanceM), nil
}
