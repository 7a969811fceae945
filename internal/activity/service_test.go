package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
)

func TestCreateInsertsActivityAndPoints(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	points := testPoints()

	mock.ExpectExec(`INSERT INTO activities`).
		WithArgs(pgxmock.AnyArg(), "Morning Run", "run", pgxmock.AnyArg(), int64(20000), int64(1000)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for i := range points {
		mock.ExpectExec(`INSERT INTO activity_points`).
			WithArgs(pgxmock.AnyArg(), i, points[i].Lat, points[i].Lon, points[i].TimestampMs,
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	svc := NewService(mock)
	a, err := svc.Create(context.Background(), CreateInput{
		Name:       "Morning Run",
		Type:       TypeRun,
		Points:     points,
		RecordedAt: 1000,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == "" {
		t.Fatalf("expected id")
	}
	if a.TotalDistanceM <= 0 {
		t.Fatalf("expected derived distance")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUnknownType(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.Create(context.Background(), CreateInput{Name: "x", Type: "swim"})
	if err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestCreateInsertError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO activities`).
		WithArgs(pgxmock.AnyArg(), "x", "run", pgxmock.AnyArg(), int64(0), int64(0)).
		WillReturnError(errActivity)

	svc := NewService(mock)
	_, err = svc.Create(context.Background(), CreateInput{Name: "x", Type: TypeRun})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestGetLoadsActivityWithPoints(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, activity_type, total_distance_m, duration_ms, recorded_at`).
		WithArgs("a-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "activity_type", "total_distance_m", "duration_ms", "recorded_at"}).
			AddRow("a-1", "Morning Run", "run", 200.0, int64(20000), int64(1000)))

	mock.ExpectQuery(`SELECT lat, lon, timestamp_ms, altitude, accuracy, speed`).
		WithArgs("a-1").
		WillReturnRows(pgxmock.NewRows([]string{"lat", "lon", "timestamp_ms", "altitude", "accuracy", "speed"}).
			AddRow(40.7128, -74.0060, int64(0), nil, nil, nil).
			AddRow(40.7132, -74.0057, int64(5000), nil, nil, nil))

	svc := NewService(mock)
	a, err := svc.Get(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.Type != TypeRun || len(a.Points) != 2 {
		t.Fatalf("unexpected activity: %+v", a)
	}
}

func TestGetNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, activity_type, total_distance_m, duration_ms, recorded_at`).
		WithArgs("missing").
		WillReturnError(errActivity)

	svc := NewService(mock)
	if _, err := svc.Get(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestListSummaries(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, activity_type, total_distance_m, duration_ms, recorded_at`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "activity_type", "total_distance_m", "duration_ms", "recorded_at"}).
			AddRow("a-2", "Evening Walk", "walk", 1000.0, int64(900_000), int64(2000)).
			AddRow("a-1", "Morning Run", "run", 5000.0, int64(1_500_000), int64(1000)))

	svc := NewService(mock)
	summaries, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].ID != "a-2" || summaries[0].PaceSecPerKm <= 0 {
		t.Fatalf("unexpected summary: %+v", summaries[0])
	}
}

func TestDelete(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM activities`).
		WithArgs("a-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	svc := NewService(mock)
	if err := svc.Delete(context.Background(), "a-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM activities`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	svc := NewService(mock)
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSplitsFromStoredPoints(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"lat", "lon", "timestamp_ms", "altitude", "accuracy", "speed"})
	for _, p := range testPoints() {
		rows.AddRow(p.Lat, p.Lon, p.TimestampMs, nil, nil, nil)
	}
	mock.ExpectQuery(`SELECT lat, lon, timestamp_ms, altitude, accuracy, speed`).
		WithArgs("a-1").
		WillReturnRows(rows)

	svc := NewService(mock)
	splits, err := svc.Splits(context.Background(), "a-1", 100)
	if err != nil {
		t.Fatalf("splits: %v", err)
	}
	if len(splits) != 2 {
		t.Fatalf("expected 2 splits, got %d", len(splits))
	}
}

var errActivity = errors.New("activity error")
