package records

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func TestRecordsHandlerList(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT activity_type, distance_m, time_ms, activity_id, achieved_at, pace_min_per_km`).
		WillReturnRows(pgxmock.NewRows(pbColumns()).
			AddRow("run", 1000.0, int64(240_000), "a-1", int64(10), 4.0))

	mock.ExpectQuery(`SELECT activity_type, distance_m, time_ms, activity_id, achieved_at, pace_min_per_km`).
		WithArgs("run").
		WillReturnRows(pgxmock.NewRows(pbColumns()))

	app := fiber.New()
	RegisterRoutes(app.Group("/records"), NewService(mock))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/records/", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/records/?activity_type=run", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("filtered list status: %v", err)
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/records/?activity_type=swim", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for unknown type")
	}
}
