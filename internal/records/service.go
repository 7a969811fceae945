package records

import (
	"context"

	"github.com/ericcurtin/BansheeRun/internal/activity"
	"github.com/ericcurtin/BansheeRun/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Process compares the activity's best segments against the stored records
// and upserts any that are strictly faster. Returns the newly achieved PBs.
func (s *Service) Process(ctx context.Context, a activity.Activity) ([]PersonalBest, error) {
	registry, err := s.registryForType(ctx, a.Type)
	if err != nil {
		return nil, err
	}

	achieved := Apply(registry, a)
	for _, pb := range achieved {
		_, err := s.db.Exec(ctx, `
			INSERT INTO personal_bests (id, activity_type, distance_m, time_ms, activity_id, achieved_at, pace_min_per_km)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			ON CONFLICT (activity_type, distance_m) DO UPDATE
			SET time_ms=EXCLUDED.time_ms, activity_id=EXCLUDED.activity_id,
			    achieved_at=EXCLUDED.achieved_at, pace_min_per_km=EXCLUDED.pace_min_per_km
		`, uuid.NewString(), string(pb.Type), pb.DistanceM, pb.TimeMs, pb.ActivityID, pb.AchievedAt, pb.PaceMinPerKm)
		if err != nil {
			return nil, err
		}
	}
	return achieved, nil
}

// ListByType returns the stored PBs for one activity type ordered by distance.
func (s *Service) ListByType(ctx context.Context, t activity.Type) ([]PersonalBest, error) {
	rows, err := s.db.Query(ctx, `
		SELECT activity_type, distance_m, time_ms, activity_id, achieved_at, pace_min_per_km
		FROM personal_bests WHERE activity_type=$1
		ORDER BY distance_m
	`, string(t))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBests(rows)
}

// ListAll returns every stored PB ordered by type then distance.
func (s *Service) ListAll(ctx context.Context) ([]PersonalBest, error) {
	rows, err := s.db.Query(ctx, `
		SELECT activity_type, distance_m, time_ms, activity_id, achieved_at, pace_min_per_km
		FROM personal_bests
		ORDER BY activity_type, distance_m
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBests(rows)
}

func (s *Service) registryForType(ctx context.Context, t activity.Type) (*Registry, error) {
	existing, err := s.ListByType(ctx, t)
	if err != nil {
		return nil, err
	}
	registry := NewRegistry()
	for _, pb := range existing {
		registry.Update(pb)
	}
	return registry, nil
}

func scanBests(rows pgx.Rows) ([]PersonalBest, error) {
	var bests []PersonalBest
	for rows.Next() {
		var pb PersonalBest
		var activityType string
		if err := rows.Scan(&activityType, &pb.DistanceM, &pb.TimeMs, &pb.ActivityID, &pb.AchievedAt, &pb.PaceMinPerKm); err != nil {
			return nil, err
		}
		pb.Type = activity.Type(activityType)
		bests = append(bests, pb)
	}
	return bests, rows.Err()
}
