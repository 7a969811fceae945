package pacing

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/ericcurtin/BansheeRun/internal/geo"

	"github.com/gofiber/fiber/v2"
)

// TrackLoader supplies the recorded track for a ghost activity.
type TrackLoader interface {
	Points(ctx context.Context, activityID string) ([]geo.Point, error)
}

// Broadcaster pushes live state updates to session subscribers.
type Broadcaster interface {
	Broadcast(ctx context.Context, sessionID string, payload any) error
}

type createSessionRequest struct {
	Name               string      `json:"name"`
	ActivityID         string      `json:"activity_id"`
	TargetPaceSecPerKm float64     `json:"target_pace_sec_per_km"`
	Route              []geo.Point `json:"route"`
}

type sessionResponse struct {
	ID              string  `json:"id"`
	Ghost           Ghost   `json:"ghost"`
	GhostDistanceM  float64 `json:"ghost_distance_m"`
	GhostDurationMs int64   `json:"ghost_duration_ms"`
}

func RegisterRoutes(r fiber.Router, manager *Manager, tracks TrackLoader, hub Broadcaster, authMiddleware fiber.Handler) {
	r.Get("/presets", func(c *fiber.Ctx) error {
		return c.JSON(PacePresets())
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req createSessionRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var managed *Managed
		switch {
		case req.ActivityID != "":
			points, err := tracks.Points(c.Context(), req.ActivityID)
			if err != nil {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			managed = manager.CreateFromTrack(FromActivity(req.ActivityID, req.Name), points)
		case req.TargetPaceSecPerKm > 0:
			var err error
			managed, err = manager.CreatePacer(Pacer(req.TargetPaceSecPerKm, req.Name), req.Route)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		default:
			return fiber.NewError(fiber.StatusBadRequest, "activity_id or target_pace_sec_per_km required")
		}

		return c.Status(fiber.StatusCreated).JSON(sessionResponse{
			ID:              managed.ID,
			Ghost:           managed.Ghost,
			GhostDistanceM:  managed.Session.GhostDistance(),
			GhostDurationMs: managed.Session.GhostDurationMs(),
		})
	})

	r.Get("/:id/status", func(c *fiber.Ctx) error {
		managed, err := manager.Get(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}

		lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
		lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
		elapsedMs, elapsedErr := strconv.ParseInt(c.Query("elapsed_ms"), 10, 64)
		if latErr != nil || lonErr != nil || elapsedErr != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat, lon and elapsed_ms are required")
		}

		state := managed.Session.State(geo.NewPoint(lat, lon, elapsedMs), elapsedMs)
		if hub != nil {
			if err := hub.Broadcast(c.Context(), managed.ID, state); err != nil {
				log.Printf("pacing broadcast failed for session %s: %v", managed.ID, err)
			}
		}
		return c.JSON(state)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := manager.Delete(c.Params("id")); err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
