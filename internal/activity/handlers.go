package activity

import (
	"errors"
	"strconv"

	"github.com/ericcurtin/BansheeRun/internal/geo"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req CreateInput
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" || req.Type == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and activity_type required")
		}
		if !req.Type.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "unknown activity type")
		}
		a, err := svc.Create(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		summaries, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(summaries)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		a, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(a)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/:id/splits", func(c *fiber.Ctx) error {
		splitDistance, err := strconv.ParseFloat(c.Query("distance_m", "1000"), 64)
		if err != nil || splitDistance <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "distance_m must be a positive number")
		}
		splits, err := svc.Splits(c.Context(), c.Params("id"), splitDistance)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if splits == nil {
			splits = []geo.Split{}
		}
		return c.JSON(splits)
	})
}
