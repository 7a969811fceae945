package export

import (
	"fmt"

	"github.com/ericcurtin/BansheeRun/internal/activity"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, activities *activity.Service, authMiddleware fiber.Handler) {
	r.Get("/:id/gpx", func(c *fiber.Ctx) error {
		a, err := activities.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}

		doc, err := BuildGPX(a)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Set(fiber.HeaderContentType, "application/gpx+xml")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, a.ID+".gpx"))
		return c.Send(doc)
	})

	r.Post("/import", authMiddleware, func(c *fiber.Ctx) error {
		activityType, err := activity.ParseType(c.Query("activity_type", "run"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		name := c.Query("name")
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}

		points, recordedAt, err := ParseGPX(c.Body())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		a, err := activities.Create(c.Context(), activity.CreateInput{
			Name:       name,
			Type:       activityType,
			Points:     points,
			RecordedAt: recordedAt,
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	})
}
