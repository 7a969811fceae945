package records

import (
	"github.com/ericcurtin/BansheeRun/internal/activity"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		var (
			bests []PersonalBest
			err   error
		)
		if typeParam := c.Query("activity_type"); typeParam != "" {
			t, parseErr := activity.ParseType(typeParam)
			if parseErr != nil {
				return fiber.NewError(fiber.StatusBadRequest, parseErr.Error())
			}
			bests, err = svc.ListByType(c.Context(), t)
		} else {
			bests, err = svc.ListAll(c.Context())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if bests == nil {
			bests = []PersonalBest{}
		}
		return c.JSON(bests)
	})
}
