package server

import (
	"github.com/ericcurtin/BansheeRun/internal/activity"
	"github.com/ericcurtin/BansheeRun/internal/auth"
	"github.com/ericcurtin/BansheeRun/internal/config"
	"github.com/ericcurtin/BansheeRun/internal/export"
	"github.com/ericcurtin/BansheeRun/internal/pacing"
	"github.com/ericcurtin/BansheeRun/internal/records"
	"github.com/ericcurtin/BansheeRun/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App     *fiber.App
	Cfg     config.Config
	DB      *pgxpool.Pool
	Redis   *redis.Client
	Stream  *stream.Hub
	Pacing  *pacing.Manager
	Records *records.Service
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:     app,
		Cfg:     cfg,
		DB:      db,
		Redis:   redisClient,
		Stream:  stream.NewHub(redisClient),
		Pacing:  pacing.NewManager(),
		Records: records.NewService(db),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authMiddleware := auth.Middleware(s.Cfg.JWTSecret)
	activities := activity.NewService(s.DB)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))

	activityGroup := s.App.Group("/activities")
	activity.RegisterRoutes(activityGroup, activities, authMiddleware)
	export.RegisterRoutes(activityGroup, activities, authMiddleware)
	activityGroup.Post("/:id/records", authMiddleware, func(c *fiber.Ctx) error {
		a, err := activities.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		achieved, err := s.Records.Process(c.Context(), a)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if achieved == nil {
			achieved = []records.PersonalBest{}
		}
		return c.JSON(achieved)
	})

	records.RegisterRoutes(s.App.Group("/records"), s.Records)
	pacing.RegisterRoutes(s.App.Group("/pacing"), s.Pacing, activities, s.Stream, authMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
