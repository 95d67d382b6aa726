package server

import (
	"errors"

	"github.com/aboodsamad/TravelMateV0/internal/activity"
	"github.com/aboodsamad/TravelMateV0/internal/auth"
	"github.com/aboodsamad/TravelMateV0/internal/config"
	"github.com/aboodsamad/TravelMateV0/internal/place"
	"github.com/aboodsamad/TravelMateV0/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: jsonErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

// jsonErrorHandler renders every handler error as {"message": ...} so API
// clients never have to deal with plain-text bodies.
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"message": err.Error()})
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	activitySvc := activity.NewService(s.DB)
	authSvc := auth.NewService(s.Cfg.JWTSecret, s.DB, activitySvc)

	auth.RegisterRoutes(s.App.Group("/auth"), authSvc)
	place.RegisterRoutes(s.App.Group("/api/places"), place.NewService(s.DB, s.Redis))
	user.RegisterRoutes(s.App.Group("/api/users"), user.NewService(s.DB, activitySvc), authSvc.Middleware())
}
