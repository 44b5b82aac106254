// Package server contains HTTP handlers and routing for the application's API.
package server

import (
	"context"
	"fmt"
	"time"

	"devmesh/internal/cache"
	"devmesh/internal/config"
	"devmesh/internal/database"
	"devmesh/internal/middleware"
	"devmesh/internal/notifications"
	"devmesh/internal/repository"
	"devmesh/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	connRepo       repository.ConnectionRepository
	notifier       *notifications.Notifier
	hub            *notifications.Hub
	stopHub        context.CancelFunc
	userService    *service.UserService
	connService    *service.ConnectionService
	feedService    *service.FeedService
}

// NewServer creates a new server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	middleware.InitMiddleware(cfg)

	userRepo := repository.NewUserRepository(db)
	connRepo := repository.NewConnectionRepository(db)

	var notifier *notifications.Notifier
	var hub *notifications.Hub
	var stopHub context.CancelFunc
	if redisClient != nil {
		notifier = notifications.NewNotifier(redisClient)
		hub = notifications.NewHub()
		var hubCtx context.Context
		hubCtx, stopHub = context.WithCancel(context.Background())
		_ = hub.Start(hubCtx, notifier)
	}

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: fiberprometheus.New("devmesh-api"),
		userRepo:       userRepo,
		connRepo:       connRepo,
		notifier:       notifier,
		hub:            hub,
		stopHub:        stopHub,
		userService:    service.NewUserService(userRepo),
		connService:    service.NewConnectionService(connRepo, userRepo, notifier),
		feedService:    service.NewFeedService(connRepo, userRepo),
	}
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes registers all API routes.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 10, time.Minute, "auth"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, time.Minute, "auth"), s.Login)
	auth.Post("/logout", middleware.AuthRequired, s.Logout)

	profile := api.Group("/profile", middleware.AuthRequired)
	profile.Get("/", s.GetMyProfile)
	profile.Patch("/", s.UpdateMyProfile)

	requests := api.Group("/requests", middleware.AuthRequired)
	requests.Post("/send/:status/:userId",
		middleware.RateLimit(s.redis, 60, time.Minute, "requests:send"), s.SendConnectionRequest)
	requests.Post("/review/:status/:requestId", s.ReviewConnectionRequest)

	users := api.Group("/users", middleware.AuthRequired)
	users.Get("/requests/received", s.GetPendingReceived)
	users.Get("/connections", s.GetConnections)

	api.Get("/feed", middleware.AuthRequired, s.GetFeed)

	ws := api.Group("/ws", middleware.AuthRequired)
	ws.Get("/connections", s.UpgradeConnectionEvents, s.StreamConnectionEvents())
}

// HealthCheck reports process and database liveness.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	dbStatus := "ok"
	if sqlDB, err := s.db.DB(); err != nil || sqlDB.PingContext(c.Context()) != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}
	return c.JSON(fiber.Map{"status": status, "database": dbStatus})
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.stopHub != nil {
		s.stopHub()
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	if sqlDB, err := s.db.DB(); err == nil {
		return sqlDB.Close()
	}
	return nil
}
