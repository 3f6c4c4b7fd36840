// Package server contains the HTTP handlers exposing the lifecycle core.
package server

import (
	"context"
	"time"

	"mealbridge/internal/cache"
	"mealbridge/internal/config"
	"mealbridge/internal/database"
	"mealbridge/internal/middleware"
	"mealbridge/internal/notifications"
	"mealbridge/internal/repository"
	"mealbridge/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config        *config.Config
	db            *gorm.DB
	redis         *redis.Client
	dispatcher    *notifications.Dispatcher
	users         *service.UserService
	listings      *service.ListingService
	requests      *service.RequestService
	matching      *service.MatchingService
	handoffs      *service.HandoffService
	notifications *service.NotificationService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	redisClient := cache.Connect(cfg.RedisURL)

	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	dispatcher := notifications.NewDispatcher(notificationRepo, redisClient, middleware.Logger)

	return &Server{
		config:        cfg,
		db:            db,
		redis:         redisClient,
		dispatcher:    dispatcher,
		users:         service.NewUserService(userRepo),
		listings:      service.NewListingService(db, listingRepo, reservationRepo),
		requests:      service.NewRequestService(requestRepo, listingRepo, dispatcher),
		matching:      service.NewMatchingService(db, requestRepo),
		handoffs:      service.NewHandoffService(db, reservationRepo, dispatcher),
		notifications: service.NewNotificationService(notificationRepo),
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())
	app.Use(cors.New())

	prometheus := fiberprometheus.New("mealbridge")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/", s.HealthCheck)

	// Public feed
	api.Get("/listings", s.ListActiveListings)

	protected := api.Group("", middleware.IdentityRequired(s.config.JWTSecret))

	listings := protected.Group("/listings")
	listings.Post("/", s.CreateListing)
	listings.Get("/mine", s.ListMyListings)
	listings.Post("/:id/toggle", s.ToggleListingVisibility)
	listings.Put("/:id", s.UpdateListing)
	listings.Delete("/:id", s.DeleteListing)
	listings.Get("/:id", s.GetListing)

	requests := protected.Group("/requests")
	requests.Post("/", s.CreateRequest)
	requests.Get("/mine", s.ListMyRequests)
	requests.Get("/incoming", s.ListIncomingRequests)
	requests.Post("/:id/accept", s.AcceptRequest)
	requests.Delete("/:id", s.CancelRequest)

	reservations := protected.Group("/reservations")
	reservations.Get("/mine", s.ListMyReservations)
	reservations.Post("/:id/pickup", s.MarkPickedUp)
	reservations.Post("/:id/approve", s.ApproveCompletion)

	notifs := protected.Group("/notifications")
	notifs.Get("/", s.ListNotifications)
	notifs.Get("/unread-count", s.UnreadNotificationCount)
	notifs.Post("/read-all", s.MarkAllNotificationsRead)
	notifs.Post("/:id/read", s.MarkNotificationRead)
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "mealbridge",
		"status":  dbStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown drains background work before the process exits.
func (s *Server) Shutdown(ctx context.Context) error {
	s.dispatcher.Flush()

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
