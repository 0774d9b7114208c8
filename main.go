package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"bikinibottom/internal/config"
	"bikinibottom/internal/database"
	"bikinibottom/internal/handlers"
	"bikinibottom/internal/middleware"
	"bikinibottom/internal/repositories"
	"bikinibottom/internal/services"
	"bikinibottom/internal/session"
	"bikinibottom/internal/views"
	"bikinibottom/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer database.Close(db)

	// --- Session storage: Redis when configured, memory otherwise ---
	var sessionStorage fiber.Storage
	if cfg.SessionRedisURL != "" {
		redisStorage, err := session.NewRedisStorage(cfg.SessionRedisURL)
		if err != nil {
			log.Fatalf("Failed to initialize Redis session storage: %v", err)
		}
		defer redisStorage.Close()
		sessionStorage = redisStorage
	}

	// --- User events: RabbitMQ when configured ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient

		if err := mqClient.ConsumeUserEvents(rabbitmq.LogUserEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	app, err := setupApp(cfg, db, sessionStorage, events)
	if err != nil {
		log.Fatalf("Failed to set up application: %v", err)
	}

	// --- Start HTTP Server ---
	log.Printf("Welcome to Bikini Bottom Portal! Server running on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// setupApp seeds the store when it is empty and wires repositories,
// services, sessions and handlers into a Fiber app. sessionStorage and
// events may be nil.
func setupApp(cfg *config.Config, db *gorm.DB, sessionStorage fiber.Storage, events services.EventPublisher) (*fiber.App, error) {
	// --- Repositories & services ---
	userRepo := repositories.NewGORMUserRepository(db)
	authService := services.NewAuthService(userRepo, services.NewBcryptHasher(), events)
	profileService := services.NewProfileService(userRepo)

	if _, err := authService.SeedSampleUsers(); err != nil {
		return nil, err
	}

	sessions := session.NewManager(session.Config{
		CookieName:   cfg.SessionCookieName,
		TTL:          cfg.SessionTTL,
		CookieSecure: cfg.SessionCookieSecure,
		Storage:      sessionStorage,
	})

	// --- Handlers ---
	homeHandler := handlers.NewHomeHandler()
	authHandler := handlers.NewAuthHandler(authService, sessions)
	profileHandler := handlers.NewProfileHandler(profileService, sessions)

	app := fiber.New(fiber.Config{
		Views: views.New(),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(middleware.LoadSession(sessions))

	// --- Routes ---
	homeHandler.RegisterRoutes(app)
	authHandler.RegisterRoutes(app)
	profileHandler.RegisterRoutes(app)

	return app, nil
}
