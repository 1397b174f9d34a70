package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"salesdesk/internal/config"
	"salesdesk/internal/export"
	"salesdesk/internal/handlers"
	"salesdesk/internal/media"
	"salesdesk/internal/middleware"
	"salesdesk/internal/models"
	"salesdesk/internal/repositories"
	"salesdesk/internal/services"
	"salesdesk/internal/telegram"
	"salesdesk/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderProduct{}, &models.Credential{}, &models.User{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	mediaStore, err := media.NewStore(cfg.UploadsDir)
	if err != nil {
		log.Fatalf("Failed to initialize media store: %v", err)
	}
	renderer, err := export.NewRenderer(cfg.ScratchDir, cfg.FontPath, cfg.LogoPath, mediaStore)
	if err != nil {
		log.Fatalf("Failed to initialize renderer: %v", err)
	}
	telegramClient := telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramChatID, cfg.TelegramTimeout)

	// The broker is optional: without RABBITMQ_URL lifecycle events are
	// simply not published.
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, continuing without event publishing: %v", err)
		} else {
			defer mqClient.Close()
		}
	}

	orderRepo := repositories.NewGORMOrderRepository(db)
	productRepo := repositories.NewGORMOrderProductRepository(db)
	credentialRepo := repositories.NewGORMCredentialRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	orderService := services.NewOrderService(orderRepo, mediaStore, mqClient)
	productService := services.NewOrderProductService(productRepo, orderRepo, mediaStore)
	credentialService := services.NewCredentialService(credentialRepo)
	exportService := services.NewExportService(orderRepo, renderer, telegramClient)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)

	orderHandler := handlers.NewOrderHandler(orderService, exportService)
	productHandler := handlers.NewOrderProductHandler(productService)
	credentialHandler := handlers.NewCredentialHandler(credentialService)
	authHandler := handlers.NewAuthHandler(authService)

	app := fiber.New()
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	authHandler.RegisterPublicRoutes(api)

	protected := api.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	productHandler.RegisterRoutes(protected)
	credentialHandler.RegisterRoutes(protected)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("Starting server on port %s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
