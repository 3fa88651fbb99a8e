package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Wafik20/business-finder/internal/config"
	"github.com/Wafik20/business-finder/internal/enrich"
	"github.com/Wafik20/business-finder/internal/geocoder"
	applogger "github.com/Wafik20/business-finder/internal/logger"
	"github.com/Wafik20/business-finder/internal/places"
	"github.com/Wafik20/business-finder/internal/search"
	"github.com/Wafik20/business-finder/internal/server"
	"github.com/Wafik20/business-finder/internal/telemetry"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	if err := applogger.Init(); err != nil {
		panic(err)
	}
	defer applogger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	tel, err := telemetry.New(ctx)
	if err != nil {
		log.Printf("Failed to initialize telemetry: %v", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tel.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	// Assemble the search pipeline
	resolver, err := geocoder.New(cfg, tel)
	if err != nil {
		log.Fatalf("Failed to initialize geocoder: %v", err)
	}
	client := places.New(cfg, tel)
	orchestrator := search.New(cfg, resolver, client, tel)
	enricher := enrich.New(cfg, client, tel)
	handler := server.NewSearchHandler(cfg, orchestrator, enricher)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Business Finder API",
		ErrorHandler: server.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","status":${status},"latency":"${latency}","ip":"${ip}","method":"${method}","path":"${path}","user_agent":"${ua}","error":"${error}"}` + "\n",
		TimeFormat: "2006-01-02T15:04:05Z07:00",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET, POST, OPTIONS",
		AllowHeaders:  "Accept, Accept-Encoding, Content-Type, Origin, User-Agent, X-Requested-With",
		ExposeHeaders: "Content-Length, Content-Type",
		MaxAge:        86400,
	}))
	app.Use(server.PrometheusMiddleware())

	// Setup routes
	server.SetupRoutes(app, handler)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	port := cfg.Server.Port
	if port == "" {
		port = "3000"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
