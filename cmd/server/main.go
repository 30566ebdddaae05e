package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"exlookup/internal/config"
	"exlookup/internal/db"
	"exlookup/internal/insights"
	"exlookup/internal/metrics"
	"exlookup/internal/middleware"
	"exlookup/internal/server"
)

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	log.Printf("Telemetry endpoint: %s", cfg.Endpoint())

	// Optional database for persisted lookup tallies
	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations completed successfully")
	} else {
		log.Println("DATABASE_URL not set, lookup tallies are kept in memory only")
	}

	metrics.Init(database)

	// One pooled transport shared by all lookups
	client := insights.NewClient(cfg.Endpoint(), insights.NewHTTPClient(cfg.LookupTimeout))
	service := insights.NewService(client, metrics.RecordLookup)

	srv := server.New(cfg, middleware.NewRedisStorage(cfg.RedisURL))
	srv.RegisterRoutes(service, database)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	metrics.Flush()
	log.Println("Server exited")
}
