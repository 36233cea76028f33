package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"quotation-backend/internal/cache"
	"quotation-backend/internal/config"
	"quotation-backend/internal/database"
	"quotation-backend/internal/db"
	"quotation-backend/internal/handlers"
	"quotation-backend/internal/health"
	h "quotation-backend/internal/http"
	"quotation-backend/internal/middleware"
	"quotation-backend/internal/monitoring"
	"quotation-backend/internal/repositories"
	"quotation-backend/internal/services"
	"quotation-backend/migrations"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the optional YAML config file")
	skipMigrations := flag.Bool("skip-migrations", false, "do not run embedded migrations on startup")
	flag.Parse()

	// Load configuration
	cfg := config.LoadFile(*configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (reads go straight to Postgres)", err)
	}
	defer cache.Close()

	// Run database migrations
	// Uses embedded migrations for standalone binary operation
	if !*skipMigrations {
		migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
		if err := migrator.RunMigrations(ctx); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Live item updates and host stats on the monitoring port
	hub := monitoring.NewHub()
	go monitoring.NewMonitoringServer(pool, cfg.Server.MonitoringPort, hub).Start()

	// Initialize repositories
	quotationRepo := repositories.NewQuotationRepository(pool)
	itemRepo := repositories.NewItemRepository(pool)

	// Initialize services
	quotationService := services.NewQuotationService(quotationRepo, itemRepo, hub, cfg.CacheTTL())

	// Initialize handlers
	quotationHandler := handlers.NewQuotationHandler(quotationService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	router := h.NewRouter(quotationHandler, healthHandler)
	handler := h.Wrap(router, middleware.NewCORS(cfg))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
