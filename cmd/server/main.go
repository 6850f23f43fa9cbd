package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"studio-backend/internal/auth"
	"studio-backend/internal/cache"
	"studio-backend/internal/config"
	"studio-backend/internal/database"
	"studio-backend/internal/db"
	"studio-backend/internal/handlers"
	"studio-backend/internal/health"
	httprouter "studio-backend/internal/http"
	"studio-backend/internal/middleware"
	"studio-backend/internal/monitoring"
	"studio-backend/internal/repositories"
	"studio-backend/internal/services"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis cache is optional - login falls back to bcrypt when unavailable
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (login will use bcrypt only)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, "migrations")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewChecker(pool)

	// Monitoring snapshot server runs on its own port
	go monitoring.NewServer(pool, cfg.Monitoring.Port).Start()

	jwtManager := auth.NewJWTManager(cfg)

	userRepo := repositories.NewUserRepository(pool)
	entryRepo := repositories.NewEntryRepository(pool)
	ledgerRepo := repositories.NewLedgerRepository(pool)

	txRunner := services.NewPgTxRunner(pool, entryRepo, ledgerRepo)

	userService := services.NewUserService(userRepo, jwtManager)
	entryService := services.NewEntryService(entryRepo)
	paymentService := services.NewPaymentService(txRunner, entryRepo, ledgerRepo)
	receiptService := services.NewReceiptService()

	authHandler := handlers.NewAuthHandler(userService)
	entryHandler := handlers.NewEntryHandler(entryService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, receiptService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	corsMiddleware := middleware.NewCORS(cfg)

	router := httprouter.NewRouter(authHandler, entryHandler, paymentHandler, healthHandler, authMiddleware)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
