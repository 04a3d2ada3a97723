// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mehedihasan-dev/house-hunters-server/internal/auth"
	"github.com/mehedihasan-dev/house-hunters-server/internal/config"
	"github.com/mehedihasan-dev/house-hunters-server/internal/database"
	"github.com/mehedihasan-dev/house-hunters-server/internal/handler"
	"github.com/mehedihasan-dev/house-hunters-server/internal/metrics"
	"github.com/mehedihasan-dev/house-hunters-server/internal/repository"
	"github.com/mehedihasan-dev/house-hunters-server/internal/service"
)

func main() {
	ctx := context.Background()

	// ── 1. Load configuration ────────────────────────────────────────────
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}
	cfg := config.Load()

	// ── 2. Connect to PostgreSQL and apply the schema ────────────────────
	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("✓ Connected to PostgreSQL")

	// ── 3. Wire up layers ────────────────────────────────────────────────
	metrics.Register()
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiryMinutes)

	userRepo := repository.NewUserRepository(pool)
	houseRepo := repository.NewHouseRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	authSvc := service.NewAuthService(userRepo)
	houseSvc := service.NewHouseService(houseRepo)
	bookingSvc := service.NewBookingService(bookingRepo)

	authHandler := handler.NewAuthHandler(authSvc, tokens)
	houseHandler := handler.NewHouseHandler(houseSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc)

	r := handler.NewRouter(authHandler, houseHandler, bookingHandler, tokens)

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		log.Printf("✓ House Hunters' Server is listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server…")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	log.Println("server stopped")
}
