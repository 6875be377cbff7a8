// Package main is the entry point for the PDF Text Service server.
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

	"github.com/Shimizu-Technology/pdf-text-service/internal/config"
	"github.com/Shimizu-Technology/pdf-text-service/internal/database"
	"github.com/Shimizu-Technology/pdf-text-service/internal/handlers"
	"github.com/Shimizu-Technology/pdf-text-service/internal/middleware"
	"github.com/Shimizu-Technology/pdf-text-service/internal/router"
	pdfservice "github.com/Shimizu-Technology/pdf-text-service/internal/services/pdf"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("🚀 PDF Text Service %s starting...", Version)

	// Step 1: Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	log.Printf("📋 Config loaded: port=%s, max_upload=%dMB, gin_mode=%s", cfg.Port, cfg.MaxUploadMB, cfg.GinMode)

	os.Setenv("GIN_MODE", cfg.GinMode)

	// Step 2: Connect to Database (optional, enables extraction history)
	var db *database.DB
	if cfg.DatabaseURL != "" {
		db, err = database.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ Failed to connect to database: %v", err)
		}
		defer db.Close()
		log.Printf("✅ Database connected (%s)", db.Dialect())

		if err := db.RunMigrations(); err != nil {
			log.Fatalf("❌ Migration failed: %v", err)
		}
	} else {
		log.Println("⚠️  No DATABASE_URL set (extraction history disabled)")
	}

	// Step 3: Create Services
	extractor := pdfservice.NewExtractor()

	auth := middleware.NewAuthenticator(cfg.APIKeys, cfg.JWTSecret)
	if auth.Enabled() {
		log.Printf("✅ Auth enabled for /api/v1/pdf (%d API keys, jwt=%t)", len(cfg.APIKeys), cfg.JWTSecret != "")
	} else {
		log.Println("⚠️  No API_KEYS or JWT_SECRET set (the API is open)")
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerHour)
	if cfg.RateLimitPerHour > 0 {
		log.Printf("✅ Rate limit: %d requests/hour per caller", cfg.RateLimitPerHour)
	}

	// Step 4: Setup HTTP Router
	h := handlers.NewHandler(extractor, db, cfg.MaxUploadBytes(), Version)
	r := router.Setup(h, auth, rateLimiter, cfg.AllowedOrigins)

	// Step 5: Start the HTTP Server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server listening on http://localhost:%s", cfg.Port)
		log.Printf("📖 Health check: http://localhost:%s/health", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	// Step 6: Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Printf("🛑 Received signal %v, shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Server forced to shutdown: %v", err)
	}

	log.Println("👋 Server stopped. Goodbye!")
}
