package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"library_api/internal/api"
	"library_api/internal/app/service"
	"library_api/internal/common/security"
	"library_api/internal/domain/repository"
	"library_api/internal/platform/cache"
	"library_api/internal/platform/config"
	"library_api/internal/platform/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}
	logger.Info("configuration loaded")

	// 2. Token Issuer (signing key is immutable after this point)
	issuer := security.NewTokenIssuer(cfg.JWTKey, cfg.JWTExp)

	// 3. Database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("database connected")

	if err := database.Migrate(db); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	logger.Info("migrations applied")

	// 4. Redis (optional; absence only disables the book read cache)
	var bookCache service.BookCache
	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(context.Background(), cfg)
		if err != nil {
			logger.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		bookCache = cache.NewBookCache(rdb, cfg.BookCacheTTL)
		logger.Info("redis connected", "addr", cfg.RedisAddr)
	} else {
		logger.Info("redis not configured, book cache disabled")
	}

	// 5. Repositories
	userRepo := repository.NewPgUserRepository(db)
	bookRepo := repository.NewPgBookRepository(db)

	// 6. Services
	authService := service.NewAuthService(userRepo, issuer)
	bookService := service.NewBookService(bookRepo, bookCache)

	// 7. Router & HTTP Server
	router := api.NewRouter(authService, bookService, issuer, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}
