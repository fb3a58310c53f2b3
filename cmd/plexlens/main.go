package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"plexlens/api"
	"plexlens/config"
	"plexlens/handlers"
	plexsvc "plexlens/services/plex"
	"plexlens/utils"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg)

	client := plexsvc.NewClient("plexlens-server")
	service := plexsvc.NewService(client, cfg, plexsvc.Options{
		ServerURL:         cfg.PlexServerURL,
		ExtraServerURLs:   cfg.PlexServerURLs,
		MachineIDOverride: cfg.PlexMachineID,
	})

	router := utils.NewRouter()
	router.Use(api.RequestIDMiddleware())
	router.Use(api.LoggingMiddleware())

	libraryHandler := handlers.NewLibraryHandler(service)
	limited := router.NewRoute().Subrouter()
	limiter := api.NewIPRateLimiter(rate.Every(2*time.Second), 10)
	limited.Use(func(next http.Handler) http.Handler {
		return api.RateLimitHandler(limiter, next)
	})
	libraryHandler.Register(limited)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Aggregating a large library can legitimately take a while.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  time.Minute,
	}

	go func() {
		log.Printf("[main] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("[main] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown: %v", err)
	}
}

// setupLogging routes the process log through a rotating file when LOG_FILE
// is configured, mirroring to stderr.
func setupLogging(cfg *config.Config) {
	if cfg.LogFile == "" {
		return
	}
	rotated := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotated))
}
