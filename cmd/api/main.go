package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/education-platform/backend/db"
	"github.com/education-platform/backend/internal/auth"
	"github.com/education-platform/backend/internal/config"
	"github.com/education-platform/backend/internal/handlers"
	"github.com/education-platform/backend/internal/logger"
	"github.com/education-platform/backend/internal/middleware"
	"github.com/education-platform/backend/internal/repos"
	"github.com/education-platform/backend/internal/router"
	"github.com/education-platform/backend/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logg.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := db.Connect(cfg.Database, logg)
	if err != nil {
		logg.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.Migrate(conn); err != nil {
		logg.Fatal("Failed to migrate database", "error", err)
	}

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	if err != nil {
		logg.Fatal("Failed to init token issuer", "error", err)
	}

	blobs, err := storage.New(ctx, cfg.Storage, logg)
	if err != nil {
		logg.Fatal("Failed to init storage", "error", err)
	}
	if closer, ok := blobs.(io.Closer); ok {
		defer closer.Close()
	}

	r := repos.New(conn, logg)
	h := handlers.New(conn, r, tokens, blobs, logg)

	opts := router.Options{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Authenticate:   middleware.Authenticate(r.Users, tokens, logg),
		MediaURL:       cfg.Storage.PublicBaseURL,
		Log:            logg,
	}
	if local, ok := blobs.(*storage.Local); ok {
		opts.MediaDir = local.Dir()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.NewRouter(h, opts),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logg.Info("starting server", "port", cfg.Server.Port, "env", cfg.Env, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("Failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("graceful shutdown failed", "error", err)
	}

	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
