package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"forkcast/internal/api"
	"forkcast/internal/auth"
	"forkcast/internal/config"
	"forkcast/internal/images"
	"forkcast/internal/planner"
	"forkcast/internal/realtime"
	"forkcast/internal/storage/sqlite"
	"forkcast/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	var uploader *images.Uploader
	if cfg.S3Bucket != "" {
		uploader, err = images.NewUploader(context.Background(), cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			slog.Error("Failed to initialize image uploader", "error", err)
			os.Exit(1)
		}
		slog.Info("Image uploads enabled", "bucket", cfg.S3Bucket)
	}

	hub := realtime.NewHub()
	planners := planner.NewManager(store, hub)
	authn := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	server := api.New(store, authn, jwtManager, planners, hub, uploader)

	addr := ":" + cfg.Port
	slog.Info("Forkcast server starting", "address", addr)
	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
