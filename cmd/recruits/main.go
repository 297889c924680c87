package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/p-shah256/jasoseol/internal/crawler"
	"github.com/p-shah256/jasoseol/internal/jasoseol"
	"github.com/p-shah256/jasoseol/internal/session"
	"github.com/p-shah256/jasoseol/pkg/logger"
)

var outputPath = filepath.Join("output", "recruit_image_map.json")

func main() {
	logger.Setup()

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jar, err := session.Load(jasoseol.DefaultBaseURL)
	if err != nil {
		slog.Error("Failed to load session", "error", err)
		os.Exit(1)
	}
	client := jasoseol.NewClient(jar)

	images, err := crawler.New(client, crawler.DefaultDelay).Run(ctx, client.ITSearchURL())
	if err != nil && images == nil {
		slog.Error("Crawl failed", "error", err)
		os.Exit(1)
	}
	if err != nil {
		slog.Warn("Crawl interrupted, saving partial results", "error", err, "count", len(images))
	}

	if err := crawler.WriteJSON(outputPath, images); err != nil {
		slog.Error("Failed to save results", "error", err)
		os.Exit(1)
	}
	slog.Info("Saved recruit image map", "path", outputPath, "count", len(images))
}
