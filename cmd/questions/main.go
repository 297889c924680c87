package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/p-shah256/jasoseol/internal/jasoseol"
	"github.com/p-shah256/jasoseol/internal/session"
	"github.com/p-shah256/jasoseol/pkg/logger"
)

const resumeID = 410149

func main() {
	logger.Setup()

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	jar, err := session.Load(jasoseol.DefaultBaseURL)
	if err != nil {
		slog.Error("Failed to load session", "error", err)
		os.Exit(1)
	}

	client := jasoseol.NewClient(jar)
	questions, err := client.FetchEmploymentQuestions(context.Background(), resumeID)
	if err != nil {
		slog.Error("Failed to fetch employment questions", "resume_id", resumeID, "error", err)
		os.Exit(1)
	}

	if questions == nil {
		fmt.Println("undefined")
		return
	}
	fmt.Println(string(questions))
}
