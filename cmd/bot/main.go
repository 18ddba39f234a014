package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/ndemidov/trivia_bot/internal/api"
	"github.com/ndemidov/trivia_bot/internal/config"
	"github.com/ndemidov/trivia_bot/internal/database"
	"github.com/ndemidov/trivia_bot/pkg/logger"
	"github.com/ndemidov/trivia_bot/telegram"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	logger.Init()
	defer logger.Sync()

	logger.Info("Starting trivia bot...")

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	if err := database.SeedQuestions(db); err != nil {
		logger.Warn("Failed to seed questions", "error", err)
	}

	adminAPI := api.NewServer(cfg, db)
	go func() {
		logger.Info("Admin API listening", "port", cfg.AppPort)
		if err := adminAPI.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("Admin API stopped", "error", err)
		}
	}()

	bot, err := telegram.InitBot(cfg, db)
	if err != nil {
		logger.Fatal("Failed to initialize bot", err)
	}

	logger.Info("Bot started successfully", "env", cfg.AppEnv)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := adminAPI.Shutdown(ctx); err != nil {
		logger.Error("Admin API shutdown failed", "error", err)
	}

	bot.Stop()
	logger.Info("Bot stopped")
}
