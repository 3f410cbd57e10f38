package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeuralTrust/TrustMod/pkg/config"
	"github.com/NeuralTrust/TrustMod/pkg/dependency_container"
	"github.com/NeuralTrust/TrustMod/pkg/infra/database"
	infraLogger "github.com/NeuralTrust/TrustMod/pkg/infra/logger"
	_ "github.com/NeuralTrust/TrustMod/pkg/infra/migrations"
	"github.com/NeuralTrust/TrustMod/pkg/server"
	"github.com/NeuralTrust/TrustMod/pkg/server/router"
	"github.com/joho/godotenv"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger, closeLogs, err := infraLogger.NewLogger()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer closeLogs()

	if err := config.Load(configPath()); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	db, err := database.NewDB(logger, &database.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		DBName:       cfg.Database.DBName,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	container, err := dependency_container.NewContainer(cfg, logger, db)
	if err != nil {
		logger.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.WithError(err).Warn("failed to close dependencies")
		}
	}()

	srv := server.NewBotServer(server.BotServerDI{
		Config: cfg,
		Logger: logger,
		Routers: []router.ServerRouter{
			router.NewBotRouter(container.MiddlewareTransport, container.HandlerTransport),
		},
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("error shutting down server")
		return
	}
	fmt.Println("server gracefully stopped")
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "./config"
}
