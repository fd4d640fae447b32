package main

import (
	"context"
	"log"

	"github.com/livinglux/coliving-site/internal/config"
	"github.com/livinglux/coliving-site/internal/logging"
	"github.com/livinglux/coliving-site/internal/server"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Environment, server.ServiceName)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	for _, warning := range cfg.Warnings {
		logger.Warn(warning)
	}

	client := connectStore(cfg, logger)

	app, err := server.New(cfg, logger, client)
	if err != nil {
		logger.Fatal("build server", zap.Error(err))
	}
	if err := app.Run(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// connectStore returns nil when no store is configured or the client
// cannot be created; the site then runs without submissions.
func connectStore(cfg config.Config, logger *zap.Logger) *mongo.Client {
	if !cfg.StoreConfigured() {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.Store.URI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Warn("mongodb connect failed, application store disabled", zap.Error(err))
		return nil
	}
	return client
}
