// main.go
package main

import (
	"context"
	"log"

	"pitch-booking/cmd"
	"pitch-booking/internal/data/repository"
	"pitch-booking/internal/wire"
	"pitch-booking/pkg/apiclient"
	"pitch-booking/pkg/database"
	"pitch-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("api_base_url", config.API.BaseURL),
		zap.String("storage", config.Storage.Driver),
	)

	ctx := context.Background()

	// Visitor storage
	storage, closeStorage, err := openStorage(ctx, config, logger)
	if err != nil {
		logger.Fatal("Failed to open visitor storage", zap.Error(err))
	}
	defer closeStorage()

	// Remote booking API
	api := apiclient.New(config.API.BaseURL, config.API.Timeout, logger)

	// Initialize all repositories
	repos := repository.NewRepository(api, storage, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	if err := cmd.APIServer(ctx, app, config.App.Port, config.App.VisitorIdle, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}

// openStorage connects the configured driver. The returned func releases it.
func openStorage(ctx context.Context, config *utils.Config, logger *zap.Logger) (repository.StorageRepository, func(), error) {
	switch config.Storage.Driver {
	case utils.StoragePostgres:
		db, err := database.InitDB(ctx, config.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("Database connected successfully")
		return repository.NewPostgresStorage(db, logger), db.Close, nil

	case utils.StorageRedis:
		rdb, err := database.InitRedis(ctx, config.Redis)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr))
		return repository.NewRedisStorage(rdb, logger), func() { rdb.Close() }, nil

	default:
		return repository.NewMemoryStorage(), func() {}, nil
	}
}
