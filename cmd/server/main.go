package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"anoa.com/langanalytics/internal/bootstrap"
	"anoa.com/langanalytics/internal/config"
	searchService "anoa.com/langanalytics/internal/modules/search/service"
	"anoa.com/langanalytics/internal/server"
	"anoa.com/langanalytics/pkg/database"
	"anoa.com/langanalytics/pkg/logger"
	"anoa.com/langanalytics/pkg/storage"
	"anoa.com/langanalytics/pkg/validator"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if err := validator.Register(); err != nil {
		log.Fatal("failed to register validators", zap.Error(err))
	}

	db, err := database.Connect(database.Options{
		DSN:             cfg.Database.DSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		Debug:           cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	if cfg.IsDevelopment() && cfg.SeedSuperAdminEmail != "" {
		if err := bootstrap.SeedSuperAdmin(db, cfg.SeedSuperAdminEmail, cfg.SeedSuperAdminPassword); err != nil {
			log.Fatal("failed to seed super admin", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient := connectRedis(ctx, cfg.RedisURL, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	deps := server.Deps{
		DB:     db,
		Redis:  redisClient,
		Search: connectSearch(cfg.MeiliSearchHost, cfg.MeiliMasterKey, log),
		Images: connectImageStorage(cfg.CloudinaryURL, cfg.CloudinaryUploadFolder, log),
		Log:    log,
	}

	srv := server.NewServer(cfg, deps)
	if err := srv.Run(ctx); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
	log.Info("server stopped")
}

func connectRedis(ctx context.Context, redisURL string, log *zap.Logger) *redis.Client {
	if redisURL == "" {
		log.Info("REDIS_URL not set, login throttling disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn("invalid REDIS_URL, login throttling disabled", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("failed to connect to redis, login throttling disabled", zap.Error(err))
		client.Close()
		return nil
	}
	return client
}

func connectSearch(host, apiKey string, log *zap.Logger) searchService.DirectoryIndex {
	if host == "" {
		log.Info("MEILISEARCH_HOST not set, directory search falls back to the database")
		return nil
	}
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host
	}

	client := meilisearch.New(host, meilisearch.WithAPIKey(apiKey))
	return searchService.NewMeiliDirectory(client, log)
}

func connectImageStorage(cloudinaryURL, folder string, log *zap.Logger) storage.ImageStorage {
	if cloudinaryURL == "" {
		log.Info("CLOUDINARY_URL not set, logo uploads disabled")
		return nil
	}

	images, err := storage.NewCloudinaryStorage(cloudinaryURL, folder)
	if err != nil {
		log.Warn("failed to initialize cloudinary, logo uploads disabled", zap.Error(err))
		return nil
	}
	return images
}
