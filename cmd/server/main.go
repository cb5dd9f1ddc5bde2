// Command server runs the taskboard API.
//
// Configuration via environment variables:
//
//	PORT        - Listen port (default: 8080)
//	ENV         - "development" enables pretty logs (default: development)
//	LOG_LEVEL   - trace|debug|info|warn|error (default: info)
//	JWT_SECRET  - Token signing secret (required)
//	TOKEN_TTL   - Token lifetime (default: 24h)
//	BCRYPT_COST - Password hashing cost (default: 10)
//	MONGO_URI   - MongoDB connection string (default: mongodb://localhost:27017)
//	MONGO_DB    - MongoDB database name (default: taskboard)
//	REDIS_ADDR  - Redis address (default: localhost:6379)
//	REDIS_DB    - Redis database index (default: 0)
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskboard/task-api/internal/api"
	"github.com/taskboard/task-api/internal/infrastructure/config"
	mongodb "github.com/taskboard/task-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskboard/task-api/internal/infrastructure/db/redis"
	"github.com/taskboard/task-api/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server failed:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Storage ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	// The unique username index is the uniqueness invariant; refuse to
	// serve without it.
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}
	if err := mongodb.NewTaskRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure task indexes: %w", err)
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- HTTP ---
	e := api.NewRouter(db, rdb, cfg, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
