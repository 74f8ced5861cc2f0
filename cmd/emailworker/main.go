package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/decent-cloud/backend/internal/config"
	"github.com/decent-cloud/backend/internal/db"
	"github.com/decent-cloud/backend/internal/logger"
	"github.com/decent-cloud/backend/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger.InitLogger(cfg.Stage)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("unable to connect to database: %v", err)
	}
	defer pool.Close()

	queries := db.New(pool)
	emails := services.NewEmailService(cfg.ResendAPIKey, queries, cfg.ResendFromAddr, cfg.ResendFromName, cfg.FrontendURL, logger.Log)
	messaging := services.NewMessagingService(queries, emails)
	worker := services.NewEmailWorker(queries, emails, messaging, logger.Log)

	logger.Info("email worker starting",
		zap.Duration("poll_interval", cfg.EmailWorkerPollInterval),
		zap.Int("batch_size", cfg.EmailWorkerBatchSize))

	ticker := time.NewTicker(cfg.EmailWorkerPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("email worker shutting down")
			return
		case <-ticker.C:
			worker.Tick(ctx, int32(cfg.EmailWorkerBatchSize))
		}
	}
}
