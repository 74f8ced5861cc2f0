//go:build ignore

// Manual smoke test for the Resend integration: enqueues a verification
// email through the real EmailService and runs one worker tick so it
// actually gets sent, rather than bypassing the queue.
//
// Usage: RESEND_API_KEY=... TEST_EMAIL=you@example.com go run scripts/test-email-send.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/decent-cloud/backend/internal/config"
	"github.com/decent-cloud/backend/internal/db"
	"github.com/decent-cloud/backend/internal/logger"
	"github.com/decent-cloud/backend/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.Load()
	logger.InitLogger(cfg.Stage)

	testEmail := os.Getenv("TEST_EMAIL")
	if testEmail == "" {
		log.Fatal("TEST_EMAIL environment variable is required")
	}
	if cfg.ResendAPIKey == "" {
		log.Fatal("RESEND_API_KEY environment variable is required")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("unable to connect to database: %v", err)
	}
	defer pool.Close()

	queries := db.New(pool)
	emails := services.NewEmailService(cfg.ResendAPIKey, queries, cfg.ResendFromAddr, cfg.ResendFromName, cfg.FrontendURL, logger.Log)
	messaging := services.NewMessagingService(queries, emails)
	worker := services.NewEmailWorker(queries, emails, messaging, logger.Log)

	var token [16]byte
	copy(token[:], "smoke-test-token")
	if err := emails.EnqueueVerificationEmail(ctx, testEmail, token); err != nil {
		log.Fatalf("failed to enqueue test email: %v", err)
	}

	fmt.Printf("enqueued verification email to %s, running one worker tick\n", testEmail)
	worker.Tick(ctx, 10)
	fmt.Println("done — check the email_queue table and your inbox")
}
