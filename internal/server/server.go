package server

import (
	"context"
	"net/http"
	"time"

	"github.com/decent-cloud/backend/internal/auth"
	"github.com/decent-cloud/backend/internal/client/cryptorail"
	"github.com/decent-cloud/backend/internal/client/sms"
	"github.com/decent-cloud/backend/internal/client/stripe"
	"github.com/decent-cloud/backend/internal/client/telegram"
	"github.com/decent-cloud/backend/internal/client/typesetter"
	"github.com/decent-cloud/backend/internal/config"
	"github.com/decent-cloud/backend/internal/db"
	"github.com/decent-cloud/backend/internal/handlers"
	"github.com/decent-cloud/backend/internal/logger"
	"github.com/decent-cloud/backend/internal/middleware"
	"github.com/decent-cloud/backend/internal/services"
	"github.com/google/uuid"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var (
	commonServices *handlers.CommonServices
	verifier       *auth.Verifier
	dbPool         *pgxpool.Pool
)

// InitializeServices wires the connection pool, every domain service, and
// the signature-auth verifier. It must run before InitializeRoutes.
func InitializeServices(ctx context.Context, cfg *config.Config) {
	logger.InitLogger(cfg.Stage)
	logger.Info("initializing services", zap.String("stage", cfg.Stage))

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("unable to parse DATABASE_URL", zap.Error(err))
	}
	poolConfig.MaxConns = 20
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 15 * time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal("unable to create connection pool", zap.Error(err))
	}
	queries := db.New(dbPool)

	nonces := auth.NewNonceCache(cfg.NonceCacheCapacity, cfg.NonceCacheTTL)
	verifier = auth.NewVerifier(queries, nonces)

	emails := services.NewEmailService(cfg.ResendAPIKey, queries, cfg.ResendFromAddr, cfg.ResendFromName, cfg.FrontendURL, logger.Log)
	accounts := services.NewAccountService(queries, emails)
	offerings := services.NewOfferingService(queries)
	messaging := services.NewMessagingService(queries, emails)

	cardRail := stripe.NewClient(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	cryptoRail := cryptorail.NewClient(cfg.CryptoRailBaseURL, cfg.CryptoRailSecret)
	tgClient := telegram.NewClient(cfg.TelegramBotToken)
	smsClient := sms.NewClient(cfg.SMSAPIBaseURL, cfg.SMSAPIKey)
	typesetterClient := typesetter.NewClient()

	contracts := services.NewContractService(dbPool, queries, offerings, cardRail)
	sequences := services.NewSequenceService(queries, typesetterClient, cfg.InvoiceSellerName, cfg.InvoiceSellerAddress, cfg.InvoiceSellerVatID, defaultVatRatePercent)
	payments := services.NewPaymentService(queries, contracts, emails, sequences, cardRail, cryptoRail)

	defaultEscalationAccountID, _ := uuid.Parse(cfg.DefaultEscalationAccount)
	escalations := services.NewEscalationService(queries, emails, tgClient, smsClient, defaultEscalationAccountID)
	admin := services.NewAdminService(queries, nonces)

	commonServices = &handlers.CommonServices{
		DB:          queries,
		DBPool:      dbPool,
		Logger:      logger.Log,
		Nonces:      nonces,
		Accounts:    accounts,
		Offerings:   offerings,
		Contracts:   contracts,
		Payments:    payments,
		Messaging:   messaging,
		Emails:      emails,
		Sequences:   sequences,
		Escalations: escalations,
		Admin:       admin,
	}
}

// defaultVatRatePercent is applied to invoices whose contract did not carry
// an explicit tax rate (spec §4.I — most buyers are outside the seller's
// home VAT jurisdiction and get 0%; the engine still needs a fallback for
// the rare same-jurisdiction case).
const defaultVatRatePercent = 0.0

// DBPool exposes the pool wired by InitializeServices.
func DBPool() *pgxpool.Pool { return dbPool }

// Services exposes the CommonServices bundle wired by InitializeServices.
func Services() *handlers.CommonServices { return commonServices }

// InitializeRoutes mounts every route group on router. Middleware ordering
// follows the teacher's layering: correlation ID first so every later log
// line and error response carries it, then request logging, then rate
// limiting, then (per-group) signature auth.
func InitializeRoutes(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.CorrelationIDMiddleware())
	router.Use(middleware.RequestLoggingMiddleware())
	router.Use(middleware.EnhancedLoggingMiddleware(cfg.Stage == "local"))

	corsConfig := cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Signature", "X-Public-Key", "X-Nonce"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	generalLimiter := middleware.DefaultRateLimiter
	strictLimiter := middleware.StrictRateLimiter
	authed := middleware.SignatureAuthMiddleware(verifier)

	v1 := router.Group("/api/v1")
	{
		accounts := v1.Group("/accounts")
		accounts.Use(generalLimiter.Middleware())
		{
			accounts.POST("", strictLimiter.Middleware(), handlers.RegisterAccount(commonServices))
			accounts.POST("/verify-email", handlers.VerifyEmail(commonServices))
			accounts.POST("/recovery", strictLimiter.Middleware(), handlers.StartRecovery(commonServices))
			accounts.POST("/recovery/complete", strictLimiter.Middleware(), handlers.CompleteRecovery(commonServices))

			accountsMe := accounts.Group("/me")
			accountsMe.Use(authed)
			{
				accountsMe.POST("/keys", handlers.AddKey(commonServices))
				accountsMe.DELETE("/keys/:keyID", handlers.DisableKey(commonServices))
				accountsMe.PATCH("/keys/:keyID", handlers.RenameDevice(commonServices))
				accountsMe.PUT("/email", handlers.SetEmail(commonServices))
				accountsMe.POST("/email/verify", handlers.StartEmailVerification(commonServices))
			}
		}

		providers := v1.Group("/providers")
		{
			providers.GET("/:ownerPubkey/offerings/:offeringID", middleware.RelaxedRateLimiter.Middleware(), handlers.GetOffering(commonServices))

			providersMe := providers.Group("/me")
			providersMe.Use(generalLimiter.Middleware(), authed)
			{
				providersMe.POST("/offerings/import", handlers.ImportOfferingsCSV(commonServices))
				providersMe.GET("/offerings/export", handlers.ExportOfferingsCSV(commonServices))
				providersMe.GET("/response-metrics", handlers.ResponseMetrics(commonServices))
			}
		}

		offerings := v1.Group("/offerings")
		{
			offerings.GET("", middleware.RelaxedRateLimiter.Middleware(), handlers.QueryOfferings(commonServices))
			offerings.POST("", generalLimiter.Middleware(), authed, handlers.CreateOffering(commonServices))
		}

		contracts := v1.Group("/contracts")
		contracts.Use(generalLimiter.Middleware(), authed)
		{
			contracts.POST("", handlers.CreateContract(commonServices))
			contracts.POST("/:contractID/accept", handlers.AcceptContract(commonServices))
			contracts.POST("/:contractID/reject", handlers.RejectContract(commonServices))
			contracts.POST("/:contractID/provisioning", handlers.UpdateProvisioning(commonServices))
			contracts.POST("/:contractID/cancel", handlers.CancelContract(commonServices))
			contracts.POST("/:contractID/crypto-transaction", handlers.AttachCryptoTransaction(commonServices))
			contracts.GET("/:contractID/invoice", handlers.GetInvoice(commonServices))

			contracts.POST("/:contractID/messages", handlers.SendMessage(commonServices))
			contracts.GET("/:contractID/messages", handlers.ListMessages(commonServices))
			contracts.GET("/:contractID/messages/unread-count", handlers.UnreadMessageCount(commonServices))
		}

		messages := v1.Group("/messages")
		messages.Use(generalLimiter.Middleware(), authed)
		{
			messages.POST("/:messageID/read", handlers.MarkMessageRead(commonServices))
		}

		admin := v1.Group("/admin")
		admin.Use(generalLimiter.Middleware(), authed)
		{
			admin.GET("/stats", handlers.PlatformStats(commonServices))
			admin.GET("/admins", handlers.ListAdmins(commonServices))
			admin.POST("/admins", handlers.GrantAdmin(commonServices))
			admin.DELETE("/admins/:accountID", handlers.RevokeAdmin(commonServices))
			admin.GET("/emails/stats", handlers.EmailQueueStats(commonServices))
			admin.GET("/emails/:emailID", handlers.GetFailedEmail(commonServices))
			admin.POST("/emails/:emailID/reset", handlers.ResetFailedEmail(commonServices))
			admin.POST("/emails/retry-all", handlers.RetryAllFailedEmails(commonServices))
		}
	}

	// Stripe webhooks authenticate via signature header, not the account
	// signature-auth middleware, and get their own higher-burst limiter
	// since Stripe retries in bursts from its own IP pool rather than the
	// one-account-per-bucket traffic the general limiter is tuned for.
	stripeLimiter := generalLimiter.MiddlewareWithConfig(50, 100)
	router.POST("/webhooks/stripe", stripeLimiter, handlers.StripeWebhook(commonServices))
}
