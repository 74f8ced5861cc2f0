package middleware

import (
	"context"

	"github.com/decent-cloud/backend/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// CorrelationIDHeader is echoed back on every response so a caller can
	// thread one request across logs on both sides of the wire.
	CorrelationIDHeader = "X-Correlation-ID"
	correlationIDKey    = "correlationID"

	// publicKeyHeader carries the caller's ed25519 public key ahead of
	// signature verification (spec §4.A/6); logged here purely for
	// request attribution, never trusted as an auth decision.
	publicKeyHeader = "X-Public-Key"
)

// CorrelationIDMiddleware assigns (or adopts) a correlation ID for the
// request, stores it on both the gin context and the request's
// context.Context, and echoes it back on the response.
func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Set(correlationIDKey, correlationID)
		c.Header(CorrelationIDHeader, correlationID)

		ctx := WithCorrelationID(c.Request.Context(), correlationID)
		c.Request = c.Request.WithContext(ctx)

		if logger.Log != nil {
			fields := []zap.Field{
				zap.String("correlation_id", correlationID),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			}
			if pubkey := c.GetHeader(publicKeyHeader); pubkey != "" {
				fields = append(fields, zap.String("public_key", pubkey))
			}
			logger.Log.Info("request received", fields...)
		}

		c.Next()
	}
}

// GetCorrelationID retrieves the correlation ID set by
// CorrelationIDMiddleware from the gin context.
func GetCorrelationID(c *gin.Context) string {
	if id, exists := c.Get(correlationIDKey); exists {
		if correlationID, ok := id.(string); ok {
			return correlationID
		}
	}
	return ""
}

type contextKey string

const correlationIDContextKey contextKey = "correlationID"

// WithCorrelationID attaches a correlation ID to ctx.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDContextKey, correlationID)
}

// CorrelationIDFromContext retrieves the correlation ID attached to ctx,
// if any.
func CorrelationIDFromContext(ctx context.Context) string {
	if id := ctx.Value(correlationIDContextKey); id != nil {
		if correlationID, ok := id.(string); ok {
			return correlationID
		}
	}
	return ""
}

// LogWithCorrelationID returns the package logger with the ctx's
// correlation ID attached as a field, for use deep in service code that
// only has a context.Context and not the gin.Context.
func LogWithCorrelationID(ctx context.Context) *zap.Logger {
	if logger.Log == nil {
		return nil
	}
	if correlationID := CorrelationIDFromContext(ctx); correlationID != "" {
		return logger.Log.With(zap.String("correlation_id", correlationID))
	}
	return logger.Log
}
