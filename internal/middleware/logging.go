package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/decent-cloud/backend/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// redactedHeaders lists the headers that carry this domain's credentials
// (spec §4.A signature auth, §4.F Stripe webhooks) and must never reach
// the logs in full.
var redactedHeaders = map[string]bool{
	"X-Signature":      true,
	"X-Nonce":          true,
	"Stripe-Signature": true,
}

// bodyLogWriter wraps gin.ResponseWriter to capture the response body
// alongside whatever gin itself writes to the client.
type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// EnhancedLoggingMiddleware logs full request/response bodies and headers
// in development (cfg.Stage == "local"); it is a no-op otherwise, since
// dumping full bodies (including offering descriptions, contract memos)
// is too verbose and too sensitive for always-on production logging.
func EnhancedLoggingMiddleware(isDevelopment bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isDevelopment || logger.Log == nil {
			c.Next()
			return
		}

		startTime := time.Now()
		log := logger.Log.With(zap.String("correlation_id", GetCorrelationID(c)))

		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		headers := make(map[string]string)
		for key, values := range c.Request.Header {
			if redactedHeaders[key] {
				headers[key] = "[REDACTED]"
			} else {
				headers[key] = values[0]
			}
		}

		var requestJSON interface{}
		if c.GetHeader("Content-Type") == "application/json" && len(requestBody) > 0 {
			json.Unmarshal(requestBody, &requestJSON)
		}

		log.Info("detailed request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Any("headers", headers),
			zap.Any("body", requestJSON),
			zap.Int("body_size", len(requestBody)),
		)

		blw := &bodyLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		duration := time.Since(startTime)

		var responseJSON interface{}
		responseBody := blw.body.Bytes()
		contentType := c.Writer.Header().Get("Content-Type")
		if strings.HasPrefix(contentType, "application/json") && len(responseBody) > 0 {
			if err := json.Unmarshal(responseBody, &responseJSON); err != nil {
				log.Debug("failed to parse response JSON", zap.Error(err))
				responseJSON = string(responseBody)
			}
		}

		responseHeaders := make(map[string]string)
		for key, values := range c.Writer.Header() {
			responseHeaders[key] = values[0]
		}

		log.Info("detailed response",
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
			zap.Any("headers", responseHeaders),
			zap.Any("body", responseJSON),
			zap.Int("body_size", len(responseBody)),
			zap.Int("errors_count", len(c.Errors)),
		)

		for _, err := range c.Errors {
			log.Error("request error",
				zap.Error(err.Err),
				zap.Uint64("type", uint64(err.Type)),
				zap.Any("meta", err.Meta),
			)
		}
	}
}

// RequestLoggingMiddleware logs one summary line per request — method,
// path, status, duration, caller attribution — and runs unconditionally,
// unlike EnhancedLoggingMiddleware's dev-only body dump.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		duration := time.Since(startTime)

		if logger.Log == nil {
			return
		}
		logger.Log.Info("request completed",
			zap.String("correlation_id", GetCorrelationID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		)
	}
}
