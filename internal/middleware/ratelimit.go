package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/decent-cloud/backend/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter is a per-client token bucket limiter, keyed by the
// identifier getClientIdentifier derives from the request.
type RateLimiter struct {
	limiters        sync.Map
	rate            int
	burst           int
	cleanupInterval time.Duration
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewRateLimiter builds a limiter allowing requestsPerSecond sustained,
// burst peak, per client key. A background goroutine evicts buckets idle
// for more than ten minutes so the map doesn't grow unbounded under a
// churn of distinct callers/IPs.
func NewRateLimiter(requestsPerSecond, burst int) *RateLimiter {
	rl := &RateLimiter{
		rate:            requestsPerSecond,
		burst:           burst,
		cleanupInterval: 5 * time.Minute,
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		rl.limiters.Range(func(key, value interface{}) bool {
			if entry, ok := value.(*limiterEntry); ok {
				if now.Sub(entry.lastAccess) > 10*time.Minute {
					rl.limiters.Delete(key)
				}
			}
			return true
		})
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	if val, ok := rl.limiters.Load(key); ok {
		entry := val.(*limiterEntry)
		entry.lastAccess = time.Now()
		return entry.limiter
	}

	entry := &limiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(rl.rate), rl.burst),
		lastAccess: time.Now(),
	}
	actual, _ := rl.limiters.LoadOrStore(key, entry)
	return actual.(*limiterEntry).limiter
}

// getClientIdentifier derives a bucket key for the caller. Rate limiting
// runs ahead of SignatureAuthMiddleware in the route chain (server.go), so
// the authenticated account isn't available yet — the best pre-auth
// attribution this domain has is the X-Public-Key header the client sends
// alongside its signature (spec §4.A/6), which buckets per account instead
// of collapsing everyone behind a shared NAT/proxy IP.
func getClientIdentifier(c *gin.Context) string {
	if apiKey := c.GetHeader("X-API-Key"); apiKey != "" {
		if len(apiKey) >= 8 {
			return fmt.Sprintf("api:%s", apiKey[:8])
		}
		return fmt.Sprintf("api:%s", apiKey)
	}

	if pubkey := c.GetHeader("X-Public-Key"); pubkey != "" {
		return fmt.Sprintf("pubkey:%s", pubkey)
	}

	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		return fmt.Sprintf("ip:%s", forwardedFor)
	}

	clientIP := c.ClientIP()
	if clientIP == "" {
		clientIP = "unknown"
	}
	return fmt.Sprintf("ip:%s", clientIP)
}

// Middleware enforces rl's rate on every request except health checks,
// setting the standard X-RateLimit-* headers either way.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" || c.Request.URL.Path == "/healthz" {
			c.Next()
			return
		}

		clientID := getClientIdentifier(c)
		limiter := rl.getLimiter(clientID)

		if !limiter.Allow() {
			if logger.Log != nil {
				logger.Log.Warn("rate limit exceeded",
					zap.String("client_id", clientID),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("client_ip", c.ClientIP()),
				)
			}

			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.rate))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(time.Second).Unix()))
			c.Header("Retry-After", "1")

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many requests, please try again later",
				"retry_after": 1,
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.rate))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", limiter.Burst()-int(limiter.Tokens())))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(time.Second).Unix()))

		c.Next()
	}
}

// MiddlewareWithConfig returns a Middleware backed by a fresh limiter at
// customRate/customBurst instead of rl's own, sharing rl's cleanup
// interval — used for routes that need a one-off allowance distinct from
// the limiter they'd otherwise inherit (the Stripe webhook route allows a
// higher burst for Stripe's own retry behavior, spec §4.F).
func (rl *RateLimiter) MiddlewareWithConfig(customRate, customBurst int) gin.HandlerFunc {
	customRL := &RateLimiter{
		rate:            customRate,
		burst:           customBurst,
		cleanupInterval: rl.cleanupInterval,
	}
	go customRL.cleanup()
	return customRL.Middleware()
}

// Package-level limiters shared across route groups that don't need their
// own tuning: DefaultRateLimiter for ordinary authenticated endpoints,
// StrictRateLimiter for unauthenticated account-creation/recovery
// endpoints (spec §4.B enumeration/abuse resistance), RelaxedRateLimiter
// for read-heavy public browsing endpoints like offering search.
var (
	DefaultRateLimiter = NewRateLimiter(20, 40)
	StrictRateLimiter  = NewRateLimiter(2, 5)
	RelaxedRateLimiter = NewRateLimiter(100, 200)
)
