// Package constants centralises the fixed numbers and enumerations named
// directly by the specification, so services reference one definition
// instead of scattering magic values (spec §4.H, §4.A, §4.B).
package constants

import "time"

// Signature freshness window (spec §4.A).
const SignatureFreshnessWindow = 300 * time.Second

// Token lifetimes (spec §4.B).
const TokenExpiry = 24 * time.Hour

// Email backoff schedule (spec §4.H): exponential, base 60s, capped at 1h.
const (
	EmailBackoffBase = 60 * time.Second
	EmailBackoffCap  = time.Hour
)

// Per-type max_attempts defaults (spec §4.H).
const (
	MaxAttemptsTransactional int32 = 12
	MaxAttemptsGeneral       int32 = 6
	MaxAttemptsDigest        int32 = 3
)

// Email type identifiers, used to pick the max_attempts tier and the
// message template.
const (
	EmailTypeVerification   = "verification"
	EmailTypeRecovery       = "recovery"
	EmailTypeReceipt        = "receipt"
	EmailTypeMessageNotify  = "message_notification"
	EmailTypeEscalation     = "escalation"
	EmailTypeDigest         = "digest"
)

// MaxAttemptsForType returns the configured retry budget for an email type.
func MaxAttemptsForType(emailType string) int32 {
	switch emailType {
	case EmailTypeVerification, EmailTypeRecovery, EmailTypeReceipt:
		return MaxAttemptsTransactional
	case EmailTypeDigest:
		return MaxAttemptsDigest
	default:
		return MaxAttemptsGeneral
	}
}

// Provider response SLA (spec §4.G).
const ResponseSLA = 24 * time.Hour

// ResponseBucket is one of the response-time histogram buckets (spec §4.G).
type ResponseBucket string

const (
	ResponseBucket1h  ResponseBucket = "le_1h"
	ResponseBucket4h  ResponseBucket = "le_4h"
	ResponseBucket12h ResponseBucket = "le_12h"
	ResponseBucket24h ResponseBucket = "le_24h"
	ResponseBucket72h ResponseBucket = "le_72h"
	ResponseBucketOver ResponseBucket = "over_72h"
)

// ResponseMetricsWindow bounds the messaging response-metrics lookback (spec §4.G).
const ResponseMetricsWindow = 30 * 24 * time.Hour

// Reserved usernames (spec §4.B): cannot be registered regardless of case.
var ReservedUsernames = map[string]bool{
	"admin":     true,
	"root":      true,
	"support":   true,
	"api":       true,
	"www":       true,
	"decent":    true,
	"decentcloud": true,
	"system":    true,
	"null":      true,
	"undefined": true,
}

// HTTP request deadline defaults (spec §5).
const (
	RequestDeadline        = 30 * time.Second
	WebhookRailDeadline    = 5 * time.Second
)

// Months-to-hours divisor used by the duration-based price calculation
// (spec §4.E: payment_amount_e9s = monthly_price_e9s * duration_hours / 720).
const HoursPerBillingMonth = 720

// RateLimited operations (spec §7): resend-verification and
// recovery-request are capped at one per minute per identity.
const RateLimitWindow = time.Minute
