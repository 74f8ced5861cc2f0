package services

import (
	"testing"
	"time"

	"github.com/decent-cloud/backend/internal/db"
	"github.com/stretchr/testify/assert"
)

// TestIsAllowedTransition_Graph pins the contract status machine (spec
// §4.E, §8): each disallowed (from, to) pair must be rejected and every
// pair the graph names must be accepted.
func TestIsAllowedTransition_Graph(t *testing.T) {
	allowed := []struct{ from, to db.ContractStatus }{
		{db.ContractStatusRequested, db.ContractStatusAccepted},
		{db.ContractStatusRequested, db.ContractStatusRejected},
		{db.ContractStatusRequested, db.ContractStatusCancelled},
		{db.ContractStatusRequested, db.ContractStatusExpired},
		{db.ContractStatusAccepted, db.ContractStatusProvisioning},
		{db.ContractStatusAccepted, db.ContractStatusCancelled},
		{db.ContractStatusProvisioning, db.ContractStatusProvisioned},
		{db.ContractStatusProvisioning, db.ContractStatusCancelled},
		{db.ContractStatusProvisioned, db.ContractStatusActive},
		{db.ContractStatusProvisioned, db.ContractStatusCancelled},
		{db.ContractStatusActive, db.ContractStatusEnded},
		{db.ContractStatusActive, db.ContractStatusCancelled},
	}
	for _, tc := range allowed {
		assert.Truef(t, isAllowedTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	disallowed := []struct{ from, to db.ContractStatus }{
		{db.ContractStatusRequested, db.ContractStatusActive},
		{db.ContractStatusRequested, db.ContractStatusProvisioned},
		{db.ContractStatusAccepted, db.ContractStatusActive},
		{db.ContractStatusProvisioned, db.ContractStatusRequested},
		{db.ContractStatusActive, db.ContractStatusRequested},
		{db.ContractStatusEnded, db.ContractStatusActive},
		{db.ContractStatusCancelled, db.ContractStatusActive},
	}
	for _, tc := range disallowed {
		assert.Falsef(t, isAllowedTransition(tc.from, tc.to), "%s -> %s should be disallowed", tc.from, tc.to)
	}
}

// TestProratedRefund_LiteralScenario pins the exact refund amount for
// cancellation one second into a ten-second contract (spec §8 scenario 4).
func TestProratedRefund_LiteralScenario(t *testing.T) {
	start := int64(0)
	end := int64(10 * time.Second)
	now := int64(1 * time.Second)

	refund := ProratedRefund(1_000_000_000, &start, &end, now)
	assert.Equal(t, int64(900_000_000), refund)
}

func TestProratedRefund_BoundariesAndLinearity(t *testing.T) {
	start := int64(0)
	end := int64(100)

	assert.Equal(t, int64(1000), ProratedRefund(1000, &start, &end, -1), "before start is a full refund")
	assert.Equal(t, int64(1000), ProratedRefund(1000, &start, &end, 0), "at start is a full refund")
	assert.Equal(t, int64(0), ProratedRefund(1000, &start, &end, 100), "at or past end is no refund")
	assert.Equal(t, int64(0), ProratedRefund(1000, &start, &end, 150), "past end is no refund")
	assert.Equal(t, int64(500), ProratedRefund(1000, &start, &end, 50), "halfway is half the refund")
	assert.Equal(t, int64(1000), ProratedRefund(1000, nil, &end, 50), "no start means never begun, full refund")
}
