package services

import (
	"context"
	"testing"

	"github.com/decent-cloud/backend/internal/dbmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAdminService_ResetEmail_ResetsToPending exercises the admin-triage
// reset path (spec §4.H/§8: reset_email(id) -> pending, attempts=0), which
// AdminService delegates straight through to the store.
func TestAdminService_ResetEmail_ResetsToPending(t *testing.T) {
	ctx := context.Background()
	q := dbmock.NewMockQuerierForTest(t)
	svc := NewAdminService(q, nil)

	id := uuid.New()
	q.EXPECT().ResetEmail(ctx, id).Return(nil)

	require.NoError(t, svc.ResetEmail(ctx, id))
}

// TestAdminService_RetryAllFailed_ReportsAffectedCount covers
// retry_all_failed resetting exactly the failed entries (spec §8) — the
// count the store reports is passed through unchanged.
func TestAdminService_RetryAllFailed_ReportsAffectedCount(t *testing.T) {
	ctx := context.Background()
	q := dbmock.NewMockQuerierForTest(t)
	svc := NewAdminService(q, nil)

	q.EXPECT().RetryAllFailed(ctx).Return(int64(4), nil)

	n, err := svc.RetryAllFailed(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
