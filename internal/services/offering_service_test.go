package services

import (
	"context"
	"testing"

	"github.com/decent-cloud/backend/internal/apierr"
	"github.com/decent-cloud/backend/internal/db"
	"github.com/decent-cloud/backend/internal/dbmock"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOfferingService(t *testing.T) (*OfferingService, *dbmock.MockQuerier) {
	q := dbmock.NewMockQuerierForTest(t)
	return NewOfferingService(q), q
}

// TestOfferingService_GetVisible_PublicIsVisibleToAnyone covers the
// simplest visibility rule (spec §4.D).
func TestOfferingService_GetVisible_PublicIsVisibleToAnyone(t *testing.T) {
	ctx := context.Background()
	svc, q := newOfferingService(t)

	var owner [32]byte
	owner[0] = 1
	offering := db.Offering{OwnerPubkey: owner, OfferingID: "gpu-box", Visibility: db.VisibilityPublic}

	q.EXPECT().GetOfferingByOwnerAndID(ctx, owner, "gpu-box").Return(offering, nil)

	got, err := svc.GetVisible(ctx, owner, "gpu-box", nil)
	require.NoError(t, err)
	assert.Equal(t, offering.OfferingID, got.OfferingID)
}

// TestOfferingService_GetVisible_PrivateHidesFromUnallowlistedCaller covers
// the allowlist-gated branch: an unknown caller must get NotFound, never a
// signal distinguishing "exists but hidden" from "does not exist" (spec
// §4.D, §7).
func TestOfferingService_GetVisible_PrivateHidesFromUnallowlistedCaller(t *testing.T) {
	ctx := context.Background()
	svc, q := newOfferingService(t)

	var owner, caller [32]byte
	owner[0] = 1
	caller[0] = 2
	offering := db.Offering{OwnerPubkey: owner, OfferingID: "gpu-box", Visibility: db.VisibilityPrivate}

	q.EXPECT().GetOfferingByOwnerAndID(ctx, owner, "gpu-box").Return(offering, nil)
	q.EXPECT().IsAllowlisted(ctx, "gpu-box", caller).Return(false, nil)

	_, err := svc.GetVisible(ctx, owner, "gpu-box", &caller)
	require.Error(t, err)
	assert.Equal(t, apierr.NotFound, apierr.As(err).Kind)
}

func TestOfferingService_GetVisible_OwnerAlwaysSeesItsOwnPrivateOffering(t *testing.T) {
	ctx := context.Background()
	svc, q := newOfferingService(t)

	var owner [32]byte
	owner[0] = 1
	offering := db.Offering{OwnerPubkey: owner, OfferingID: "gpu-box", Visibility: db.VisibilityPrivate}

	q.EXPECT().GetOfferingByOwnerAndID(ctx, owner, "gpu-box").Return(offering, nil)

	got, err := svc.GetVisible(ctx, owner, "gpu-box", &owner)
	require.NoError(t, err)
	assert.Equal(t, offering.OfferingID, got.OfferingID)
}

// TestOfferingService_Query_TranslatesDSLErrorsToInvalidArgument ensures a
// bad search string surfaces as a client-facing InvalidArgument carrying
// the DSL's own message, not a generic internal error.
func TestOfferingService_Query_TranslatesDSLErrorsToInvalidArgument(t *testing.T) {
	ctx := context.Background()
	svc, _ := newOfferingService(t)

	_, err := svc.Query(ctx, "not_a_real_field:1", 10, 0)
	require.Error(t, err)
	apiErr := apierr.As(err)
	assert.Equal(t, apierr.InvalidArgument, apiErr.Kind)
	assert.Equal(t, "unknown field not_a_real_field", apiErr.Message)
}

func TestOfferingService_GetVisible_NotFoundWhenRowMissing(t *testing.T) {
	ctx := context.Background()
	svc, q := newOfferingService(t)

	var owner [32]byte
	q.EXPECT().GetOfferingByOwnerAndID(ctx, owner, "missing").Return(db.Offering{}, pgx.ErrNoRows)

	_, err := svc.GetVisible(ctx, owner, "missing", nil)
	require.Error(t, err)
	assert.Equal(t, apierr.NotFound, apierr.As(err).Kind)
}
