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
	"go.uber.org/mock/gomock"
)

func newAccountService(t *testing.T) (*AccountService, *dbmock.MockQuerier) {
	q := dbmock.NewMockQuerierForTest(t)
	return NewAccountService(q, nil), q
}

// Register("Alice") followed by Register("alice") must collide on the
// case-folded username while the first row keeps its original casing
// (spec §8 scenario 6).
func TestAccountService_Register_UsernameUniquenessIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc, q := newAccountService(t)

	var pubkey [32]byte
	pubkey[0] = 1

	q.EXPECT().GetAccountByUsernameLower(ctx, "alice").Return(db.Account{}, pgx.ErrNoRows)
	q.EXPECT().CreateAccount(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, arg db.CreateAccountParams) (db.Account, error) {
			assert.Equal(t, "Alice", arg.Username)
			assert.Equal(t, "alice", arg.UsernameLower)
			return db.Account{ID: arg.ID, Username: arg.Username, UsernameLower: arg.UsernameLower}, nil
		})
	q.EXPECT().CreatePublicKey(ctx, gomock.Any()).Return(db.PublicKey{}, nil)

	account, err := svc.Register(ctx, "Alice", "alice@example.com", pubkey)
	require.NoError(t, err)
	assert.Equal(t, "Alice", account.Username)

	q.EXPECT().GetAccountByUsernameLower(ctx, "alice").Return(account, nil)

	_, err = svc.Register(ctx, "alice", "alice2@example.com", pubkey)
	require.Error(t, err)
	assert.Equal(t, apierr.Conflict, apierr.As(err).Kind)
}

func TestAccountService_Register_RejectsInvalidUsername(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	var pubkey [32]byte
	_, err := svc.Register(ctx, "ab", "a@example.com", pubkey)
	require.Error(t, err)
	assert.Equal(t, apierr.InvalidArgument, apierr.As(err).Kind)
}

func TestAccountService_DisableKey_RefusesToDisableLastActiveKey(t *testing.T) {
	ctx := context.Background()
	svc, q := newAccountService(t)

	accountID := db.Account{}.ID
	callerKey := db.PublicKey{ID: accountID, AccountID: accountID}

	q.EXPECT().ListActiveKeysForAccount(ctx, accountID).Return([]db.PublicKey{callerKey}, nil)

	err := svc.DisableKey(ctx, accountID, callerKey.ID, callerKey)
	require.Error(t, err)
	assert.Equal(t, apierr.PreconditionFailed, apierr.As(err).Kind)
}
