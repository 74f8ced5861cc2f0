package auth

import (
	"context"
	"encoding/hex"
	"strconv"
	"testing"
	"time"

	"github.com/decent-cloud/backend/internal/db"
	"github.com/decent-cloud/backend/internal/dbmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSignEd25519ph_CrossPlatformFixture pins the signing scheme against a
// fixed seed/message pair (spec §8 scenario 1) so a divergent implementation
// on either side of the wire is caught immediately.
func TestSignEd25519ph_CrossPlatformFixture(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}
	message := []byte("test message for cross-platform verification")

	pubkey, sig, err := SignEd25519ph(seed, message)
	require.NoError(t, err)

	assert.Equal(t, "03a107bff3ce10be1d70dd18e74bc09967e4d6309ba50d5f1ddc8664125531b8", hex.EncodeToString(pubkey))
	assert.Equal(t, "a2aca8ef6760241fc2b254447b9320f03fffaaa11f60365b33455b5d664abc0172627ce2258cdbde7e2eddbe20bda46e008f8041ffb61515e7f4e5a8fdab3f0f", hex.EncodeToString(sig))
}

func newTestVerifier(t *testing.T, q db.Querier, now time.Time) *Verifier {
	v := NewVerifier(q, NewNonceCache(1024, FreshnessWindow))
	v.clock = func() time.Time { return now }
	return v
}

func signedRequest(t *testing.T, seed []byte, now time.Time, nonce, method, path string, body []byte) SignedRequest {
	pubkey, sig, err := SignEd25519ph(seed, CanonicalMessage(timestampASCII(now), method, path, body))
	require.NoError(t, err)
	return SignedRequest{
		Method:       method,
		Path:         path,
		Body:         body,
		PublicKeyHex: hex.EncodeToString(pubkey),
		SignatureHex: hex.EncodeToString(sig),
		TimestampStr: timestampASCII(now),
		Nonce:        nonce,
	}
}

func timestampASCII(t time.Time) string {
	return strconv.FormatInt(t.UnixNano(), 10)
}

func TestVerifier_Verify_RoundTripSucceeds(t *testing.T) {
	ctx := context.Background()
	seed := make([]byte, 32)
	seed[0] = 7

	pubkeyBytes, _, err := SignEd25519ph(seed, []byte("priming"))
	require.NoError(t, err)
	var pubkeyArr [32]byte
	copy(pubkeyArr[:], pubkeyBytes)

	accountID := db.Account{}.ID
	q := dbmock.NewMockQuerierForTest(t)
	q.EXPECT().GetPublicKeyByBytes(ctx, pubkeyArr).Return(db.PublicKey{AccountID: accountID, PublicKey: pubkeyArr}, nil)
	q.EXPECT().GetAccountByID(ctx, accountID).Return(db.Account{ID: accountID}, nil)

	now := time.Unix(1_700_000_000, 0)
	v := newTestVerifier(t, q, now)

	sr := signedRequest(t, seed, now, "nonce-1", "POST", "/api/v1/contracts", []byte(`{"a":1}`))

	authed, err := v.Verify(ctx, sr)
	require.NoError(t, err)
	assert.Equal(t, accountID, authed.Account.ID)
}

func TestVerifier_Verify_TamperedSignatureIsRejected(t *testing.T) {
	ctx := context.Background()
	seed := make([]byte, 32)
	seed[0] = 9

	now := time.Unix(1_700_000_000, 0)
	q := dbmock.NewMockQuerierForTest(t)
	v := newTestVerifier(t, q, now)

	sr := signedRequest(t, seed, now, "nonce-2", "GET", "/api/v1/offerings", nil)
	sigBytes, err := hex.DecodeString(sr.SignatureHex)
	require.NoError(t, err)
	sigBytes[0] ^= 0xFF
	sr.SignatureHex = hex.EncodeToString(sigBytes)

	_, err = v.Verify(ctx, sr)
	require.Error(t, err)
	ve, ok := AsVerifyError(err)
	require.True(t, ok)
	assert.Equal(t, ErrBadSignature, ve.Kind)
}

func TestVerifier_Verify_TimestampOutsideFreshnessWindowIsRejected(t *testing.T) {
	ctx := context.Background()
	seed := make([]byte, 32)
	seed[0] = 3

	signedAt := time.Unix(1_700_000_000, 0)
	q := dbmock.NewMockQuerierForTest(t)
	sr := signedRequest(t, seed, signedAt, "nonce-3", "GET", "/api/v1/offerings", nil)

	verifierNow := signedAt.Add(6 * time.Minute)
	v := newTestVerifier(t, q, verifierNow)

	_, err := v.Verify(ctx, sr)
	require.Error(t, err)
	ve, ok := AsVerifyError(err)
	require.True(t, ok)
	assert.Equal(t, ErrTimestampOutOfWindow, ve.Kind)
}

func TestVerifier_Verify_ReplayedNonceIsRejectedOnSecondUse(t *testing.T) {
	ctx := context.Background()
	seed := make([]byte, 32)
	seed[0] = 5

	pubkeyBytes, _, err := SignEd25519ph(seed, []byte("priming"))
	require.NoError(t, err)
	var pubkeyArr [32]byte
	copy(pubkeyArr[:], pubkeyBytes)
	accountID := db.Account{}.ID

	q := dbmock.NewMockQuerierForTest(t)
	q.EXPECT().GetPublicKeyByBytes(ctx, pubkeyArr).Return(db.PublicKey{AccountID: accountID, PublicKey: pubkeyArr}, nil)
	q.EXPECT().GetAccountByID(ctx, accountID).Return(db.Account{ID: accountID}, nil)

	now := time.Unix(1_700_000_000, 0)
	v := newTestVerifier(t, q, now)

	sr := signedRequest(t, seed, now, "nonce-reused", "POST", "/api/v1/contracts", []byte(`{}`))

	_, err = v.Verify(ctx, sr)
	require.NoError(t, err)

	_, err = v.Verify(ctx, sr)
	require.Error(t, err)
	ve, ok := AsVerifyError(err)
	require.True(t, ok)
	assert.Equal(t, ErrReplayedNonce, ve.Kind)
}
