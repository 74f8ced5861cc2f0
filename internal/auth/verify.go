// Package auth implements keyed-identity, signed-request authentication
// (spec §4.A): Ed25519ph signature verification over a canonical message,
// a freshness window, and a replay-resistant nonce cache.
package auth

import (
	"bytes"
	"context"
	"crypto"
	"crypto/ed25519"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/decent-cloud/backend/internal/db"
)

func sha512Sum(b []byte) []byte {
	sum := sha512.Sum512(b)
	return sum[:]
}

// domainContext is the Ed25519ph context string every signature is bound
// to; it keeps this signing scheme distinct from any other Ed25519ph use
// of the same keys.
const domainContext = "decent-cloud"

// FreshnessWindow is the maximum allowed clock skew between the
// X-Timestamp header and the verifier's clock (spec §4.A: 300s).
const FreshnessWindow = 300 * time.Second

type ErrorKind string

const (
	ErrMissingHeader       ErrorKind = "MissingHeader"
	ErrBadHex              ErrorKind = "BadHex"
	ErrBadTimestamp        ErrorKind = "BadTimestamp"
	ErrTimestampOutOfWindow ErrorKind = "TimestampOutOfWindow"
	ErrReplayedNonce       ErrorKind = "ReplayedNonce"
	ErrUnknownKey          ErrorKind = "UnknownKey"
	ErrDisabledKey         ErrorKind = "DisabledKey"
	ErrBadSignature        ErrorKind = "BadSignature"
)

type VerifyError struct {
	Kind ErrorKind
	Msg  string
}

func (e *VerifyError) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Msg) }

func fail(kind ErrorKind, msg string) error {
	return &VerifyError{Kind: kind, Msg: msg}
}

// AsVerifyError extracts a *VerifyError, if err is (or wraps) one.
func AsVerifyError(err error) (*VerifyError, bool) {
	var ve *VerifyError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AuthedUser is the result of a successful verification: the account and
// the specific key that signed the request.
type AuthedUser struct {
	Account   db.Account
	ActiveKey db.PublicKey
}

// SignedRequest carries the four auth headers plus the request body used
// to reconstruct the canonical message.
type SignedRequest struct {
	Method       string
	Path         string
	Body         []byte
	PublicKeyHex string
	SignatureHex string
	TimestampStr string
	Nonce        string
}

// ExtractSignedRequest reads the four auth headers and the body off an
// *http.Request without consuming r.Body for downstream handlers.
func ExtractSignedRequest(r *http.Request) (SignedRequest, error) {
	sr := SignedRequest{
		Method:       r.Method,
		Path:         r.URL.Path,
		PublicKeyHex: r.Header.Get("X-Public-Key"),
		SignatureHex: r.Header.Get("X-Signature"),
		TimestampStr: r.Header.Get("X-Timestamp"),
		Nonce:        r.Header.Get("X-Nonce"),
	}
	if sr.PublicKeyHex == "" || sr.SignatureHex == "" || sr.TimestampStr == "" || sr.Nonce == "" {
		return sr, fail(ErrMissingHeader, "one or more of X-Public-Key, X-Signature, X-Timestamp, X-Nonce missing")
	}
	if len(sr.Nonce) > 64 {
		return sr, fail(ErrMissingHeader, "X-Nonce exceeds 64 bytes")
	}
	if r.Body != nil {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return sr, fail(ErrMissingHeader, "failed to read body: "+err.Error())
		}
		sr.Body = body
		r.Body = io.NopCloser(bytes.NewReader(body))
	}
	return sr, nil
}

// CanonicalMessage builds timestamp_ns_ascii || method || path || body_bytes.
func CanonicalMessage(timestampNsASCII, method, path string, body []byte) []byte {
	msg := make([]byte, 0, len(timestampNsASCII)+len(method)+len(path)+len(body))
	msg = append(msg, []byte(timestampNsASCII)...)
	msg = append(msg, []byte(method)...)
	msg = append(msg, []byte(path)...)
	msg = append(msg, body...)
	return msg
}

// Verifier resolves keys and accounts from the identity store and guards
// against replay via a nonce cache.
type Verifier struct {
	q     db.Querier
	nonces *NonceCache
	clock func() time.Time
}

func NewVerifier(q db.Querier, nonces *NonceCache) *Verifier {
	return &Verifier{q: q, nonces: nonces, clock: time.Now}
}

// Verify implements verify(request) -> AuthedUser | error (spec §4.A).
func (v *Verifier) Verify(ctx context.Context, sr SignedRequest) (AuthedUser, error) {
	pubkeyBytes, err := hex.DecodeString(sr.PublicKeyHex)
	if err != nil || len(pubkeyBytes) != ed25519.PublicKeySize {
		return AuthedUser{}, fail(ErrBadHex, "X-Public-Key is not valid hex or wrong length")
	}
	sigBytes, err := hex.DecodeString(sr.SignatureHex)
	if err != nil || len(sigBytes) != ed25519.SignatureSize {
		return AuthedUser{}, fail(ErrBadHex, "X-Signature is not valid hex or wrong length")
	}

	timestampNs, err := strconv.ParseInt(sr.TimestampStr, 10, 64)
	if err != nil {
		return AuthedUser{}, fail(ErrBadTimestamp, "X-Timestamp is not a valid integer")
	}

	now := v.clock()
	skew := now.Sub(time.Unix(0, timestampNs))
	if skew < 0 {
		skew = -skew
	}
	if skew > FreshnessWindow {
		return AuthedUser{}, fail(ErrTimestampOutOfWindow, "timestamp outside ±300s freshness window")
	}

	var pubkey [32]byte
	copy(pubkey[:], pubkeyBytes)

	if !v.nonces.CheckAndStore(pubkey, sr.Nonce, now) {
		return AuthedUser{}, fail(ErrReplayedNonce, "nonce already seen for this public key within the freshness window")
	}

	message := CanonicalMessage(sr.TimestampStr, sr.Method, sr.Path, sr.Body)
	if !verifyEd25519ph(pubkeyBytes, message, sigBytes) {
		return AuthedUser{}, fail(ErrBadSignature, "signature does not verify")
	}

	key, err := v.q.GetPublicKeyByBytes(ctx, pubkey)
	if err != nil {
		return AuthedUser{}, fail(ErrUnknownKey, "public key not registered")
	}
	if key.DisabledAtNs != nil {
		return AuthedUser{}, fail(ErrDisabledKey, "public key has been disabled")
	}

	account, err := v.q.GetAccountByID(ctx, key.AccountID)
	if err != nil {
		return AuthedUser{}, fail(ErrUnknownKey, "key's account could not be resolved")
	}

	return AuthedUser{Account: account, ActiveKey: key}, nil
}

// verifyEd25519ph checks sig over message using the Ed25519ph (prehash)
// scheme with the "decent-cloud" domain context (spec §4.A).
func verifyEd25519ph(pubkey, message, sig []byte) bool {
	opts := &ed25519.Options{Hash: crypto.SHA512, Context: domainContext}
	digest := sha512Sum(message)
	err := ed25519.VerifyWithOptions(pubkey, digest, sig, opts)
	return err == nil
}

// SignEd25519ph is the client-side counterpart used by tests and by the
// cross-platform signature fixture (spec §8 scenario 1).
func SignEd25519ph(seed []byte, message []byte) (pubkey, sig []byte, err error) {
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	opts := &ed25519.Options{Hash: crypto.SHA512, Context: domainContext}
	digest := sha512Sum(message)
	s, err := priv.Sign(nil, digest, opts)
	if err != nil {
		return nil, nil, err
	}
	return pub, s, nil
}
