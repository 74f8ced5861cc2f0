package services

import (
	"context"
	"crypto/rand"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/decent-cloud/backend/internal/apierr"
	"github.com/decent-cloud/backend/internal/constants"
	"github.com/decent-cloud/backend/internal/db"
	"github.com/decent-cloud/backend/internal/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._@-]*[a-z0-9]$`)

// AccountService implements identity & account store operations (spec §4.B).
type AccountService struct {
	queries db.Querier
	emails  *EmailService
}

func NewAccountService(queries db.Querier, emails *EmailService) *AccountService {
	return &AccountService{queries: queries, emails: emails}
}

func validateUsername(username string) error {
	if len(username) < 3 || len(username) > 64 {
		return apierr.New(apierr.InvalidArgument, "username must be between 3 and 64 characters")
	}
	lower := strings.ToLower(username)
	if !usernamePattern.MatchString(lower) {
		return apierr.New(apierr.InvalidArgument, "username contains invalid characters")
	}
	if constants.ReservedUsernames[lower] {
		return apierr.New(apierr.InvalidArgument, "username is reserved")
	}
	return nil
}

// Register creates a new account with its first public key (spec §4.B).
// Username uniqueness is case-insensitive but the supplied casing is
// preserved in storage (spec §8 scenario 6).
func (s *AccountService) Register(ctx context.Context, username, email string, publicKey [32]byte) (db.Account, error) {
	if err := validateUsername(username); err != nil {
		return db.Account{}, err
	}
	usernameLower := strings.ToLower(username)

	if _, err := s.queries.GetAccountByUsernameLower(ctx, usernameLower); err == nil {
		return db.Account{}, apierr.New(apierr.Conflict, "username already taken")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return db.Account{}, apierr.Wrap(apierr.Internal, "failed to check username", err)
	}

	now := time.Now().UnixNano()
	accountID := uuid.New()

	account, err := s.queries.CreateAccount(ctx, db.CreateAccountParams{
		ID:            accountID,
		Username:      username,
		UsernameLower: usernameLower,
		Email:         email,
		CreatedAtNs:   now,
		UpdatedAtNs:   now,
	})
	if err != nil {
		return db.Account{}, apierr.Wrap(apierr.Internal, "failed to create account", err)
	}

	if _, err := s.queries.CreatePublicKey(ctx, db.CreatePublicKeyParams{
		ID:        uuid.New(),
		AccountID: accountID,
		PublicKey: publicKey,
		AddedAtNs: now,
	}); err != nil {
		return db.Account{}, apierr.Wrap(apierr.Internal, "failed to register public key", err)
	}

	return account, nil
}

// AddKey attaches a new public key to an account. The caller must present
// an active key belonging to the same account (spec §4.B).
func (s *AccountService) AddKey(ctx context.Context, accountID uuid.UUID, newPub [32]byte, callerKey db.PublicKey) (db.PublicKey, error) {
	if callerKey.AccountID != accountID {
		return db.PublicKey{}, apierr.New(apierr.Forbidden, "caller key does not belong to this account")
	}
	if _, err := s.queries.GetPublicKeyByBytes(ctx, newPub); err == nil {
		return db.PublicKey{}, apierr.New(apierr.Conflict, "public key already registered")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return db.PublicKey{}, apierr.Wrap(apierr.Internal, "failed to check public key", err)
	}

	key, err := s.queries.CreatePublicKey(ctx, db.CreatePublicKeyParams{
		ID:        uuid.New(),
		AccountID: accountID,
		PublicKey: newPub,
		AddedAtNs: time.Now().UnixNano(),
	})
	if err != nil {
		return db.PublicKey{}, apierr.Wrap(apierr.Internal, "failed to add public key", err)
	}
	return key, nil
}

// DisableKey disables a key, recording which key disabled it. An account
// must retain at least one active key (spec §4.B invariant).
func (s *AccountService) DisableKey(ctx context.Context, accountID, keyID uuid.UUID, callerKey db.PublicKey) error {
	if callerKey.AccountID != accountID {
		return apierr.New(apierr.Forbidden, "caller key does not belong to this account")
	}

	active, err := s.queries.ListActiveKeysForAccount(ctx, accountID)
	if err != nil {
		return apierr.Wrap(apierr.Internal, "failed to list active keys", err)
	}
	if len(active) <= 1 {
		return apierr.New(apierr.PreconditionFailed, "cannot disable the last active key")
	}

	target, err := s.queries.GetPublicKeyByID(ctx, keyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apierr.New(apierr.NotFound, "key not found")
		}
		return apierr.Wrap(apierr.Internal, "failed to look up key", err)
	}
	if target.AccountID != accountID {
		return apierr.New(apierr.Forbidden, "key does not belong to this account")
	}
	if target.DisabledAtNs != nil {
		return apierr.New(apierr.PreconditionFailed, "key already disabled")
	}

	if err := s.queries.DisablePublicKey(ctx, keyID, time.Now().UnixNano(), callerKey.ID); err != nil {
		return apierr.Wrap(apierr.Internal, "failed to disable key", err)
	}
	return nil
}

// RenameDevice relabels a key's device_name.
func (s *AccountService) RenameDevice(ctx context.Context, accountID, keyID uuid.UUID, label string, callerKey db.PublicKey) error {
	if callerKey.AccountID != accountID {
		return apierr.New(apierr.Forbidden, "caller key does not belong to this account")
	}
	target, err := s.queries.GetPublicKeyByID(ctx, keyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apierr.New(apierr.NotFound, "key not found")
		}
		return apierr.Wrap(apierr.Internal, "failed to look up key", err)
	}
	if target.AccountID != accountID {
		return apierr.New(apierr.Forbidden, "key does not belong to this account")
	}
	if err := s.queries.RenamePublicKey(ctx, keyID, label); err != nil {
		return apierr.Wrap(apierr.Internal, "failed to rename key", err)
	}
	return nil
}

// SetEmail updates the account's email and resets verification status
// (spec §4.B).
func (s *AccountService) SetEmail(ctx context.Context, accountID uuid.UUID, email string) error {
	now := time.Now().UnixNano()
	if err := s.queries.SetAccountEmail(ctx, accountID, email, now); err != nil {
		return apierr.Wrap(apierr.Internal, "failed to update email", err)
	}
	return nil
}

// StartEmailVerification issues a 24h single-use verification token and
// enqueues the verification email.
func (s *AccountService) StartEmailVerification(ctx context.Context, account db.Account) (db.EmailVerificationToken, error) {
	now := time.Now().UnixNano()
	token := db.EmailVerificationToken{
		Token:       randomToken16(),
		AccountID:   account.ID,
		CreatedAtNs: now,
		ExpiresAtNs: now + int64(constants.TokenExpiry),
	}
	created, err := s.queries.CreateEmailVerificationToken(ctx, db.CreateEmailVerificationTokenParams{
		Token:       token.Token,
		AccountID:   token.AccountID,
		CreatedAtNs: token.CreatedAtNs,
		ExpiresAtNs: token.ExpiresAtNs,
	})
	if err != nil {
		return db.EmailVerificationToken{}, apierr.Wrap(apierr.Internal, "failed to create verification token", err)
	}

	if s.emails != nil && account.Email != "" {
		if err := s.emails.EnqueueVerificationEmail(ctx, account.Email, created.Token); err != nil {
			logger.Error("failed to enqueue verification email", zap.Error(err), zap.String("account_id", account.ID.String()))
		}
	}
	return created, nil
}

// VerifyEmail atomically consumes a verification token and marks the
// account's email verified (spec §4.B).
func (s *AccountService) VerifyEmail(ctx context.Context, tokenBytes [16]byte) error {
	token, err := s.queries.GetEmailVerificationToken(ctx, tokenBytes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apierr.New(apierr.NotFound, "invalid verification token")
		}
		return apierr.Wrap(apierr.Internal, "failed to look up token", err)
	}
	now := time.Now().UnixNano()
	if token.UsedAtNs != nil {
		return apierr.New(apierr.PreconditionFailed, "token already used")
	}
	if token.ExpiresAtNs < now {
		return apierr.New(apierr.PreconditionFailed, "token expired")
	}

	if err := s.queries.MarkEmailVerificationTokenUsed(ctx, tokenBytes, now); err != nil {
		return apierr.Wrap(apierr.Internal, "failed to mark token used", err)
	}
	if err := s.queries.SetAccountEmailVerified(ctx, token.AccountID, now); err != nil {
		return apierr.Wrap(apierr.Internal, "failed to mark email verified", err)
	}
	return nil
}

// StartRecovery issues a recovery token for the account owning `email`.
// Unknown emails report success silently to avoid account enumeration
// (spec §4.B, §7).
func (s *AccountService) StartRecovery(ctx context.Context, email string) error {
	account, err := s.queries.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return apierr.Wrap(apierr.Internal, "failed to look up account", err)
	}

	now := time.Now().UnixNano()
	token, err := s.queries.CreateRecoveryToken(ctx, db.CreateRecoveryTokenParams{
		Token:       randomToken16(),
		AccountID:   account.ID,
		CreatedAtNs: now,
		ExpiresAtNs: now + int64(constants.TokenExpiry),
	})
	if err != nil {
		return apierr.Wrap(apierr.Internal, "failed to create recovery token", err)
	}

	if s.emails != nil && account.Email != "" {
		if err := s.emails.EnqueueRecoveryEmail(ctx, account.Email, token.Token); err != nil {
			logger.Error("failed to enqueue recovery email", zap.Error(err), zap.String("account_id", account.ID.String()))
		}
	}
	return nil
}

// CompleteRecovery atomically validates a recovery token and attaches a
// new public key to the owning account (spec §4.B).
func (s *AccountService) CompleteRecovery(ctx context.Context, tokenBytes [16]byte, newPub [32]byte) error {
	token, err := s.queries.GetRecoveryToken(ctx, tokenBytes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apierr.New(apierr.NotFound, "invalid recovery token")
		}
		return apierr.Wrap(apierr.Internal, "failed to look up token", err)
	}
	now := time.Now().UnixNano()
	if token.UsedAtNs != nil {
		return apierr.New(apierr.PreconditionFailed, "token already used")
	}
	if token.ExpiresAtNs < now {
		return apierr.New(apierr.PreconditionFailed, "token expired")
	}
	if _, err := s.queries.GetPublicKeyByBytes(ctx, newPub); err == nil {
		return apierr.New(apierr.Conflict, "public key already registered")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return apierr.Wrap(apierr.Internal, "failed to check public key", err)
	}

	if err := s.queries.MarkRecoveryTokenUsed(ctx, tokenBytes, now); err != nil {
		return apierr.Wrap(apierr.Internal, "failed to mark token used", err)
	}
	if _, err := s.queries.CreatePublicKey(ctx, db.CreatePublicKeyParams{
		ID:        uuid.New(),
		AccountID: token.AccountID,
		PublicKey: newPub,
		AddedAtNs: now,
	}); err != nil {
		return apierr.Wrap(apierr.Internal, "failed to attach recovered key", err)
	}
	return nil
}

// SetAdmin grants or revokes admin status by username.
func (s *AccountService) SetAdmin(ctx context.Context, username string, flag bool) error {
	account, err := s.queries.GetAccountByUsernameLower(ctx, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apierr.New(apierr.NotFound, "account not found")
		}
		return apierr.Wrap(apierr.Internal, "failed to look up account", err)
	}
	if err := s.queries.SetAccountAdmin(ctx, account.ID, flag, time.Now().UnixNano()); err != nil {
		return apierr.Wrap(apierr.Internal, "failed to update admin flag", err)
	}
	return nil
}

func (s *AccountService) LookupByKey(ctx context.Context, pubkey [32]byte) (db.Account, error) {
	key, err := s.queries.GetPublicKeyByBytes(ctx, pubkey)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.Account{}, apierr.New(apierr.NotFound, "key not found")
		}
		return db.Account{}, apierr.Wrap(apierr.Internal, "failed to look up key", err)
	}
	account, err := s.queries.GetAccountByID(ctx, key.AccountID)
	if err != nil {
		return db.Account{}, apierr.Wrap(apierr.Internal, "failed to look up account", err)
	}
	return account, nil
}

func (s *AccountService) LookupByUsername(ctx context.Context, username string) (db.Account, error) {
	account, err := s.queries.GetAccountByUsernameLower(ctx, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.Account{}, apierr.New(apierr.NotFound, "account not found")
		}
		return db.Account{}, apierr.Wrap(apierr.Internal, "failed to look up account", err)
	}
	return account, nil
}

func (s *AccountService) LookupByEmail(ctx context.Context, email string) (db.Account, error) {
	account, err := s.queries.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.Account{}, apierr.New(apierr.NotFound, "account not found")
		}
		return db.Account{}, apierr.Wrap(apierr.Internal, "failed to look up account", err)
	}
	return account, nil
}

func randomToken16() [16]byte {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return b
}
