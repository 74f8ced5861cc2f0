package db

import "context"

const createEmailVerificationTokenSQL = `
INSERT INTO email_verification_tokens (token, account_id, email, created_at_ns, expires_at_ns)
VALUES ($1, $2, $3, $4, $5)
RETURNING token, account_id, email, created_at_ns, expires_at_ns, used_at_ns`

func (q *Queries) CreateEmailVerificationToken(ctx context.Context, arg CreateEmailVerificationTokenParams) (EmailVerificationToken, error) {
	row := q.db.QueryRow(ctx, createEmailVerificationTokenSQL, arg.Token[:], arg.AccountID, arg.Email, arg.CreatedAtNs, arg.ExpiresAtNs)
	return scanEmailVerificationToken(row)
}

const getEmailVerificationTokenSQL = `
SELECT token, account_id, email, created_at_ns, expires_at_ns, used_at_ns
FROM email_verification_tokens WHERE token = $1`

func (q *Queries) GetEmailVerificationToken(ctx context.Context, token [16]byte) (EmailVerificationToken, error) {
	row := q.db.QueryRow(ctx, getEmailVerificationTokenSQL, token[:])
	return scanEmailVerificationToken(row)
}

const markEmailVerificationTokenUsedSQL = `UPDATE email_verification_tokens SET used_at_ns = $2 WHERE token = $1`

func (q *Queries) MarkEmailVerificationTokenUsed(ctx context.Context, token [16]byte, usedAtNs int64) error {
	_, err := q.db.Exec(ctx, markEmailVerificationTokenUsedSQL, token[:], usedAtNs)
	return err
}

func scanEmailVerificationToken(row rowScanner) (EmailVerificationToken, error) {
	var t EmailVerificationToken
	var raw []byte
	err := row.Scan(&raw, &t.AccountID, &t.Email, &t.CreatedAtNs, &t.ExpiresAtNs, &t.UsedAtNs)
	if err != nil {
		return EmailVerificationToken{}, err
	}
	copy(t.Token[:], raw)
	return t, nil
}

const createRecoveryTokenSQL = `
INSERT INTO recovery_tokens (token, account_id, email, created_at_ns, expires_at_ns)
VALUES ($1, $2, $3, $4, $5)
RETURNING token, account_id, email, created_at_ns, expires_at_ns, used_at_ns`

func (q *Queries) CreateRecoveryToken(ctx context.Context, arg CreateRecoveryTokenParams) (RecoveryToken, error) {
	row := q.db.QueryRow(ctx, createRecoveryTokenSQL, arg.Token[:], arg.AccountID, arg.Email, arg.CreatedAtNs, arg.ExpiresAtNs)
	return scanRecoveryToken(row)
}

const getRecoveryTokenSQL = `
SELECT token, account_id, email, created_at_ns, expires_at_ns, used_at_ns
FROM recovery_tokens WHERE token = $1`

func (q *Queries) GetRecoveryToken(ctx context.Context, token [16]byte) (RecoveryToken, error) {
	row := q.db.QueryRow(ctx, getRecoveryTokenSQL, token[:])
	return scanRecoveryToken(row)
}

const markRecoveryTokenUsedSQL = `UPDATE recovery_tokens SET used_at_ns = $2 WHERE token = $1`

func (q *Queries) MarkRecoveryTokenUsed(ctx context.Context, token [16]byte, usedAtNs int64) error {
	_, err := q.db.Exec(ctx, markRecoveryTokenUsedSQL, token[:], usedAtNs)
	return err
}

func scanRecoveryToken(row rowScanner) (RecoveryToken, error) {
	var t RecoveryToken
	var raw []byte
	err := row.Scan(&raw, &t.AccountID, &t.Email, &t.CreatedAtNs, &t.ExpiresAtNs, &t.UsedAtNs)
	if err != nil {
		return RecoveryToken{}, err
	}
	copy(t.Token[:], raw)
	return t, nil
}
