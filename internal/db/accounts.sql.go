package db

import (
	"context"

	"github.com/google/uuid"
)

const createAccountSQL = `
INSERT INTO accounts (id, username, username_lower, email, email_verified, is_admin, created_at_ns, updated_at_ns)
VALUES ($1, $2, $3, $4, false, false, $5, $6)
RETURNING id, username, username_lower, email, email_verified, is_admin,
          billing_address, billing_vat_id, billing_country_code, created_at_ns, updated_at_ns`

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) (Account, error) {
	row := q.db.QueryRow(ctx, createAccountSQL, arg.ID, arg.Username, arg.UsernameLower, arg.Email, arg.CreatedAtNs, arg.UpdatedAtNs)
	return scanAccount(row)
}

const getAccountByUsernameLowerSQL = `
SELECT id, username, username_lower, email, email_verified, is_admin,
       billing_address, billing_vat_id, billing_country_code, created_at_ns, updated_at_ns
FROM accounts WHERE username_lower = $1`

func (q *Queries) GetAccountByUsernameLower(ctx context.Context, usernameLower string) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByUsernameLowerSQL, usernameLower)
	return scanAccount(row)
}

const getAccountByIDSQL = `
SELECT id, username, username_lower, email, email_verified, is_admin,
       billing_address, billing_vat_id, billing_country_code, created_at_ns, updated_at_ns
FROM accounts WHERE id = $1`

func (q *Queries) GetAccountByID(ctx context.Context, id uuid.UUID) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByIDSQL, id)
	return scanAccount(row)
}

const getAccountByEmailSQL = `
SELECT id, username, username_lower, email, email_verified, is_admin,
       billing_address, billing_vat_id, billing_country_code, created_at_ns, updated_at_ns
FROM accounts WHERE email = $1`

func (q *Queries) GetAccountByEmail(ctx context.Context, email string) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByEmailSQL, email)
	return scanAccount(row)
}

const setAccountEmailSQL = `UPDATE accounts SET email = $2, email_verified = false, updated_at_ns = $3 WHERE id = $1`

func (q *Queries) SetAccountEmail(ctx context.Context, id uuid.UUID, email string, updatedAtNs int64) error {
	_, err := q.db.Exec(ctx, setAccountEmailSQL, id, email, updatedAtNs)
	return err
}

const setAccountEmailVerifiedSQL = `UPDATE accounts SET email_verified = true, updated_at_ns = $2 WHERE id = $1`

func (q *Queries) SetAccountEmailVerified(ctx context.Context, id uuid.UUID, updatedAtNs int64) error {
	_, err := q.db.Exec(ctx, setAccountEmailVerifiedSQL, id, updatedAtNs)
	return err
}

const setAccountAdminSQL = `UPDATE accounts SET is_admin = $2, updated_at_ns = $3 WHERE id = $1`

func (q *Queries) SetAccountAdmin(ctx context.Context, id uuid.UUID, isAdmin bool, updatedAtNs int64) error {
	_, err := q.db.Exec(ctx, setAccountAdminSQL, id, isAdmin, updatedAtNs)
	return err
}

const listAdminsSQL = `
SELECT id, username, username_lower, email, email_verified, is_admin,
       billing_address, billing_vat_id, billing_country_code, created_at_ns, updated_at_ns
FROM accounts WHERE is_admin = true ORDER BY username_lower`

func (q *Queries) ListAdmins(ctx context.Context) ([]Account, error) {
	rows, err := q.db.Query(ctx, listAdminsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.Username, &a.UsernameLower, &a.Email, &a.EmailVerified, &a.IsAdmin,
		&a.BillingAddress, &a.BillingVatID, &a.BillingCountryCode, &a.CreatedAtNs, &a.UpdatedAtNs)
	if err != nil {
		return Account{}, err
	}
	return a, nil
}

const createPublicKeySQL = `
INSERT INTO public_keys (id, account_id, public_key, device_name, added_at_ns)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, account_id, public_key, device_name, added_at_ns, disabled_at_ns, disabled_by_key_id`

func (q *Queries) CreatePublicKey(ctx context.Context, arg CreatePublicKeyParams) (PublicKey, error) {
	row := q.db.QueryRow(ctx, createPublicKeySQL, arg.ID, arg.AccountID, arg.PublicKey[:], arg.DeviceName, arg.AddedAtNs)
	return scanPublicKey(row)
}

const getPublicKeyByBytesSQL = `
SELECT id, account_id, public_key, device_name, added_at_ns, disabled_at_ns, disabled_by_key_id
FROM public_keys WHERE public_key = $1`

func (q *Queries) GetPublicKeyByBytes(ctx context.Context, pubkey [32]byte) (PublicKey, error) {
	row := q.db.QueryRow(ctx, getPublicKeyByBytesSQL, pubkey[:])
	return scanPublicKey(row)
}

const getPublicKeyByIDSQL = `
SELECT id, account_id, public_key, device_name, added_at_ns, disabled_at_ns, disabled_by_key_id
FROM public_keys WHERE id = $1`

func (q *Queries) GetPublicKeyByID(ctx context.Context, id uuid.UUID) (PublicKey, error) {
	row := q.db.QueryRow(ctx, getPublicKeyByIDSQL, id)
	return scanPublicKey(row)
}

const listActiveKeysForAccountSQL = `
SELECT id, account_id, public_key, device_name, added_at_ns, disabled_at_ns, disabled_by_key_id
FROM public_keys WHERE account_id = $1 AND disabled_at_ns IS NULL ORDER BY added_at_ns`

func (q *Queries) ListActiveKeysForAccount(ctx context.Context, accountID uuid.UUID) ([]PublicKey, error) {
	rows, err := q.db.Query(ctx, listActiveKeysForAccountSQL, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PublicKey
	for rows.Next() {
		k, err := scanPublicKey(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

const disablePublicKeySQL = `UPDATE public_keys SET disabled_at_ns = $2, disabled_by_key_id = $3 WHERE id = $1`

func (q *Queries) DisablePublicKey(ctx context.Context, id uuid.UUID, disabledAtNs int64, disabledByKeyID uuid.UUID) error {
	_, err := q.db.Exec(ctx, disablePublicKeySQL, id, disabledAtNs, disabledByKeyID)
	return err
}

const renamePublicKeySQL = `UPDATE public_keys SET device_name = $2 WHERE id = $1`

func (q *Queries) RenamePublicKey(ctx context.Context, id uuid.UUID, deviceName string) error {
	_, err := q.db.Exec(ctx, renamePublicKeySQL, id, deviceName)
	return err
}

func scanPublicKey(row rowScanner) (PublicKey, error) {
	var k PublicKey
	var raw []byte
	err := row.Scan(&k.ID, &k.AccountID, &raw, &k.DeviceName, &k.AddedAtNs, &k.DisabledAtNs, &k.DisabledByKeyID)
	if err != nil {
		return PublicKey{}, err
	}
	copy(k.PublicKey[:], raw)
	return k, nil
}
