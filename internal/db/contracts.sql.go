package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const contractColumns = `contract_id, requester_pubkey, provider_pubkey, offering_id, payment_method,
       payment_status, status, payment_amount_e9s, currency, request_memo, requester_ssh_pubkey,
       requester_contact, start_timestamp_ns, end_timestamp_ns, duration_hours, card_payment_intent_id,
       crypto_transaction_id, refund_amount_e9s, refund_external_id, refund_created_at_ns,
       receipt_number, instance_details, tax_amount_e9s, tax_rate_percent, tax_type, tax_jurisdiction,
       customer_tax_id, tax_reverse_charge, status_updated_at_ns, created_at_ns`

const createContractSQL = `
INSERT INTO contracts (contract_id, requester_pubkey, provider_pubkey, offering_id, payment_method,
       payment_status, status, payment_amount_e9s, currency, request_memo, requester_ssh_pubkey,
       requester_contact, duration_hours, tax_reverse_charge, status_updated_at_ns, created_at_ns)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,false,$14,$15)
RETURNING ` + contractColumns

func (q *Queries) CreateContract(ctx context.Context, arg CreateContractParams) (Contract, error) {
	row := q.db.QueryRow(ctx, createContractSQL,
		arg.ContractID, arg.RequesterPubkey[:], arg.ProviderPubkey[:], arg.OfferingID, string(arg.PaymentMethod),
		string(arg.PaymentStatus), string(arg.Status), arg.PaymentAmountE9s, arg.Currency, arg.RequestMemo,
		arg.RequesterSSHPubkey, arg.RequesterContact, arg.DurationHours, arg.StatusUpdatedAtNs, arg.CreatedAtNs,
	)
	return scanContract(row)
}

// GetContractForUpdate locks the row for the duration of the caller's
// transaction (spec §5: every status transition is serialised via
// SELECT ... FOR UPDATE within a single DB transaction).
const getContractForUpdateSQL = `SELECT ` + contractColumns + ` FROM contracts WHERE contract_id = $1 FOR UPDATE`

func (q *Queries) GetContractForUpdate(ctx context.Context, contractID uuid.UUID) (Contract, error) {
	row := q.db.QueryRow(ctx, getContractForUpdateSQL, contractID)
	return scanContract(row)
}

const getContractByCardIntentIDSQL = `SELECT ` + contractColumns + ` FROM contracts WHERE card_payment_intent_id = $1 FOR UPDATE`

func (q *Queries) GetContractByCardIntentID(ctx context.Context, intentID string) (Contract, error) {
	row := q.db.QueryRow(ctx, getContractByCardIntentIDSQL, intentID)
	return scanContract(row)
}

const updateContractSQL = `
UPDATE contracts SET
  payment_status = $2, status = $3, start_timestamp_ns = $4, end_timestamp_ns = $5,
  card_payment_intent_id = $6, crypto_transaction_id = $7, refund_amount_e9s = $8,
  refund_external_id = $9, refund_created_at_ns = $10, receipt_number = $11, instance_details = $12,
  tax_amount_e9s = $13, tax_rate_percent = $14, tax_type = $15, tax_jurisdiction = $16,
  customer_tax_id = $17, tax_reverse_charge = $18, status_updated_at_ns = $19
WHERE contract_id = $1`

func (q *Queries) UpdateContract(ctx context.Context, c Contract) error {
	_, err := q.db.Exec(ctx, updateContractSQL,
		c.ContractID, string(c.PaymentStatus), string(c.Status), c.StartTimestampNs, c.EndTimestampNs,
		c.CardPaymentIntentID, c.CryptoTransactionID, c.RefundAmountE9s, c.RefundExternalID,
		c.RefundCreatedAtNs, c.ReceiptNumber, c.InstanceDetails, c.TaxAmountE9s, c.TaxRatePercent,
		c.TaxType, c.TaxJurisdiction, c.CustomerTaxID, c.TaxReverseCharge, c.StatusUpdatedAtNs,
	)
	return err
}

const appendContractStatusHistorySQL = `
INSERT INTO contract_status_history (id, contract_id, from_status, to_status, actor_pubkey, memo, at_ns)
VALUES ($1,$2,$3,$4,$5,$6,$7)`

func (q *Queries) AppendContractStatusHistory(ctx context.Context, arg ContractStatusHistoryParams) error {
	_, err := q.db.Exec(ctx, appendContractStatusHistorySQL,
		arg.ID, arg.ContractID, arg.FromStatus, arg.ToStatus, arg.ActorPubkey[:], arg.Memo, arg.AtNs)
	return err
}

const listContractsForProviderSQL = `
SELECT ` + contractColumns + ` FROM contracts WHERE provider_pubkey = $1 AND created_at_ns >= $2 ORDER BY created_at_ns`

func (q *Queries) ListContractsForProvider(ctx context.Context, providerPubkey [32]byte, since int64) ([]Contract, error) {
	rows, err := q.db.Query(ctx, listContractsForProviderSQL, providerPubkey[:], since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContracts(rows)
}

const listContractsDueToActivateSQL = `
SELECT ` + contractColumns + ` FROM contracts
WHERE status = 'provisioned' AND start_timestamp_ns IS NOT NULL AND start_timestamp_ns <= $1`

func (q *Queries) ListContractsDueToActivate(ctx context.Context, nowNs int64) ([]Contract, error) {
	rows, err := q.db.Query(ctx, listContractsDueToActivateSQL, nowNs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContracts(rows)
}

const listContractsDueToEndSQL = `
SELECT ` + contractColumns + ` FROM contracts
WHERE status = 'active' AND end_timestamp_ns IS NOT NULL AND end_timestamp_ns <= $1`

func (q *Queries) ListContractsDueToEnd(ctx context.Context, nowNs int64) ([]Contract, error) {
	rows, err := q.db.Query(ctx, listContractsDueToEndSQL, nowNs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContracts(rows)
}

func scanContracts(rows pgx.Rows) ([]Contract, error) {
	var out []Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanContract(row rowScanner) (Contract, error) {
	var c Contract
	var requester, provider []byte
	var method, pstatus, status string
	err := row.Scan(&c.ContractID, &requester, &provider, &c.OfferingID, &method, &pstatus, &status,
		&c.PaymentAmountE9s, &c.Currency, &c.RequestMemo, &c.RequesterSSHPubkey, &c.RequesterContact,
		&c.StartTimestampNs, &c.EndTimestampNs, &c.DurationHours, &c.CardPaymentIntentID,
		&c.CryptoTransactionID, &c.RefundAmountE9s, &c.RefundExternalID, &c.RefundCreatedAtNs,
		&c.ReceiptNumber, &c.InstanceDetails, &c.TaxAmountE9s, &c.TaxRatePercent, &c.TaxType,
		&c.TaxJurisdiction, &c.CustomerTaxID, &c.TaxReverseCharge, &c.StatusUpdatedAtNs, &c.CreatedAtNs)
	if err != nil {
		return Contract{}, err
	}
	copy(c.RequesterPubkey[:], requester)
	copy(c.ProviderPubkey[:], provider)
	c.PaymentMethod = PaymentMethod(method)
	c.PaymentStatus = PaymentStatus(pstatus)
	c.Status = ContractStatus(status)
	return c, nil
}
