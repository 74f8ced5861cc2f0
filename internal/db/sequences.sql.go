package db

import (
	"context"

	"github.com/google/uuid"
)

// AllocateReceiptNumber implements the single global monotone counter
// (spec §4.I): every caller hits one row via UPDATE ... RETURNING, so
// Postgres's row-lock serialises concurrent allocators and no two
// receipts ever observe the same number (spec §8 scenario: 10 parallel
// allocations yield 10 distinct, contiguous numbers).
const allocateReceiptNumberSQL = `
UPDATE receipt_sequence SET next_number = next_number + 1
WHERE id = 1
RETURNING next_number - 1`

func (q *Queries) AllocateReceiptNumber(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, allocateReceiptNumberSQL).Scan(&n)
	return n, err
}

// AllocateInvoiceNumber rolls the counter over per calendar year: the
// first allocation for a year inserts the row at 1, every subsequent
// one increments it.
const allocateInvoiceNumberSQL = `
INSERT INTO invoice_sequence (year, next_number) VALUES ($1, 2)
ON CONFLICT (year) DO UPDATE SET next_number = invoice_sequence.next_number + 1
RETURNING next_number - 1`

func (q *Queries) AllocateInvoiceNumber(ctx context.Context, year int32) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, allocateInvoiceNumberSQL, year).Scan(&n)
	return n, err
}

const createInvoiceSQL = `
INSERT INTO invoices (id, contract_id, invoice_number, invoice_date_ns, seller_name, seller_address,
       seller_vat_id, buyer_name, buyer_address, buyer_vat_id, subtotal_e9s, vat_rate_percent,
       vat_amount_e9s, total_e9s, currency, created_at_ns)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
RETURNING id, contract_id, invoice_number, invoice_date_ns, seller_name, seller_address, seller_vat_id,
          buyer_name, buyer_address, buyer_vat_id, subtotal_e9s, vat_rate_percent, vat_amount_e9s,
          total_e9s, currency, pdf_blob, pdf_generated_at_ns, created_at_ns`

func (q *Queries) CreateInvoice(ctx context.Context, arg CreateInvoiceParams) (Invoice, error) {
	row := q.db.QueryRow(ctx, createInvoiceSQL,
		arg.ID, arg.ContractID, arg.InvoiceNumber, arg.InvoiceDateNs, arg.SellerName, arg.SellerAddress,
		arg.SellerVatID, arg.BuyerName, arg.BuyerAddress, arg.BuyerVatID, arg.SubtotalE9s,
		arg.VatRatePercent, arg.VatAmountE9s, arg.TotalE9s, arg.Currency, arg.CreatedAtNs)
	return scanInvoice(row)
}

const getInvoiceByContractIDSQL = `
SELECT id, contract_id, invoice_number, invoice_date_ns, seller_name, seller_address, seller_vat_id,
       buyer_name, buyer_address, buyer_vat_id, subtotal_e9s, vat_rate_percent, vat_amount_e9s,
       total_e9s, currency, pdf_blob, pdf_generated_at_ns, created_at_ns
FROM invoices WHERE contract_id = $1`

func (q *Queries) GetInvoiceByContractID(ctx context.Context, contractID uuid.UUID) (Invoice, error) {
	row := q.db.QueryRow(ctx, getInvoiceByContractIDSQL, contractID)
	return scanInvoice(row)
}

const setInvoicePDFSQL = `UPDATE invoices SET pdf_blob = $2, pdf_generated_at_ns = $3 WHERE id = $1`

func (q *Queries) SetInvoicePDF(ctx context.Context, id uuid.UUID, blob []byte, generatedAtNs int64) error {
	_, err := q.db.Exec(ctx, setInvoicePDFSQL, id, blob, generatedAtNs)
	return err
}

func scanInvoice(row rowScanner) (Invoice, error) {
	var i Invoice
	err := row.Scan(&i.ID, &i.ContractID, &i.InvoiceNumber, &i.InvoiceDateNs, &i.SellerName,
		&i.SellerAddress, &i.SellerVatID, &i.BuyerName, &i.BuyerAddress, &i.BuyerVatID,
		&i.SubtotalE9s, &i.VatRatePercent, &i.VatAmountE9s, &i.TotalE9s, &i.Currency,
		&i.PDFBlob, &i.PDFGeneratedAtNs, &i.CreatedAtNs)
	if err != nil {
		return Invoice{}, err
	}
	return i, nil
}
