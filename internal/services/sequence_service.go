package services

import (
	"context"
	"fmt"
	"time"

	"github.com/decent-cloud/backend/internal/apierr"
	"github.com/decent-cloud/backend/internal/client/typesetter"
	"github.com/decent-cloud/backend/internal/db"
	"github.com/google/uuid"
)

// SequenceService owns receipt/invoice numbering and invoice rendering
// (spec §4.I). Receipt numbers are a single global monotone counter;
// invoice numbers roll over per calendar year (spec §8 scenario 3:
// concurrent allocation never yields duplicates or gaps).
type SequenceService struct {
	queries    db.Querier
	typesetter *typesetter.Client
	sellerName, sellerAddress, sellerVatID string
	defaultVatRatePercent                  float64
}

func NewSequenceService(queries db.Querier, ts *typesetter.Client, sellerName, sellerAddress, sellerVatID string, defaultVatRatePercent float64) *SequenceService {
	return &SequenceService{
		queries:               queries,
		typesetter:            ts,
		sellerName:            sellerName,
		sellerAddress:         sellerAddress,
		sellerVatID:           sellerVatID,
		defaultVatRatePercent: defaultVatRatePercent,
	}
}

// CreateInvoiceForContract allocates the year-scoped invoice number,
// computes VAT at the configured rate, and renders+caches the PDF. Callers
// should invoke this once a contract has a receipt (card succeeded or
// crypto attached) so invoices always reference a paid contract.
func (s *SequenceService) CreateInvoiceForContract(ctx context.Context, contract db.Contract, buyerName, buyerAddress string, buyerVatID *string) (db.Invoice, error) {
	if existing, err := s.queries.GetInvoiceByContractID(ctx, contract.ContractID); err == nil {
		return existing, nil // idempotent: one invoice per contract
	}

	now := time.Now()
	year := int32(now.Year())
	seq, err := s.queries.AllocateInvoiceNumber(ctx, year)
	if err != nil {
		return db.Invoice{}, apierr.Wrap(apierr.Internal, "failed to allocate invoice number", err)
	}
	invoiceNumber := fmt.Sprintf("INV-%04d-%06d", year, seq)

	subtotal := contract.PaymentAmountE9s
	vatRate := s.defaultVatRatePercent
	if contract.TaxRatePercent != nil {
		vatRate = *contract.TaxRatePercent
	}
	vatAmount := int64(float64(subtotal) * vatRate / 100)
	total := subtotal + vatAmount

	invoice, err := s.queries.CreateInvoice(ctx, db.CreateInvoiceParams{
		ID:             uuid.New(),
		ContractID:     contract.ContractID,
		InvoiceNumber:  invoiceNumber,
		InvoiceDateNs:  now.UnixNano(),
		SellerName:     s.sellerName,
		SellerAddress:  s.sellerAddress,
		SellerVatID:    s.sellerVatID,
		BuyerName:      buyerName,
		BuyerAddress:   buyerAddress,
		BuyerVatID:     buyerVatID,
		SubtotalE9s:    subtotal,
		VatRatePercent: vatRate,
		VatAmountE9s:   vatAmount,
		TotalE9s:       total,
		Currency:       contract.Currency,
		CreatedAtNs:    now.UnixNano(),
	})
	if err != nil {
		return db.Invoice{}, apierr.Wrap(apierr.Internal, "failed to create invoice", err)
	}

	buyerVat := ""
	if buyerVatID != nil {
		buyerVat = *buyerVatID
	}
	pdfBytes, err := s.typesetter.RenderInvoicePDF(typesetter.InvoiceData{
		InvoiceNumber:  invoiceNumber,
		InvoiceDateNs:  invoice.InvoiceDateNs,
		SellerName:     s.sellerName,
		SellerAddress:  s.sellerAddress,
		SellerVatID:    s.sellerVatID,
		BuyerName:      buyerName,
		BuyerAddress:   buyerAddress,
		BuyerVatID:     buyerVat,
		Currency:       contract.Currency,
		SubtotalE9s:    subtotal,
		VatRatePercent: vatRate,
		VatAmountE9s:   vatAmount,
		TotalE9s:       total,
	})
	if err != nil {
		// The invoice row stands without a cached PDF; a later retry can
		// call SetInvoicePDF once rendering succeeds (spec §4.I: rendering
		// is a fallible async step, not part of the numbering guarantee).
		return invoice, apierr.Wrap(apierr.Internal, "failed to render invoice pdf", err)
	}
	if err := s.queries.SetInvoicePDF(ctx, invoice.ID, pdfBytes, time.Now().UnixNano()); err != nil {
		return invoice, apierr.Wrap(apierr.Internal, "failed to cache invoice pdf", err)
	}
	return invoice, nil
}

func (s *SequenceService) GetInvoice(ctx context.Context, contractID uuid.UUID) (db.Invoice, error) {
	invoice, err := s.queries.GetInvoiceByContractID(ctx, contractID)
	if err != nil {
		return db.Invoice{}, apierr.New(apierr.NotFound, "invoice not found")
	}
	return invoice, nil
}
