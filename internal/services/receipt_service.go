package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"

	"studio-backend/internal/models"
	"studio-backend/internal/timeutil"
)

// ReceiptService renders a payment record as a printable PDF receipt.
type ReceiptService struct{}

func NewReceiptService() *ReceiptService {
	return &ReceiptService{}
}

// RenderReceipt produces an A5 receipt for one ledger record.
func (s *ReceiptService) RenderReceipt(rec *models.PaymentRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(128, 10, "Payment Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(128, 6, fmt.Sprintf("Generated: %s", timeutil.FormatIST(timeutil.Now(), timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Payment details box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(128, 8, fmt.Sprintf("Receipt #%d", rec.ID), "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	row := func(label, value string) {
		pdf.CellFormat(45, 7, label, "LB", 0, "L", false, 0, "")
		pdf.CellFormat(83, 7, value, "RB", 1, "L", false, 0, "")
	}

	row("Channel", rec.ChannelName)
	row("Client", rec.ClientName)
	row("Amount Paid", fmt.Sprintf("Rs. %.2f", rec.AmountPaid))
	row("Remaining Due", fmt.Sprintf("Rs. %.2f", rec.AmountDue))
	row("Method", strings.ToUpper(rec.Method))
	row("Paid By", rec.PaidBy)
	row("Date", timeutil.FormatIST(rec.PaymentDate, timeutil.DisplayLayout))
	pdf.Ln(6)

	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(128, 5, "This receipt reflects the channel's total remaining due at the time of payment.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
