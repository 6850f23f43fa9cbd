package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-backend/internal/models"
)

func TestRenderReceipt(t *testing.T) {
	svc := NewReceiptService()

	pdf, err := svc.RenderReceipt(&models.PaymentRecord{
		ID:          12,
		OwnerID:     1,
		ChannelName: "Acme Media",
		ClientName:  "Ravi",
		AmountPaid:  600,
		AmountDue:   200,
		Method:      models.MethodUPI,
		PaidBy:      "owner@studio.test",
		PaymentDate: time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
