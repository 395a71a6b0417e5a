package invoice

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderPDFProducesDocument(t *testing.T) {
	d := Draft{
		From:          "Acme Corp (billing@acme.test)",
		To:            "Globex (payme@globex.test)",
		InvoiceNumber: "INV-042",
		IssuedDate:    "2026-08-01",
		DueDate:       "2026-09-01",
		Items: []LineItem{
			{Name: "Consulting", Description: "August retainer", Quantity: 10, UnitCost: 150},
			{Name: "Travel", Quantity: 1, UnitCost: 320.5},
		},
		PaymentDetails: "IBAN DE00 1234",
		Terms:          "Net 30",
		ShowTax:        true,
		TaxType:        AmountPercent,
		TaxPercent:     19,
	}

	b, err := RenderPDF(d)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(b, []byte("%PDF")), "output should start with the PDF magic")
	require.Greater(t, len(b), 1000)
}

func TestRenderPDFEmptyDraft(t *testing.T) {
	b, err := RenderPDF(Draft{})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}
