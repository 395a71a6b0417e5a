package invoice

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF produces the preview PDF for a draft. The layout mirrors the
// live sidebar: header, parties, dates, line items, then the totals block
// with only the visible charges.
func RenderPDF(d Draft) ([]byte, error) {
	t := Compute(d)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice Preview", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(130, 10, "Invoice", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	num := d.InvoiceNumber
	if num == "" {
		num = "#"
	}
	pdf.CellFormat(60, 10, "Invoice # "+num, "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// Parties
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(95, 6, "From", "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "To", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	y := pdf.GetY()
	pdf.MultiCell(95, 5, d.From, "", "L", false)
	fromBottom := pdf.GetY()
	pdf.SetXY(105, y)
	pdf.MultiCell(95, 5, d.To, "", "L", false)
	if pdf.GetY() < fromBottom {
		pdf.SetY(fromBottom)
	}
	pdf.Ln(4)

	// Dates
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(95, 6, "Issued Date", "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Due Date", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 6, orDefault(d.IssuedDate, "Not set"), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, orDefault(d.DueDate, "Not set"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Items table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 7, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Unit Cost", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Amount", "B", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, it := range d.Items {
		pdf.CellFormat(90, 7, it.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, Money(it.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, Money(it.UnitCost), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, Money(it.Amount()), "", 1, "R", false, 0, "")
		if it.Description != "" {
			pdf.SetFont("Arial", "I", 8)
			pdf.CellFormat(190, 5, it.Description, "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 10)
		}
	}
	if len(d.Items) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(190, 7, "No items added", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
	}
	pdf.Ln(4)

	// Totals block
	totalLine(pdf, "Subtotal", Money(t.Subtotal), false)
	if d.ShowTax && d.TaxPercent > 0 {
		totalLine(pdf, "Tax", Money(t.Tax), false)
	}
	if d.ShowDiscount && d.DiscountPercent > 0 {
		totalLine(pdf, "Discount", "-"+Money(t.Discount), false)
	}
	if d.ShowShipping && d.ShippingAmount > 0 {
		totalLine(pdf, "Shipping", Money(t.Shipping), false)
	}
	totalLine(pdf, "Total", Money(t.Total), true)

	if d.PaymentDetails != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(190, 6, "Payment Details", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(190, 5, d.PaymentDetails, "", "L", false)
	}
	if d.Terms != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(190, 6, "Terms", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(190, 5, d.Terms, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func totalLine(pdf *gofpdf.Fpdf, label, value string, emphasize bool) {
	if emphasize {
		pdf.SetFont("Arial", "B", 12)
	} else {
		pdf.SetFont("Arial", "", 10)
	}
	pdf.CellFormat(150, 7, label, "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, value, "", 1, "R", false, 0, "")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
