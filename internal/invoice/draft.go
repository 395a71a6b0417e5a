// Package invoice derives the live preview of an invoice draft: subtotal,
// tax, discount, shipping and total, plus the rendered PDF. The draft is
// owned by the composing screen; this package only reads it.
package invoice

// LineItem is one row of the draft. A missing quantity or unit cost is
// simply zero; the row then contributes nothing to the subtotal. (The
// original UI displayed missing quantities as 1 while summing them as 0;
// we deliberately use 0 everywhere.)
type LineItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitCost    float64 `json:"unit_cost"`
}

// Amount is the row total.
func (it LineItem) Amount() float64 {
	return it.Quantity * it.UnitCost
}

// AmountType selects how a charge is applied: a percentage of the subtotal
// or a fixed amount. Anything other than "percent" is treated as fixed.
type AmountType string

const (
	AmountPercent AmountType = "percent"
	AmountFixed   AmountType = "fixed"
)

// Draft is the in-progress invoice as the composing screen shapes it.
// Tax and discount reuse the same field for percentage and fixed value,
// disambiguated by their type, matching the upstream form's wire shape.
type Draft struct {
	From           string     `json:"from"`
	To             string     `json:"to"`
	InvoiceNumber  string     `json:"invoiceNumber"`
	IssuedDate     string     `json:"issuedDate"`
	DueDate        string     `json:"dueDate"`
	Items          []LineItem `json:"items"`
	PaymentDetails string     `json:"paymentDetails"`
	Terms          string     `json:"terms"`
	TaxPercent     float64    `json:"taxPercent"`
	DiscountPercent float64   `json:"discountPercent"`
	ShippingAmount float64    `json:"shippingAmount"`
	ShowTax        bool       `json:"showTax"`
	ShowDiscount   bool       `json:"showDiscount"`
	ShowShipping   bool       `json:"showShipping"`
	TaxType        AmountType `json:"taxType"`
	DiscountType   AmountType `json:"discountType"`
	LogoURL        string     `json:"logoUrl,omitempty"`
}
