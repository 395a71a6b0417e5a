package invoice

import "strconv"

// Totals are the derived charges of a draft. All values are unrounded;
// rounding happens only at render time via Money.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Subtotal sums quantity×unit_cost over all line items.
func Subtotal(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Amount()
	}
	return sum
}

// Compute derives every charge from the draft. Each charge is zero when
// its visibility flag is off, regardless of the configured value;
// percent-typed charges scale with the subtotal while fixed ones do not.
func Compute(d Draft) Totals {
	t := Totals{Subtotal: Subtotal(d.Items)}

	if d.ShowTax {
		if d.TaxType == AmountPercent {
			t.Tax = t.Subtotal * d.TaxPercent / 100
		} else {
			t.Tax = d.TaxPercent
		}
	}
	if d.ShowDiscount {
		if d.DiscountType == AmountPercent {
			t.Discount = t.Subtotal * d.DiscountPercent / 100
		} else {
			t.Discount = d.DiscountPercent
		}
	}
	if d.ShowShipping {
		t.Shipping = d.ShippingAmount
	}

	t.Total = t.Subtotal + t.Tax - t.Discount + t.Shipping
	return t
}

// Money formats a monetary value to exactly two decimal places. Currency
// symbols are a display concern owned by the currency selector, not here.
func Money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
