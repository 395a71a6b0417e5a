package invoice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubtotalSumsLineItems(t *testing.T) {
	items := []LineItem{
		{Name: "Design", Quantity: 2, UnitCost: 10},
		{Name: "Hosting", Quantity: 1, UnitCost: 5},
	}
	require.Equal(t, 25.0, Subtotal(items))
}

func TestSubtotalMissingValuesContributeNothing(t *testing.T) {
	items := []LineItem{
		{Name: "No quantity", UnitCost: 99},
		{Name: "No cost", Quantity: 3},
		{Name: "Real", Quantity: 2, UnitCost: 4},
	}
	require.Equal(t, 8.0, Subtotal(items))
}

func TestComputePercentTax(t *testing.T) {
	d := Draft{
		Items: []LineItem{
			{Quantity: 2, UnitCost: 10},
			{Quantity: 1, UnitCost: 5},
		},
		ShowTax:    true,
		TaxType:    AmountPercent,
		TaxPercent: 10,
	}
	got := Compute(d)
	require.Equal(t, 25.0, got.Subtotal)
	require.Equal(t, 2.5, got.Tax)
	require.Equal(t, 27.5, got.Total)
}

func TestComputeFixedDiscount(t *testing.T) {
	d := Draft{
		Items:           []LineItem{{Quantity: 2, UnitCost: 10}, {Quantity: 1, UnitCost: 5}},
		ShowDiscount:    true,
		DiscountType:    AmountFixed,
		DiscountPercent: 3,
	}
	got := Compute(d)
	require.Equal(t, 3.0, got.Discount)
	require.Equal(t, 22.0, got.Total)
}

func TestComputeFlagsGateEveryCharge(t *testing.T) {
	d := Draft{
		Items:           []LineItem{{Quantity: 1, UnitCost: 100}},
		TaxPercent:      50,
		DiscountPercent: 50,
		ShippingAmount:  9,
		TaxType:         AmountPercent,
		DiscountType:    AmountPercent,
		// all Show* flags off
	}
	got := Compute(d)
	require.Zero(t, got.Tax)
	require.Zero(t, got.Discount)
	require.Zero(t, got.Shipping)
	require.Equal(t, got.Subtotal, got.Total)
}

func TestComputeUnknownTypeTreatedAsFixed(t *testing.T) {
	d := Draft{
		Items:      []LineItem{{Quantity: 1, UnitCost: 100}},
		ShowTax:    true,
		TaxType:    AmountType("weird"),
		TaxPercent: 7,
	}
	require.Equal(t, 7.0, Compute(d).Tax)
}

func TestComputeAllCharges(t *testing.T) {
	d := Draft{
		Items:           []LineItem{{Quantity: 4, UnitCost: 25}},
		ShowTax:         true,
		TaxType:         AmountPercent,
		TaxPercent:      10,
		ShowDiscount:    true,
		DiscountType:    AmountFixed,
		DiscountPercent: 15,
		ShowShipping:    true,
		ShippingAmount:  5,
	}
	got := Compute(d)
	require.Equal(t, 100.0, got.Subtotal)
	require.Equal(t, 10.0, got.Tax)
	require.Equal(t, 15.0, got.Discount)
	require.Equal(t, 5.0, got.Shipping)
	require.Equal(t, 100.0, got.Total)
}

// The total is always the exact sum of its parts; rounding is deferred to
// display.
func TestComputeTotalIdentity(t *testing.T) {
	drafts := []Draft{
		{Items: []LineItem{{Quantity: 3, UnitCost: 0.1}}, ShowTax: true, TaxType: AmountPercent, TaxPercent: 8.25},
		{Items: []LineItem{{Quantity: 7, UnitCost: 1.11}}, ShowDiscount: true, DiscountType: AmountPercent, DiscountPercent: 33.3},
		{Items: nil, ShowShipping: true, ShippingAmount: 12.5},
	}
	for _, d := range drafts {
		got := Compute(d)
		require.Equal(t, got.Subtotal+got.Tax-got.Discount+got.Shipping, got.Total)
	}
}

func TestMoneyRoundsAtRenderTime(t *testing.T) {
	require.Equal(t, "2.50", Money(2.5))
	require.Equal(t, "0.00", Money(0))
	require.Equal(t, "1234.57", Money(1234.567))
	require.Equal(t, "-3.00", Money(-3))
}
