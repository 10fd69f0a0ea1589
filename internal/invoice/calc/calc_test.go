package calc

import (
	"testing"

	"github.com/invoiceflow/invoiceflow/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestComputeLineItemsDerivesTotals(t *testing.T) {
	items, err := ComputeLineItems([]domain.LineItemInput{
		{Description: "design work", Quantity: f(2), UnitPrice: f(50), TaxRate: f(10), IsTaxable: true},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, 100.0, items[0].LineTotal)
	assert.Equal(t, 10.0, items[0].TaxRate)
	assert.True(t, items[0].IsTaxable)
}

func TestComputeLineItemsZeroQuantity(t *testing.T) {
	items, err := ComputeLineItems([]domain.LineItemInput{
		{Quantity: f(0), UnitPrice: f(50)},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, items[0].LineTotal)
}

func TestComputeLineItemsFractionalRounding(t *testing.T) {
	items, err := ComputeLineItems([]domain.LineItemInput{
		{Quantity: f(0.333), UnitPrice: f(9.99)},
	})
	require.NoError(t, err)
	assert.Equal(t, 3.33, items[0].LineTotal)
}

func TestComputeLineItemsValidation(t *testing.T) {
	cases := []struct {
		name string
		in   domain.LineItemInput
		want error
	}{
		{"missing quantity", domain.LineItemInput{UnitPrice: f(10)}, domain.ErrMissingQuantity},
		{"negative quantity", domain.LineItemInput{Quantity: f(-1), UnitPrice: f(10)}, domain.ErrInvalidQuantity},
		{"missing unit price", domain.LineItemInput{Quantity: f(1)}, domain.ErrMissingUnitPrice},
		{"negative unit price", domain.LineItemInput{Quantity: f(1), UnitPrice: f(-5)}, domain.ErrInvalidUnitPrice},
		{"negative tax rate", domain.LineItemInput{Quantity: f(1), UnitPrice: f(5), TaxRate: f(-1)}, domain.ErrInvalidTaxRate},
		{"tax rate over 100", domain.LineItemInput{Quantity: f(1), UnitPrice: f(5), TaxRate: f(101)}, domain.ErrInvalidTaxRate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeLineItems([]domain.LineItemInput{tc.in})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestComputeLineItemsDoesNotMutateInput(t *testing.T) {
	in := []domain.LineItemInput{
		{Quantity: f(2), UnitPrice: f(50)},
	}
	_, err := ComputeLineItems(in)
	require.NoError(t, err)

	assert.Equal(t, 2.0, *in[0].Quantity)
	assert.Equal(t, 50.0, *in[0].UnitPrice)
}

func TestAggregateTaxSumsTaxableLines(t *testing.T) {
	items, err := ComputeLineItems([]domain.LineItemInput{
		{Quantity: f(2), UnitPrice: f(50), TaxRate: f(10), IsTaxable: true},
	})
	require.NoError(t, err)

	tax := AggregateTax(items)
	assert.Equal(t, "tax", tax.Type)
	assert.Equal(t, 10.0, tax.Rate)
	assert.Equal(t, 10.0, tax.Amount)
}

func TestAggregateTaxSkipsNonTaxable(t *testing.T) {
	items, err := ComputeLineItems([]domain.LineItemInput{
		{Quantity: f(1), UnitPrice: f(30), IsTaxable: false},
		{Quantity: f(3), UnitPrice: f(20), TaxRate: f(5), IsTaxable: true},
	})
	require.NoError(t, err)

	tax := AggregateTax(items)
	// The entry rate comes from the first line item of the sequence even
	// when that item is not the taxable one.
	assert.Equal(t, 0.0, tax.Rate)
	assert.Equal(t, 3.0, tax.Amount)
}

func TestAggregateTaxNothingTaxable(t *testing.T) {
	items, err := ComputeLineItems([]domain.LineItemInput{
		{Quantity: f(1), UnitPrice: f(30), TaxRate: f(10), IsTaxable: false},
	})
	require.NoError(t, err)

	tax := AggregateTax(items)
	assert.Equal(t, "tax", tax.Type)
	assert.Equal(t, 0.0, tax.Rate)
	assert.Equal(t, 0.0, tax.Amount)
}

func TestAggregateTaxEmpty(t *testing.T) {
	tax := AggregateTax(nil)
	assert.Equal(t, domain.TaxEntry{Type: "tax"}, tax)
}

func TestAssembleFinancials(t *testing.T) {
	items, err := ComputeLineItems([]domain.LineItemInput{
		{Quantity: f(1), UnitPrice: f(30), IsTaxable: false},
		{Quantity: f(3), UnitPrice: f(20), TaxRate: f(5), IsTaxable: true},
	})
	require.NoError(t, err)
	tax := AggregateTax(items)

	fin, err := AssembleFinancials(items, tax, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, 90.0, fin.Subtotal)
	assert.Equal(t, 93.0, fin.GrandTotal)
	require.Len(t, fin.Taxes, 1)
	assert.Equal(t, 3.0, fin.Taxes[0].Amount)
	assert.NotNil(t, fin.Discounts)
	assert.Empty(t, fin.Discounts)
}

func TestAssembleFinancialsShipping(t *testing.T) {
	items, err := ComputeLineItems([]domain.LineItemInput{
		{Quantity: f(2), UnitPrice: f(50), TaxRate: f(10), IsTaxable: true},
	})
	require.NoError(t, err)
	tax := AggregateTax(items)

	fin, err := AssembleFinancials(items, tax, 12.5, nil)
	require.NoError(t, err)
	assert.Equal(t, 122.5, fin.GrandTotal)
}

func TestAssembleFinancialsNegativeShipping(t *testing.T) {
	_, err := AssembleFinancials(nil, domain.TaxEntry{Type: "tax"}, -1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidShipping)
}

func TestAssembleFinancialsDiscountsNotNetted(t *testing.T) {
	items, err := ComputeLineItems([]domain.LineItemInput{
		{Quantity: f(2), UnitPrice: f(50)},
	})
	require.NoError(t, err)

	fin, err := AssembleFinancials(items, AggregateTax(items), 0, []domain.Discount{
		{Description: "loyalty", Amount: 15},
	})
	require.NoError(t, err)

	// Discounts ride along on the invoice but do not reduce the total.
	assert.Equal(t, 100.0, fin.GrandTotal)
	require.Len(t, fin.Discounts, 1)
	assert.Equal(t, 15.0, fin.Discounts[0].Amount)
}

func TestAssembleFinancialsEmptyItems(t *testing.T) {
	fin, err := AssembleFinancials(nil, domain.TaxEntry{Type: "tax"}, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, fin.Subtotal)
	assert.Equal(t, 0.0, fin.GrandTotal)
	require.Len(t, fin.Taxes, 1)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.3, Round2(0.1+0.2))
	assert.Equal(t, 3.33, Round2(3.326))
	assert.Equal(t, -3.33, Round2(-3.326))
}
