// Package calc implements the pure invoice computations: line totals, the
// aggregate tax entry and the financial summary. Nothing here touches the
// store; every function is deterministic over its inputs.
package calc

import (
	"math"

	"github.com/invoiceflow/invoiceflow/internal/invoice/domain"
)

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeLineItems normalizes raw line items into stored line items with a
// derived lineTotal. The input slice is never mutated.
func ComputeLineItems(items []domain.LineItemInput) ([]domain.LineItem, error) {
	out := make([]domain.LineItem, 0, len(items))
	for _, in := range items {
		if in.Quantity == nil {
			return nil, domain.ErrMissingQuantity
		}
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if in.UnitPrice == nil {
			return nil, domain.ErrMissingUnitPrice
		}
		if *in.UnitPrice < 0 {
			return nil, domain.ErrInvalidUnitPrice
		}

		rate := 0.0
		if in.TaxRate != nil {
			rate = *in.TaxRate
		}
		if rate < 0 || rate > 100 {
			return nil, domain.ErrInvalidTaxRate
		}

		out = append(out, domain.LineItem{
			ItemID:      in.ItemID,
			Description: in.Description,
			Quantity:    *in.Quantity,
			UnitPrice:   *in.UnitPrice,
			Unit:        in.Unit,
			TaxRate:     rate,
			IsTaxable:   in.IsTaxable,
			LineTotal:   Round2(*in.Quantity * *in.UnitPrice),
		})
	}
	return out, nil
}

// AggregateTax folds all taxable line items into one tax entry. The
// entry's rate is borrowed from the first line item in the sequence, not
// tracked per distinct rate; the amount still sums every taxable line at
// its own rate. When nothing is taxable the entry is kept with rate and
// amount zero so downstream consumers always see exactly one tax line.
func AggregateTax(items []domain.LineItem) domain.TaxEntry {
	entry := domain.TaxEntry{Type: "tax"}

	var amount float64
	taxable := false
	for _, item := range items {
		if !item.IsTaxable {
			continue
		}
		taxable = true
		amount += item.LineTotal * item.TaxRate / 100
	}
	if !taxable {
		return entry
	}

	entry.Rate = items[0].TaxRate
	entry.Amount = Round2(amount)
	return entry
}

// AssembleFinancials combines line totals, the tax entry, shipping and
// discounts into the financial summary. Discounts are stored as supplied
// but are not netted out of the grand total, matching the historical
// billing output consumers already reconcile against.
func AssembleFinancials(items []domain.LineItem, tax domain.TaxEntry, shipping float64, discounts []domain.Discount) (domain.Financials, error) {
	if shipping < 0 {
		return domain.Financials{}, domain.ErrInvalidShipping
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal
	}
	subtotal = Round2(subtotal)

	if discounts == nil {
		discounts = []domain.Discount{}
	}

	return domain.Financials{
		Subtotal:   subtotal,
		Taxes:      []domain.TaxEntry{tax},
		Discounts:  discounts,
		Shipping:   shipping,
		GrandTotal: Round2(subtotal + tax.Amount + shipping),
	}, nil
}
