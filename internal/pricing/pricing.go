// Package pricing computes order totals. It is pure: no clock, no
// store, no configuration beyond the tax rate passed in.
//
// The persisted service charge percentage is deliberately not applied
// here; totals are subtotal plus tax only. Changing that is a visible
// behavioral decision, not a refactor.
package pricing

import (
	orderdomain "github.com/thirdpole/pos/internal/order/domain"
	"github.com/thirdpole/pos/pkg/money"
)

type Totals struct {
	Subtotal money.Amount `json:"subtotal"`
	Tax      money.Amount `json:"tax"`
	Total    money.Amount `json:"total"`
}

// ComputeTotals sums the cart lines and applies the tax rate. The
// subtotal accumulates exactly in minor units; rounding happens once,
// when the percentage is applied.
func ComputeTotals(lines []orderdomain.CartLine, taxRatePercent float64) Totals {
	var subtotal money.Amount
	for _, line := range lines {
		subtotal += line.UnitPrice.MulQty(line.Quantity)
	}

	tax := subtotal.Percent(taxRatePercent)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}
