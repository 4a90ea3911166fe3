// Package money provides fixed-point monetary amounts in minor units.
package money

import (
	"fmt"
	"math"
)

// Amount is a monetary value in paisa (hundredths of a rupee). All
// arithmetic stays in integer minor units; rounding happens only when a
// percentage is applied or a major-unit value crosses the boundary.
type Amount int64

// FromMajor converts a major-unit value (e.g. 250.00) to an Amount,
// rounding half away from zero to the nearest paisa.
func FromMajor(v float64) Amount {
	return Amount(math.Round(v * 100))
}

// MulQty multiplies the amount by a line quantity.
func (a Amount) MulQty(qty int) Amount {
	return a * Amount(qty)
}

// Percent returns rate% of the amount, rounded half away from zero.
func (a Amount) Percent(rate float64) Amount {
	return Amount(math.Round(float64(a) * rate / 100))
}

// Major returns the amount in major units.
func (a Amount) Major() float64 {
	return float64(a) / 100
}

// String renders the amount with the currency prefix used on receipts.
func (a Amount) String() string {
	sign := ""
	v := a
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%sRs. %d.%02d", sign, v/100, v%100)
}
