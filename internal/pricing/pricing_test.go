package pricing

import (
	"testing"

	orderdomain "github.com/thirdpole/pos/internal/order/domain"
	"github.com/thirdpole/pos/pkg/money"
	"github.com/stretchr/testify/assert"
)

func line(id string, price float64, qty int) orderdomain.CartLine {
	return orderdomain.CartLine{ItemID: id, Name: id, UnitPrice: money.FromMajor(price), Quantity: qty}
}

func TestEmptyCartYieldsZeroTotals(t *testing.T) {
	totals := ComputeTotals(nil, 13)
	assert.Equal(t, money.Amount(0), totals.Subtotal)
	assert.Equal(t, money.Amount(0), totals.Tax)
	assert.Equal(t, money.Amount(0), totals.Total)
}

func TestTaxAtThirteenPercent(t *testing.T) {
	totals := ComputeTotals([]orderdomain.CartLine{line("momo", 250, 1)}, 13)
	assert.Equal(t, money.FromMajor(250), totals.Subtotal)
	assert.Equal(t, money.FromMajor(32.50), totals.Tax)
	assert.Equal(t, money.FromMajor(282.50), totals.Total)

	totals = ComputeTotals([]orderdomain.CartLine{line("momo", 250, 2)}, 13)
	assert.Equal(t, money.FromMajor(500), totals.Subtotal)
	assert.Equal(t, money.FromMajor(65), totals.Tax)
	assert.Equal(t, money.FromMajor(565), totals.Total)
}

func TestOrderInvariantUnderReordering(t *testing.T) {
	a := []orderdomain.CartLine{line("a", 250, 1), line("b", 99.99, 3), line("c", 50, 2)}
	b := []orderdomain.CartLine{a[2], a[0], a[1]}

	assert.Equal(t, ComputeTotals(a, 13), ComputeTotals(b, 13))
}

func TestZeroRate(t *testing.T) {
	totals := ComputeTotals([]orderdomain.CartLine{line("chai", 50, 4)}, 0)
	assert.Equal(t, money.FromMajor(200), totals.Subtotal)
	assert.Equal(t, money.Amount(0), totals.Tax)
	assert.Equal(t, totals.Subtotal, totals.Total)
}

func TestNoDriftAcrossRepeatedCycles(t *testing.T) {
	// 0.10 cannot be represented in binary floating point; after many
	// add/remove cycles the fixed-point subtotal must still be exact.
	lines := []orderdomain.CartLine{line("x", 0.10, 1)}
	for i := 0; i < 999; i++ {
		lines[0].Quantity++
	}
	totals := ComputeTotals(lines, 13)
	assert.Equal(t, money.FromMajor(100), totals.Subtotal)
	assert.Equal(t, money.FromMajor(13), totals.Tax)
}

// The service charge configured in settings is not part of the total.
// This locks in the current behavior so a future change is deliberate.
func TestServiceChargeNotApplied(t *testing.T) {
	totals := ComputeTotals([]orderdomain.CartLine{line("momo", 100, 1)}, 13)
	assert.Equal(t, money.FromMajor(113), totals.Total)
}
