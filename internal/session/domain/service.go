// Package domain defines the table-scoped order session contract: the
// live cart bound to one table between selection and finalize or clear.
package domain

import (
	"context"
	"errors"

	orderdomain "github.com/thirdpole/pos/internal/order/domain"
	"github.com/thirdpole/pos/internal/pricing"
)

// CartView is the presentation snapshot of the working cart: the
// selected table, its ordered lines and the derived totals.
type CartView struct {
	TableID        string                 `json:"table_id,omitempty"`
	TableName      string                 `json:"table_name,omitempty"`
	Lines          []orderdomain.CartLine `json:"lines"`
	TaxRatePercent float64                `json:"tax_rate_percent"`
	Totals         pricing.Totals         `json:"totals"`
}

type Service interface {
	// SelectTable switches the active table. Pending state of the
	// previously active table is flushed first; the new table's pending
	// cart, if any, becomes the working cart.
	SelectTable(ctx context.Context, tableID string) (CartView, error)
	// AddItem puts one unit of a catalog item on the cart, incrementing
	// the quantity when the item already has a line.
	AddItem(ctx context.Context, itemID string) (CartView, error)
	// SetQuantity sets a line's quantity exactly. Quantities below one
	// remove the line.
	SetQuantity(ctx context.Context, itemID string, qty int) (CartView, error)
	// RemoveItem removes a line. Removing an absent line is a no-op.
	RemoveItem(ctx context.Context, itemID string) (CartView, error)
	// ClearTable detaches the current table without finalizing: its
	// pending cart is emptied, the table is freed and deselected.
	ClearTable(ctx context.Context) error
	// View returns the current cart without mutating anything.
	View(ctx context.Context) (CartView, error)
	// Finalize converts the session into an immutable history record,
	// clears the session and frees the table. When the history append
	// succeeds but clearing fails, the order is returned together with
	// ErrSessionNotCleared; the append is not rolled back or retried.
	Finalize(ctx context.Context) (*orderdomain.FinalizedOrder, error)
}

var (
	ErrNoTableSelected   = errors.New("no_table_selected")
	ErrEmptyCart         = errors.New("empty_cart")
	ErrItemUnavailable   = errors.New("item_unavailable")
	ErrSessionNotCleared = errors.New("session_not_cleared")
)
