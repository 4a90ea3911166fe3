// Package domain contains the finalized order history types shared by
// checkout and the read side.
package domain

import (
	"context"
	"errors"
	"time"

	settingsdomain "github.com/thirdpole/pos/internal/settings/domain"
	"github.com/thirdpole/pos/pkg/money"
)

// CartLine is one item on a working cart or finalized order. Quantity is
// never below one; a mutation that would reduce it further removes the
// line instead.
type CartLine struct {
	ItemID    string       `json:"item_id"`
	Name      string       `json:"name"`
	UnitPrice money.Amount `json:"unit_price"`
	Quantity  int          `json:"quantity"`
}

// FinalizedOrder is the immutable history record produced by checkout.
// SettingsSnapshot captures the pricing configuration in effect at
// finalize time so historical totals stay reproducible.
type FinalizedOrder struct {
	ID               string                  `json:"id"`
	Date             time.Time               `json:"date"`
	TableID          string                  `json:"table_id,omitempty"`
	TableName        string                  `json:"table_name,omitempty"`
	Lines            []CartLine              `json:"lines"`
	Subtotal         money.Amount            `json:"subtotal"`
	Tax              money.Amount            `json:"tax"`
	Total            money.Amount            `json:"total"`
	SettingsSnapshot settingsdomain.Settings `json:"settings_snapshot"`
}

type Service interface {
	// List returns order history, newest first.
	List(ctx context.Context) ([]FinalizedOrder, error)
	Get(ctx context.Context, id string) (*FinalizedOrder, error)
}

var ErrNotFound = errors.New("order_not_found")
