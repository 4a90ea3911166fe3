// Package domain defines full-state export and restore for the terminal.
package domain

import (
	"context"
	"errors"
	"time"

	menudomain "github.com/thirdpole/pos/internal/menu/domain"
	orderdomain "github.com/thirdpole/pos/internal/order/domain"
	settingsdomain "github.com/thirdpole/pos/internal/settings/domain"
	tabledomain "github.com/thirdpole/pos/internal/table/domain"
)

// Snapshot is everything needed to move an installation to another
// machine. The staff PIN hash is deliberately excluded.
type Snapshot struct {
	ExportedAt     time.Time                         `json:"exported_at"`
	Settings       *settingsdomain.Settings          `json:"settings,omitempty"`
	Tables         []tabledomain.Table               `json:"tables"`
	MenuItems      []menudomain.Item                 `json:"menu_items"`
	Categories     []menudomain.Category             `json:"categories"`
	OrderHistory   []orderdomain.FinalizedOrder      `json:"order_history"`
	ActiveSessions map[string][]orderdomain.CartLine `json:"active_sessions"`
}

type Service interface {
	Export(ctx context.Context) (Snapshot, error)
	// Restore replaces current state with the snapshot's contents.
	Restore(ctx context.Context, snapshot Snapshot) error
}

var ErrEmptySnapshot = errors.New("empty_snapshot")
