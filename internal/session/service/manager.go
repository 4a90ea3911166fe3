// Package service implements the session manager: the single writer for
// the active-sessions map and order history keys of the ledger store.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/thirdpole/pos/internal/clock"
	ledgerdomain "github.com/thirdpole/pos/internal/ledger/domain"
	menudomain "github.com/thirdpole/pos/internal/menu/domain"
	orderdomain "github.com/thirdpole/pos/internal/order/domain"
	"github.com/thirdpole/pos/internal/pricing"
	sessiondomain "github.com/thirdpole/pos/internal/session/domain"
	settingsdomain "github.com/thirdpole/pos/internal/settings/domain"
	tabledomain "github.com/thirdpole/pos/internal/table/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ManagerParam struct {
	fx.In

	Ledger   ledgerdomain.Store
	Tables   tabledomain.Service
	Menu     menudomain.Service
	Settings settingsdomain.Service
	Clock    clock.Clock
	GenID    *snowflake.Node
	Log      *zap.Logger
}

// Manager owns the in-memory working cart for the selected table and
// mediates every read and write of the active-sessions map and order
// history. A single mutex serializes operations: the in-memory cart is
// updated before the corresponding write-through, and writes are keyed
// by table id inside one map value, so a write for one table can never
// land after it has been superseded by a later operation.
type Manager struct {
	mu sync.Mutex

	ledger   ledgerdomain.Store
	tables   tabledomain.Service
	menu     menudomain.Service
	settings settingsdomain.Service
	clock    clock.Clock
	genID    *snowflake.Node
	log      *zap.Logger

	active *tabledomain.Table
	lines  []orderdomain.CartLine
}

func NewManager(p ManagerParam) sessiondomain.Service {
	return &Manager{
		ledger:   p.Ledger,
		tables:   p.Tables,
		menu:     p.Menu,
		settings: p.Settings,
		clock:    p.Clock,
		genID:    p.GenID,
		log:      p.Log.Named("session.manager"),
	}
}

func (m *Manager) SelectTable(ctx context.Context, tableID string) (sessiondomain.CartView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil && m.active.ID == tableID {
		return m.view(ctx), nil
	}

	table, err := m.tables.Get(ctx, tableID)
	if err != nil {
		return sessiondomain.CartView{}, err
	}

	// Flush the previous table before anything of the new one becomes
	// visible. Loading the new cart must not produce a write of its own.
	if m.active != nil {
		if err := m.persistCart(ctx, m.active.ID, m.lines); err != nil {
			return sessiondomain.CartView{}, err
		}
		if err := m.syncStatus(ctx, m.active.ID, len(m.lines) > 0); err != nil {
			return sessiondomain.CartView{}, err
		}
	}

	lines, err := m.loadCart(ctx, tableID)
	if err != nil {
		return sessiondomain.CartView{}, err
	}

	m.active = table
	m.lines = lines

	if err := m.syncStatus(ctx, tableID, true); err != nil {
		return sessiondomain.CartView{}, err
	}

	m.log.Info("table selected",
		zap.String("table_id", tableID),
		zap.Int("pending_lines", len(lines)),
	)
	return m.view(ctx), nil
}

func (m *Manager) AddItem(ctx context.Context, itemID string) (sessiondomain.CartView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return sessiondomain.CartView{}, sessiondomain.ErrNoTableSelected
	}

	item, err := m.menu.GetItem(ctx, itemID)
	if err != nil {
		return m.view(ctx), err
	}
	if !item.InStock {
		return m.view(ctx), sessiondomain.ErrItemUnavailable
	}

	found := false
	for i := range m.lines {
		if m.lines[i].ItemID == item.ID {
			m.lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		m.lines = append(m.lines, orderdomain.CartLine{
			ItemID:    item.ID,
			Name:      item.Name,
			UnitPrice: item.PriceAmount,
			Quantity:  1,
		})
	}

	return m.view(ctx), m.flush(ctx)
}

func (m *Manager) SetQuantity(ctx context.Context, itemID string, qty int) (sessiondomain.CartView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return sessiondomain.CartView{}, sessiondomain.ErrNoTableSelected
	}

	if qty < 1 {
		m.removeLine(itemID)
		return m.view(ctx), m.flush(ctx)
	}

	for i := range m.lines {
		if m.lines[i].ItemID == itemID {
			m.lines[i].Quantity = qty
			break
		}
	}
	return m.view(ctx), m.flush(ctx)
}

func (m *Manager) RemoveItem(ctx context.Context, itemID string) (sessiondomain.CartView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return sessiondomain.CartView{}, sessiondomain.ErrNoTableSelected
	}

	m.removeLine(itemID)
	return m.view(ctx), m.flush(ctx)
}

func (m *Manager) ClearTable(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return sessiondomain.ErrNoTableSelected
	}

	tableID := m.active.ID
	if err := m.persistCart(ctx, tableID, nil); err != nil {
		return err
	}
	if err := m.syncStatus(ctx, tableID, false); err != nil {
		return err
	}

	m.active = nil
	m.lines = nil

	m.log.Info("table cleared", zap.String("table_id", tableID))
	return nil
}

func (m *Manager) View(ctx context.Context) (sessiondomain.CartView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view(ctx), nil
}

func (m *Manager) Finalize(ctx context.Context) (*orderdomain.FinalizedOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return nil, sessiondomain.ErrNoTableSelected
	}
	if len(m.lines) == 0 {
		return nil, sessiondomain.ErrEmptyCart
	}

	settings, err := m.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	totals := pricing.ComputeTotals(m.lines, settings.TaxRatePercent)

	order := orderdomain.FinalizedOrder{
		ID:               m.genID.Generate().String(),
		Date:             m.clock.Now().UTC(),
		TableID:          m.active.ID,
		TableName:        m.active.Name,
		Lines:            append([]orderdomain.CartLine(nil), m.lines...),
		Subtotal:         totals.Subtotal,
		Tax:              totals.Tax,
		Total:            totals.Total,
		SettingsSnapshot: settings,
	}

	// Nothing is persisted before this append; a failure here leaves the
	// session untouched and the user can retry.
	if err := m.appendHistory(ctx, order); err != nil {
		return nil, err
	}

	// From here on the history entry exists. Failures are reported but
	// never roll it back: retrying would duplicate the order.
	tableID := m.active.ID
	clearErr := m.persistCart(ctx, tableID, nil)
	if clearErr == nil {
		clearErr = m.syncStatus(ctx, tableID, false)
	}

	m.active = nil
	m.lines = nil

	if clearErr != nil {
		m.log.Warn("order saved but session not cleared",
			zap.String("order_id", order.ID),
			zap.String("table_id", tableID),
			zap.Error(clearErr),
		)
		return &order, fmt.Errorf("%w: %v", sessiondomain.ErrSessionNotCleared, clearErr)
	}

	m.log.Info("order finalized",
		zap.String("order_id", order.ID),
		zap.String("table_id", tableID),
		zap.Int64("total", int64(order.Total)),
	)
	return &order, nil
}

// view builds the presentation snapshot from in-memory state. The tax
// rate is read best-effort; a failed settings read falls back to
// defaults rather than hiding the cart.
func (m *Manager) view(ctx context.Context) sessiondomain.CartView {
	settings, err := m.settings.Get(ctx)
	if err != nil {
		settings = settingsdomain.Defaults()
	}

	view := sessiondomain.CartView{
		Lines:          append([]orderdomain.CartLine(nil), m.lines...),
		TaxRatePercent: settings.TaxRatePercent,
		Totals:         pricing.ComputeTotals(m.lines, settings.TaxRatePercent),
	}
	if view.Lines == nil {
		view.Lines = []orderdomain.CartLine{}
	}
	if m.active != nil {
		view.TableID = m.active.ID
		view.TableName = m.active.Name
	}
	return view
}

func (m *Manager) removeLine(itemID string) {
	for i := range m.lines {
		if m.lines[i].ItemID == itemID {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
			return
		}
	}
}

// flush writes the active table's cart through to the ledger and
// re-derives its occupancy. The in-memory cart has already been updated
// and stays authoritative when the write fails.
func (m *Manager) flush(ctx context.Context) error {
	if err := m.persistCart(ctx, m.active.ID, m.lines); err != nil {
		return err
	}
	return m.syncStatus(ctx, m.active.ID, len(m.lines) > 0)
}

// loadCart reads one table's pending lines from the active-sessions map.
func (m *Manager) loadCart(ctx context.Context, tableID string) ([]orderdomain.CartLine, error) {
	sessions, err := m.readSessions(ctx)
	if err != nil {
		return nil, err
	}
	return sessions[tableID], nil
}

// persistCart rewrites one table's entry in the active-sessions map.
// Empty carts are removed rather than stored.
func (m *Manager) persistCart(ctx context.Context, tableID string, lines []orderdomain.CartLine) error {
	sessions, err := m.readSessions(ctx)
	if err != nil {
		return err
	}

	if len(lines) == 0 {
		delete(sessions, tableID)
	} else {
		sessions[tableID] = lines
	}
	return m.ledger.Set(ctx, ledgerdomain.KeyActiveSessions, sessions)
}

func (m *Manager) readSessions(ctx context.Context) (map[string][]orderdomain.CartLine, error) {
	sessions := map[string][]orderdomain.CartLine{}
	if _, err := m.ledger.Get(ctx, ledgerdomain.KeyActiveSessions, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// syncStatus projects occupancy from session content: a table is
// occupied while it is the selected table or has pending lines.
func (m *Manager) syncStatus(ctx context.Context, tableID string, occupied bool) error {
	status := tabledomain.StatusFree
	if occupied {
		status = tabledomain.StatusOccupied
	}
	return m.tables.SetStatus(ctx, tableID, status)
}

func (m *Manager) appendHistory(ctx context.Context, order orderdomain.FinalizedOrder) error {
	var history []orderdomain.FinalizedOrder
	if _, err := m.ledger.Get(ctx, ledgerdomain.KeyOrderHistory, &history); err != nil {
		return err
	}
	history = append(history, order)
	return m.ledger.Set(ctx, ledgerdomain.KeyOrderHistory, history)
}
