package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/thirdpole/pos/internal/clock"
	ledgerdomain "github.com/thirdpole/pos/internal/ledger/domain"
	ledgerstore "github.com/thirdpole/pos/internal/ledger/store"
	menudomain "github.com/thirdpole/pos/internal/menu/domain"
	menuservice "github.com/thirdpole/pos/internal/menu/service"
	orderdomain "github.com/thirdpole/pos/internal/order/domain"
	sessiondomain "github.com/thirdpole/pos/internal/session/domain"
	settingsdomain "github.com/thirdpole/pos/internal/settings/domain"
	settingsservice "github.com/thirdpole/pos/internal/settings/service"
	tabledomain "github.com/thirdpole/pos/internal/table/domain"
	tableservice "github.com/thirdpole/pos/internal/table/service"
	"github.com/thirdpole/pos/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// flakyStore wraps the real ledger store and can be told to fail writes
// of a single key, so tests can exercise the write-through failure
// contracts against the real manager.
type flakyStore struct {
	inner   ledgerdomain.Store
	failKey string
}

func (s *flakyStore) failSet(key string) { s.failKey = key }
func (s *flakyStore) recover()           { s.failKey = "" }

func (s *flakyStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	return s.inner.Get(ctx, key, dest)
}

func (s *flakyStore) Set(ctx context.Context, key string, value any) error {
	if key == s.failKey {
		return fmt.Errorf("%w: set %s: disk full", ledgerdomain.ErrPersistenceUnavailable, key)
	}
	return s.inner.Set(ctx, key, value)
}

func (s *flakyStore) Delete(ctx context.Context, key string) error {
	if key == s.failKey {
		return fmt.Errorf("%w: delete %s: disk full", ledgerdomain.ErrPersistenceUnavailable, key)
	}
	return s.inner.Delete(ctx, key)
}

type env struct {
	mgr      sessiondomain.Service
	tables   tabledomain.Service
	menu     menudomain.Service
	settings settingsdomain.Service
	ledger   ledgerdomain.Store
	flaky    *flakyStore
	clk      *clock.FakeClock

	t1, t2 *tabledomain.Table
	momo   *menudomain.Item
	chai   *menudomain.Item
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&ledgerdomain.Entry{},
		&tabledomain.Table{},
		&menudomain.Item{},
		&menudomain.Category{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	ledger := ledgerstore.NewStore(ledgerstore.StoreParam{DB: db, Log: log})
	tables := tableservice.NewService(tableservice.ServiceParam{DB: db, Log: log, GenID: node})
	menu := menuservice.NewService(menuservice.ServiceParam{DB: db, Log: log, GenID: node})
	settings := settingsservice.NewService(settingsservice.ServiceParam{Ledger: ledger, Log: log})
	clk := clock.NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	flaky := &flakyStore{inner: ledger}

	e := &env{
		mgr: NewManager(ManagerParam{
			Ledger:   flaky,
			Tables:   tables,
			Menu:     menu,
			Settings: settings,
			Clock:    clk,
			GenID:    node,
			Log:      log,
		}),
		tables:   tables,
		menu:     menu,
		settings: settings,
		ledger:   ledger,
		flaky:    flaky,
		clk:      clk,
	}

	e.t1, err = tables.Create(ctx, tabledomain.CreateTableRequest{Name: "Table 1", Seats: 4})
	require.NoError(t, err)
	e.t2, err = tables.Create(ctx, tabledomain.CreateTableRequest{Name: "Table 2", Seats: 2})
	require.NoError(t, err)

	cat, err := menu.CreateCategory(ctx, "Starters")
	require.NoError(t, err)
	e.momo, err = menu.CreateItem(ctx, menudomain.UpsertItemRequest{
		Name:        "Himalayan Momos",
		PriceAmount: money.FromMajor(250),
		Category:    cat.ID,
		InStock:     true,
	})
	require.NoError(t, err)
	e.chai, err = menu.CreateItem(ctx, menudomain.UpsertItemRequest{
		Name:        "Masala Chai",
		PriceAmount: money.FromMajor(50),
		Category:    cat.ID,
		InStock:     true,
	})
	require.NoError(t, err)

	return e
}

func (e *env) sessions(t *testing.T) map[string][]orderdomain.CartLine {
	t.Helper()
	out := map[string][]orderdomain.CartLine{}
	_, err := e.ledger.Get(context.Background(), ledgerdomain.KeyActiveSessions, &out)
	require.NoError(t, err)
	return out
}

func (e *env) history(t *testing.T) []orderdomain.FinalizedOrder {
	t.Helper()
	var out []orderdomain.FinalizedOrder
	_, err := e.ledger.Get(context.Background(), ledgerdomain.KeyOrderHistory, &out)
	require.NoError(t, err)
	return out
}

func (e *env) status(t *testing.T, id string) tabledomain.TableStatus {
	t.Helper()
	table, err := e.tables.Get(context.Background(), id)
	require.NoError(t, err)
	return table.Status
}

func TestMutationWithoutTableRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.mgr.AddItem(ctx, e.momo.ID)
	assert.ErrorIs(t, err, sessiondomain.ErrNoTableSelected)

	_, err = e.mgr.SetQuantity(ctx, e.momo.ID, 2)
	assert.ErrorIs(t, err, sessiondomain.ErrNoTableSelected)

	_, err = e.mgr.RemoveItem(ctx, e.momo.ID)
	assert.ErrorIs(t, err, sessiondomain.ErrNoTableSelected)

	assert.ErrorIs(t, e.mgr.ClearTable(ctx), sessiondomain.ErrNoTableSelected)
}

func TestSelectTableOccupiesWithoutSpuriousWrite(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	view, err := e.mgr.SelectTable(ctx, e.t1.ID)
	require.NoError(t, err)
	assert.Equal(t, e.t1.ID, view.TableID)
	assert.Empty(t, view.Lines)

	assert.Equal(t, tabledomain.StatusOccupied, e.status(t, e.t1.ID))
	// Loading an (empty) cart writes nothing to the sessions map.
	assert.NotContains(t, e.sessions(t), e.t1.ID)
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.mgr.SelectTable(ctx, e.t1.ID)
	require.NoError(t, err)

	view, err := e.mgr.AddItem(ctx, e.momo.ID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 1, view.Lines[0].Quantity)

	view, err = e.mgr.AddItem(ctx, e.momo.ID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Quantity)

	view, err = e.mgr.AddItem(ctx, e.chai.ID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)

	// No two lines ever share an item id.
	seen := map[string]bool{}
	for _, line := range view.Lines {
		assert.False(t, seen[line.ItemID])
		seen[line.ItemID] = true
		assert.GreaterOrEqual(t, line.Quantity, 1)
	}

	// The mutation was written through.
	assert.Len(t, e.sessions(t)[e.t1.ID], 2)
}

func TestSetQuantityBelowOneRemovesLine(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.mgr.SelectTable(ctx, e.t1.ID)
	require.NoError(t, err)
	_, err = e.mgr.AddItem(ctx, e.momo.ID)
	require.NoError(t, err)

	view, err := e.mgr.SetQuantity(ctx, e.momo.ID, 5)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 5, view.Lines[0].Quantity)

	view, err = e.mgr.SetQuantity(ctx, e.momo.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)

	// Emptying the cart frees the map entry.
	assert.NotContains(t, e.sessions(t), e.t1.ID)
}

func TestRemoveAbsentLineIsNoop(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.mgr.SelectTable(ctx, e.t1.ID)
	require.NoError(t, err)
	_, err = e.mgr.AddItem(ctx, e.momo.ID)
	require.NoError(t, err)

	view, err := e.mgr.RemoveItem(ctx, "no-such-line")
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)
}

func TestAddOutOfStockItemRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.menu.UpdateItem(ctx, e.chai.ID, menudomain.UpsertItemRequest{
		Name:        e.chai.Name,
		PriceAmount: e.chai.PriceAmount,
		Category:    e.chai.Category,
		InStock:     false,
	})
	require.NoError(t, err)

	_, err = e.mgr.SelectTable(ctx, e.t1.ID)
	require.NoError(t, err)

	view, err := e.mgr.AddItem(ctx, e.chai.ID)
	assert.ErrorIs(t, err, sessiondomain.ErrItemUnavailable)
	assert.Empty(t, view.Lines)
}

func TestTableSwitchRestoresExactCart(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.mgr.SelectTable(ctx, e.t1.ID)
	require.NoError(t, err)
	_, err = e.mgr.AddItem(ctx, e.momo.ID)
	require.NoError(t, err)
	_, err = e.mgr.AddItem(ctx, e.momo.ID)
	require.NoError(t, err)

	// Switch to table 2 without clearing: table 1 keeps its pending
	// cart and stays occupied.
	view, err := e.mgr.SelectTable(ctx, e.t2.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Equal(t, tabledomain.StatusOccupied, e.status(t, e.t1.ID))
	require.Len(t, e.sessions(t)[e.t1.ID], 1)

	_, err = e.mgr.AddItem(ctx, e.chai.ID)
	require.NoError(t, err)

	// Back to table 1: exactly its cart, never table 2's.
	view, err = e.mgr.SelectTable(ctx, e.t1.ID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, e.momo.ID, view.Lines[0].ItemID)
	assert.Equal(t, 2, view.Lines[0].Quantity)

	// Table 2's pending cart survived the switch away.
	require.Len(t, e.sessions(t)[e.t2.ID], 1)
	assert.Equal(t, e.chai.ID, e.sessions(t)[e.t2.ID][0].ItemID)
}

func TestSwitchAwayFromEmptyTableFreesIt(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.mgr.SelectTable(ctx, e.t1.ID)
	require.NoError(t, err)
	assert.Equal(t, tabledomain.StatusOccupied, e.status(t, e.t1.ID))

	_, err = e.mgr.SelectTable(ctx, e.t2.ID)
	require.NoError(t, err)
	assert.Equal(t, tabledomain.StatusFree, e.status(t, e.t1.ID))
	assert.Equal(t, tabledomain.StatusOccupied, e.status(t, e.t2.ID))
}

func TestClearTableFreesAndDeselects(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.mgr.SelectTable(ctx, e.t1.ID)
	require.NoError(t, err)
	_, err = e.mgr.AddItem(ctx, e.momo.ID)
	require.NoError(t, err)

	require.NoError(t, e.mgr.ClearTable(ctx))

	assert.Equal(t, tabledomain.StatusFree, e.status(t, e.t1.ID))
	assert.NotContains(t, e.sessions(t), e.t1.ID)

	view, err := e.mgr.View(ctx)
	require.NoError(t, err)
	assert.Empty(t, view.TableID)
	assert.Empty(t, view.Lines)
}

func TestFinalizeScenario(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.mgr.SelectTable(ctx, e.t1.ID)
	require.NoError(t, err)

	view, err := e.mgr.AddItem(ctx, e.momo.ID)
	require.NoError(t, err)
	assert.Equal(t, money.FromMajor(250), view.Totals.Subtotal)
	assert.Equal(t, money.FromMajor(32.50), view.Totals.Tax)
	assert.Equal(t, money.FromMajor(282.50), view.Totals.Total)

	view, err = e.mgr.AddItem(ctx, e.momo.ID)
	require.NoError(t, err)
	assert.Equal(t, money.FromMajor(500), view.Totals.Subtotal)
	assert.Equal(t, money.FromMajor(65), view.Totals.Tax)
	assert.Equal(t, money.FromMajor(565), view.Totals.Total)

	order, err := e.mgr.Finalize(ctx)
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, money.FromMajor(565), order.Total)
	assert.Equal(t, e.t1.ID, order.TableID)
	assert.Equal(t, "Table 1", order.TableName)
	assert.Equal(t, e.clk.Now(), order.Date)
	assert.Equal(t, float64(13), order.SettingsSnapshot.TaxRatePercent)

	history := e.history(t)
	require.Len(t, history, 1)
	assert.Equal(t, order.ID, history[0].ID)

	assert.Equal(t, tabledomain.StatusFree, e.status(t, e.t1.ID))
	assert.NotContains(t, e.sessions(t), e.t1.ID)

	view, err = e.mgr.View(ctx)
	require.NoError(t, err)
	assert.Empty(t, view.TableID)
	assert.Empty(t, view.Lines)
}

func TestFinalizeEmptyCartRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.mgr.Finalize(ctx)
	assert.ErrorIs(t, err, sessiondomain.ErrNoTableSelected)

	_, err = e.mgr.SelectTable(ctx, e.t1.ID)
	require.NoError(t, err)

	_, err = e.mgr.Finalize(ctx)
	assert.ErrorIs(t, err, sessiondomain.ErrEmptyCart)

	assert.Empty(t, e.history(t))
	// The table stays selected, so it remains occupied.
	assert.Equal(t, tabledomain.StatusOccupied, e.status(t, e.t1.ID))
}

func TestSnapshotSurvivesLaterRateChange(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.mgr.SelectTable(ctx, e.t1.ID)
	require.NoError(t, err)
	_, err = e.mgr.AddItem(ctx, e.momo.ID)
	require.NoError(t, err)

	order, err := e.mgr.Finalize(ctx)
	require.NoError(t, err)

	_, err = e.settings.Update(ctx, settingsdomain.Settings{
		RestaurantName: "Third Pole Restaurant",
		TaxRatePercent: 20,
	})
	require.NoError(t, err)

	history := e.history(t)
	require.Len(t, history, 1)
	assert.Equal(t, float64(13), history[0].SettingsSnapshot.TaxRatePercent)
	assert.Equal(t, order.Tax, history[0].Tax)
}

func TestPendingCartSurvivesRestart(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.mgr.SelectTable(ctx, e.t1.ID)
	require.NoError(t, err)
	_, err = e.mgr.AddItem(ctx, e.momo.ID)
	require.NoError(t, err)

	// A fresh manager over the same store stands in for a process
	// restart: the pending cart is reloaded from the sessions map.
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	fresh := NewManager(ManagerParam{
		Ledger:   e.ledger,
		Tables:   e.tables,
		Menu:     e.menu,
		Settings: e.settings,
		Clock:    e.clk,
		GenID:    node,
		Log:      zap.NewNop(),
	})

	view, err := fresh.SelectTable(ctx, e.t1.ID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, e.momo.ID, view.Lines[0].ItemID)
}

func TestWriteThroughFailureKeepsMemoryAuthoritative(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.mgr.SelectTable(ctx, e.t1.ID)
	require.NoError(t, err)

	e.flaky.failSet(ledgerdomain.KeyActiveSessions)
	_, err = e.mgr.AddItem(ctx, e.momo.ID)
	assert.ErrorIs(t, err, ledgerdomain.ErrPersistenceUnavailable)

	// The line stays on the in-memory cart even though the write failed.
	view, err := e.mgr.View(ctx)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, e.momo.ID, view.Lines[0].ItemID)

	// Nothing reached the sessions map.
	assert.NotContains(t, e.sessions(t), e.t1.ID)

	// The next successful write-through persists the whole cart.
	e.flaky.recover()
	_, err = e.mgr.AddItem(ctx, e.chai.ID)
	require.NoError(t, err)
	lines := e.sessions(t)[e.t1.ID]
	require.Len(t, lines, 2)
	assert.Equal(t, e.momo.ID, lines[0].ItemID)
	assert.Equal(t, e.chai.ID, lines[1].ItemID)
}

func TestFinalizeHistoryAppendFailureLeavesSessionIntact(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.mgr.SelectTable(ctx, e.t1.ID)
	require.NoError(t, err)
	_, err = e.mgr.AddItem(ctx, e.momo.ID)
	require.NoError(t, err)

	e.flaky.failSet(ledgerdomain.KeyOrderHistory)
	order, err := e.mgr.Finalize(ctx)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, ledgerdomain.ErrPersistenceUnavailable)

	// No order was recorded and the session is untouched, so the
	// operator can simply retry.
	assert.Empty(t, e.history(t))
	view, err := e.mgr.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, e.t1.ID, view.TableID)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, tabledomain.StatusOccupied, e.status(t, e.t1.ID))

	e.flaky.recover()
	order, err = e.mgr.Finalize(ctx)
	require.NoError(t, err)
	require.NotNil(t, order)
	require.Len(t, e.history(t), 1)
}

func TestFinalizeClearFailureReturnsOrderWithWarning(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.mgr.SelectTable(ctx, e.t2.ID)
	require.NoError(t, err)
	_, err = e.mgr.AddItem(ctx, e.momo.ID)
	require.NoError(t, err)

	// Only the sessions-map write fails: the history append goes
	// through, clearing the table's entry afterwards does not.
	e.flaky.failSet(ledgerdomain.KeyActiveSessions)
	order, err := e.mgr.Finalize(ctx)
	assert.ErrorIs(t, err, sessiondomain.ErrSessionNotCleared)
	require.NotNil(t, order)
	assert.Equal(t, money.FromMajor(282.50), order.Total)

	// The append is never rolled back.
	history := e.history(t)
	require.Len(t, history, 1)
	assert.Equal(t, order.ID, history[0].ID)

	// The stale sessions entry and occupancy are left for a later sync,
	// but the in-memory session is still cleared.
	assert.Contains(t, e.sessions(t), e.t2.ID)
	assert.Equal(t, tabledomain.StatusOccupied, e.status(t, e.t2.ID))

	view, err := e.mgr.View(ctx)
	require.NoError(t, err)
	assert.Empty(t, view.TableID)
	assert.Empty(t, view.Lines)
}
