package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	ledgerdomain "github.com/thirdpole/pos/internal/ledger/domain"
	ledgerstore "github.com/thirdpole/pos/internal/ledger/store"
	settingsdomain "github.com/thirdpole/pos/internal/settings/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) settingsdomain.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ledgerdomain.Entry{}))

	store := ledgerstore.NewStore(ledgerstore.StoreParam{DB: db, Log: zap.NewNop()})
	return NewService(ServiceParam{Ledger: store, Log: zap.NewNop()})
}

func TestGetReturnsDefaultsWhenUnset(t *testing.T) {
	svc := newTestService(t)

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, settingsdomain.Defaults(), settings)
	assert.Equal(t, float64(13), settings.TaxRatePercent)
}

func TestUpdatePersists(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	updated, err := svc.Update(ctx, settingsdomain.Settings{
		RestaurantName:       "Third Pole Restaurant",
		Address:              "Thamel, Kathmandu",
		TaxRatePercent:       10,
		ServiceChargePercent: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(10), updated.TaxRatePercent)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, settingsdomain.Settings{RestaurantName: " ", TaxRatePercent: 13})
	assert.ErrorIs(t, err, settingsdomain.ErrInvalidName)

	_, err = svc.Update(ctx, settingsdomain.Settings{RestaurantName: "X", TaxRatePercent: -1})
	assert.ErrorIs(t, err, settingsdomain.ErrInvalidTaxRate)

	_, err = svc.Update(ctx, settingsdomain.Settings{RestaurantName: "X", ServiceChargePercent: -1})
	assert.ErrorIs(t, err, settingsdomain.ErrInvalidServiceCharge)
}
