package seed

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	menudomain "github.com/thirdpole/pos/internal/menu/domain"
	tabledomain "github.com/thirdpole/pos/internal/table/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) (*gorm.DB, *snowflake.Node) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tabledomain.Table{}, &menudomain.Item{}, &menudomain.Category{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return db, node
}

func TestEnsureDefaultsSeedsEmptyDatabase(t *testing.T) {
	db, node := newTestDB(t)
	require.NoError(t, EnsureDefaults(db, node))

	var tables int64
	require.NoError(t, db.Model(&tabledomain.Table{}).Count(&tables).Error)
	assert.Equal(t, int64(6), tables)

	var items int64
	require.NoError(t, db.Model(&menudomain.Item{}).Count(&items).Error)
	assert.Equal(t, int64(7), items)

	var cats int64
	require.NoError(t, db.Model(&menudomain.Category{}).Count(&cats).Error)
	assert.Equal(t, int64(4), cats)
}

func TestEnsureDefaultsIsIdempotent(t *testing.T) {
	db, node := newTestDB(t)
	require.NoError(t, EnsureDefaults(db, node))
	require.NoError(t, EnsureDefaults(db, node))

	var tables int64
	require.NoError(t, db.Model(&tabledomain.Table{}).Count(&tables).Error)
	assert.Equal(t, int64(6), tables)
}

func TestEnsureDefaultsKeepsExistingData(t *testing.T) {
	db, node := newTestDB(t)
	require.NoError(t, db.Create(&tabledomain.Table{ID: "keep", Name: "Patio", Seats: 2, Status: tabledomain.StatusFree}).Error)

	require.NoError(t, EnsureDefaults(db, node))

	var tables int64
	require.NoError(t, db.Model(&tabledomain.Table{}).Count(&tables).Error)
	assert.Equal(t, int64(1), tables)
}
