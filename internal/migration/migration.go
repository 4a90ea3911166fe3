// Package migration creates the schema on startup so the terminal is
// usable out of the box for local and self-hosted installs.
package migration

import (
	"errors"

	ledgerdomain "github.com/thirdpole/pos/internal/ledger/domain"
	menudomain "github.com/thirdpole/pos/internal/menu/domain"
	tabledomain "github.com/thirdpole/pos/internal/table/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	return db.AutoMigrate(
		&ledgerdomain.Entry{},
		&tabledomain.Table{},
		&menudomain.Item{},
		&menudomain.Category{},
	)
}

// Module runs schema migration before any service starts serving.
var Module = fx.Module("migration",
	fx.Invoke(RunMigrations),
)
