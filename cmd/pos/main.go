package main

import (
	"github.com/thirdpole/pos/internal/auth"
	"github.com/thirdpole/pos/internal/backup"
	"github.com/thirdpole/pos/internal/clock"
	"github.com/thirdpole/pos/internal/config"
	"github.com/thirdpole/pos/internal/dashboard"
	"github.com/thirdpole/pos/internal/ledger"
	"github.com/thirdpole/pos/internal/logger"
	"github.com/thirdpole/pos/internal/menu"
	"github.com/thirdpole/pos/internal/migration"
	"github.com/thirdpole/pos/internal/order"
	"github.com/thirdpole/pos/internal/providers/pdf"
	"github.com/thirdpole/pos/internal/seed"
	"github.com/thirdpole/pos/internal/server"
	"github.com/thirdpole/pos/internal/session"
	"github.com/thirdpole/pos/internal/settings"
	"github.com/thirdpole/pos/internal/table"
	"github.com/thirdpole/pos/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Infrastructure
		config.Module,
		logger.Module,
		db.Module,
		clock.Module,
		migration.Module,
		seed.Module,

		// Domains
		ledger.Module,
		table.Module,
		menu.Module,
		settings.Module,
		auth.Module,
		session.Module,
		order.Module,
		dashboard.Module,
		pdf.Module,
		backup.Module,

		// HTTP surface
		server.Module,
	)
	app.Run()
}
