package service

import (
	"context"

	backupdomain "github.com/thirdpole/pos/internal/backup/domain"
	"github.com/thirdpole/pos/internal/clock"
	ledgerdomain "github.com/thirdpole/pos/internal/ledger/domain"
	menudomain "github.com/thirdpole/pos/internal/menu/domain"
	orderdomain "github.com/thirdpole/pos/internal/order/domain"
	settingsdomain "github.com/thirdpole/pos/internal/settings/domain"
	tabledomain "github.com/thirdpole/pos/internal/table/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Ledger ledgerdomain.Store
	Clock  clock.Clock
	Log    *zap.Logger
}

type Service struct {
	db     *gorm.DB
	ledger ledgerdomain.Store
	clock  clock.Clock
	log    *zap.Logger
}

func NewService(p ServiceParam) backupdomain.Service {
	return &Service{
		db:     p.DB,
		ledger: p.Ledger,
		clock:  p.Clock,
		log:    p.Log.Named("backup.service"),
	}
}

func (s *Service) Export(ctx context.Context) (backupdomain.Snapshot, error) {
	snapshot := backupdomain.Snapshot{
		ExportedAt:     s.clock.Now(),
		ActiveSessions: map[string][]orderdomain.CartLine{},
	}

	var settings settingsdomain.Settings
	found, err := s.ledger.Get(ctx, ledgerdomain.KeySettings, &settings)
	if err != nil {
		return backupdomain.Snapshot{}, err
	}
	if found {
		snapshot.Settings = &settings
	}

	if _, err := s.ledger.Get(ctx, ledgerdomain.KeyOrderHistory, &snapshot.OrderHistory); err != nil {
		return backupdomain.Snapshot{}, err
	}
	if _, err := s.ledger.Get(ctx, ledgerdomain.KeyActiveSessions, &snapshot.ActiveSessions); err != nil {
		return backupdomain.Snapshot{}, err
	}

	if err := s.db.WithContext(ctx).Find(&snapshot.Tables).Error; err != nil {
		return backupdomain.Snapshot{}, err
	}
	if err := s.db.WithContext(ctx).Find(&snapshot.MenuItems).Error; err != nil {
		return backupdomain.Snapshot{}, err
	}
	if err := s.db.WithContext(ctx).Find(&snapshot.Categories).Error; err != nil {
		return backupdomain.Snapshot{}, err
	}

	return snapshot, nil
}

func (s *Service) Restore(ctx context.Context, snapshot backupdomain.Snapshot) error {
	empty := snapshot.Settings == nil &&
		len(snapshot.Tables) == 0 &&
		len(snapshot.MenuItems) == 0 &&
		len(snapshot.Categories) == 0 &&
		len(snapshot.OrderHistory) == 0 &&
		len(snapshot.ActiveSessions) == 0
	if empty {
		return backupdomain.ErrEmptySnapshot
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(snapshot.Tables) > 0 {
			if err := tx.Where("1 = 1").Delete(&tabledomain.Table{}).Error; err != nil {
				return err
			}
			if err := tx.Create(&snapshot.Tables).Error; err != nil {
				return err
			}
		}
		if len(snapshot.Categories) > 0 {
			if err := tx.Where("1 = 1").Delete(&menudomain.Category{}).Error; err != nil {
				return err
			}
			if err := tx.Create(&snapshot.Categories).Error; err != nil {
				return err
			}
		}
		if len(snapshot.MenuItems) > 0 {
			if err := tx.Where("1 = 1").Delete(&menudomain.Item{}).Error; err != nil {
				return err
			}
			if err := tx.Create(&snapshot.MenuItems).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if snapshot.Settings != nil {
		if err := s.ledger.Set(ctx, ledgerdomain.KeySettings, snapshot.Settings); err != nil {
			return err
		}
	}
	if len(snapshot.OrderHistory) > 0 {
		if err := s.ledger.Set(ctx, ledgerdomain.KeyOrderHistory, snapshot.OrderHistory); err != nil {
			return err
		}
	}
	if len(snapshot.ActiveSessions) > 0 {
		if err := s.ledger.Set(ctx, ledgerdomain.KeyActiveSessions, snapshot.ActiveSessions); err != nil {
			return err
		}
	}

	s.log.Info("snapshot restored",
		zap.Int("tables", len(snapshot.Tables)),
		zap.Int("menu_items", len(snapshot.MenuItems)),
		zap.Int("orders", len(snapshot.OrderHistory)),
	)
	return nil
}
