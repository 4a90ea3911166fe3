// Package store implements the key-value ledger on gorm.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	ledgerdomain "github.com/thirdpole/pos/internal/ledger/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StoreParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStore(p StoreParam) ledgerdomain.Store {
	return &Store{
		db:  p.DB,
		log: p.Log.Named("ledger.store"),
	}
}

func (s *Store) Get(ctx context.Context, key string, dest any) (bool, error) {
	var entry ledgerdomain.Entry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: get %s: %v", ledgerdomain.ErrPersistenceUnavailable, key, err)
	}

	if err := json.Unmarshal(entry.Value, dest); err != nil {
		return false, fmt.Errorf("%w: decode %s: %v", ledgerdomain.ErrPersistenceUnavailable, key, err)
	}
	return true, nil
}

func (s *Store) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ledgerdomain.ErrPersistenceUnavailable, key, err)
	}

	entry := ledgerdomain.Entry{Key: key, Value: raw}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		s.log.Warn("ledger write failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: set %s: %v", ledgerdomain.ErrPersistenceUnavailable, key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Delete(&ledgerdomain.Entry{}, "key = ?", key).Error
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", ledgerdomain.ErrPersistenceUnavailable, key, err)
	}
	return nil
}
