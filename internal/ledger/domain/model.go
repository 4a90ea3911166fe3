// Package domain defines the persisted key-value ledger shared by the
// whole application. Every piece of cross-restart state (active table
// sessions, order history, settings, staff PIN) lives under one key.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Entry is one persisted key with its JSON value.
type Entry struct {
	Key       string         `json:"key" gorm:"primaryKey;type:text"`
	Value     datatypes.JSON `json:"value" gorm:"not null"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"not null"`
}

func (Entry) TableName() string { return "ledger_entries" }
