// Package domain contains the table registry models and contract.
package domain

import "time"

// TableStatus represents the occupancy of a physical table.
type TableStatus string

const (
	StatusFree     TableStatus = "free"
	StatusOccupied TableStatus = "occupied"
)

// Table represents one physical table in the restaurant.
type Table struct {
	ID        string      `json:"id" gorm:"primaryKey;type:text"`
	Name      string      `json:"name" gorm:"type:text;not null"`
	Seats     int         `json:"seats" gorm:"not null"`
	Status    TableStatus `json:"status" gorm:"type:text;not null;default:'free'"`
	CreatedAt time.Time   `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time   `json:"updated_at" gorm:"not null"`
}

func (Table) TableName() string { return "tables" }
