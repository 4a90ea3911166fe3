// Package domain contains the menu catalog models and contract.
package domain

import (
	"time"

	"github.com/thirdpole/pos/pkg/money"
)

// Item is one orderable dish or drink on the menu.
type Item struct {
	ID          string       `json:"id" gorm:"primaryKey;type:text"`
	Name        string       `json:"name" gorm:"type:text;not null"`
	PriceAmount money.Amount `json:"price_amount" gorm:"not null"`
	Category    string       `json:"category" gorm:"type:text;not null;index"`
	Image       string       `json:"image" gorm:"type:text"`
	Description string       `json:"description" gorm:"type:text"`
	InStock     bool         `json:"in_stock" gorm:"not null;default:true"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null"`
}

func (Item) TableName() string { return "menu_items" }

// Category groups menu items. The ID is a slug derived from the name.
type Category struct {
	ID       string `json:"id" gorm:"primaryKey;type:text"`
	Name     string `json:"name" gorm:"type:text;not null"`
	Position int    `json:"position" gorm:"not null;default:0"`
}

func (Category) TableName() string { return "menu_categories" }
