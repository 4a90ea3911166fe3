// Package seed bootstraps default tables and a starter menu so a fresh
// install is usable immediately.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	menudomain "github.com/thirdpole/pos/internal/menu/domain"
	tabledomain "github.com/thirdpole/pos/internal/table/domain"
	"github.com/thirdpole/pos/pkg/money"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type defaultTable struct {
	name  string
	seats int
}

type defaultItem struct {
	name        string
	price       float64
	category    string
	description string
}

var defaultTables = []defaultTable{
	{"Table 1", 4},
	{"Table 2", 4},
	{"Table 3", 2},
	{"Table 4", 6},
	{"Table 5", 4},
	{"Table 6", 8},
}

var defaultCategories = []menudomain.Category{
	{ID: "starters", Name: "Starters", Position: 0},
	{ID: "mains", Name: "Mains", Position: 1},
	{ID: "drinks", Name: "Drinks", Position: 2},
	{ID: "desserts", Name: "Desserts", Position: 3},
}

var defaultItems = []defaultItem{
	{"Himalayan Momos", 250, "starters", "Steamed dumplings filled with spiced minced chicken."},
	{"Crispy Chili Potato", 200, "starters", "Fried potato fingers tossed in spicy chili sauce."},
	{"Butter Chicken", 650, "mains", "Tender chicken cooked in a rich tomato and butter gravy."},
	{"Paneer Tikka Masala", 550, "mains", "Grilled cottage cheese cubes in spicy curry."},
	{"Mango Lassi", 150, "drinks", "Refreshing yogurt drink with mango pulp."},
	{"Masala Chai", 50, "drinks", "Spiced Indian tea with milk."},
	{"Gulab Jamun", 100, "desserts", "Deep-fried milk solids soaked in sugar syrup."},
}

// EnsureDefaults seeds tables and the menu when the registry is empty.
// Existing data is never touched.
func EnsureDefaults(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureTables(tx, node); err != nil {
			return err
		}
		return ensureMenu(tx, node)
	})
}

func ensureTables(tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.Model(&tabledomain.Table{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, def := range defaultTables {
		table := tabledomain.Table{
			ID:     node.Generate().String(),
			Name:   def.name,
			Seats:  def.seats,
			Status: tabledomain.StatusFree,
		}
		if err := tx.Create(&table).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureMenu(tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.Model(&menudomain.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, cat := range defaultCategories {
		if err := tx.Create(&cat).Error; err != nil {
			return err
		}
	}
	for _, def := range defaultItems {
		item := menudomain.Item{
			ID:          node.Generate().String(),
			Name:        def.name,
			PriceAmount: money.FromMajor(def.price),
			Category:    def.category,
			Description: def.description,
			InStock:     true,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}

// Module seeds defaults on startup, after migration has run.
var Module = fx.Module("seed",
	fx.Invoke(EnsureDefaults),
)
