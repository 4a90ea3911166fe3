// Package db opens the shared gorm handle and provides the ID generator.
package db

import (
	"github.com/bwmarrin/snowflake"
	"github.com/thirdpole/pos/internal/config"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func New(cfg config.Config) (*gorm.DB, error) {
	dialect, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}
	return gorm.Open(dialect, &gorm.Config{})
}

func NewSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

// Module wires the database handle and snowflake ID generator.
var Module = fx.Module("db",
	fx.Provide(
		New,
		NewSnowflakeNode,
	),
)
