// Package domain holds the restaurant settings contract.
package domain

import (
	"context"
	"errors"
)

// Settings is the pricing and receipt configuration for the terminal.
// ServiceChargePercent is stored and shown on the settings form but is
// not applied to totals; see the pricing package.
type Settings struct {
	RestaurantName       string  `json:"restaurant_name"`
	Address              string  `json:"address"`
	TaxRatePercent       float64 `json:"tax_rate_percent"`
	ServiceChargePercent float64 `json:"service_charge_percent"`
}

// Defaults returns the out-of-the-box configuration.
func Defaults() Settings {
	return Settings{
		RestaurantName:       "Third Pole Restaurant",
		Address:              "123 Everest Base Camp Road, Kathmandu",
		TaxRatePercent:       13,
		ServiceChargePercent: 10,
	}
}

type Service interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, settings Settings) (Settings, error)
}

var (
	ErrInvalidTaxRate       = errors.New("invalid_tax_rate")
	ErrInvalidServiceCharge = errors.New("invalid_service_charge")
	ErrInvalidName          = errors.New("invalid_name")
)
