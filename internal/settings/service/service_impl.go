package service

import (
	"context"
	"strings"

	ledgerdomain "github.com/thirdpole/pos/internal/ledger/domain"
	settingsdomain "github.com/thirdpole/pos/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Ledger ledgerdomain.Store
	Log    *zap.Logger
}

type Service struct {
	ledger ledgerdomain.Store
	log    *zap.Logger
}

func NewService(p ServiceParam) settingsdomain.Service {
	return &Service{
		ledger: p.Ledger,
		log:    p.Log.Named("settings.service"),
	}
}

func (s *Service) Get(ctx context.Context) (settingsdomain.Settings, error) {
	settings := settingsdomain.Defaults()
	found, err := s.ledger.Get(ctx, ledgerdomain.KeySettings, &settings)
	if err != nil {
		return settingsdomain.Settings{}, err
	}
	if !found {
		return settingsdomain.Defaults(), nil
	}
	return settings, nil
}

func (s *Service) Update(ctx context.Context, settings settingsdomain.Settings) (settingsdomain.Settings, error) {
	settings.RestaurantName = strings.TrimSpace(settings.RestaurantName)
	if settings.RestaurantName == "" {
		return settingsdomain.Settings{}, settingsdomain.ErrInvalidName
	}
	if settings.TaxRatePercent < 0 {
		return settingsdomain.Settings{}, settingsdomain.ErrInvalidTaxRate
	}
	if settings.ServiceChargePercent < 0 {
		return settingsdomain.Settings{}, settingsdomain.ErrInvalidServiceCharge
	}

	if err := s.ledger.Set(ctx, ledgerdomain.KeySettings, settings); err != nil {
		return settingsdomain.Settings{}, err
	}

	s.log.Info("settings updated",
		zap.Float64("tax_rate_percent", settings.TaxRatePercent),
		zap.Float64("service_charge_percent", settings.ServiceChargePercent),
	)
	return settings, nil
}
