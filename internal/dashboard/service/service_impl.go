package service

import (
	"context"
	"sort"
	"time"

	"github.com/thirdpole/pos/internal/clock"
	"github.com/thirdpole/pos/internal/config"
	dashboarddomain "github.com/thirdpole/pos/internal/dashboard/domain"
	orderdomain "github.com/thirdpole/pos/internal/order/domain"
	"github.com/thirdpole/pos/pkg/money"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	defaultRevenueDays = 7
	topItems           = 5
)

type ServiceParam struct {
	fx.In

	Cfg    config.Config
	Orders orderdomain.Service
	Clock  clock.Clock
	Log    *zap.Logger
}

type Service struct {
	orders      orderdomain.Service
	clock       clock.Clock
	log         *zap.Logger
	revenueDays int
}

func NewService(p ServiceParam) dashboarddomain.Service {
	days := p.Cfg.DashboardRevenueDays
	if days < 1 {
		days = defaultRevenueDays
	}
	return &Service{
		orders:      p.Orders,
		clock:       p.Clock,
		log:         p.Log.Named("dashboard.service"),
		revenueDays: days,
	}
}

func (s *Service) Stats(ctx context.Context) (dashboarddomain.Stats, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return dashboarddomain.Stats{}, err
	}

	now := s.clock.Now()
	today := now.Truncate(24 * time.Hour)

	stats := dashboarddomain.Stats{
		RevenueByDay: make([]dashboarddomain.DayRevenue, 0, s.revenueDays),
	}

	revenueByDay := map[string]money.Amount{}
	quantityByItem := map[string]int{}
	for _, order := range orders {
		day := order.Date.UTC().Truncate(24 * time.Hour)
		if day.Equal(today) {
			stats.TodayRevenue += order.Total
			stats.TodayOrders++
		}
		revenueByDay[day.Format(time.DateOnly)] += order.Total

		for _, line := range order.Lines {
			quantityByItem[line.Name] += line.Quantity
		}
	}

	if stats.TodayOrders > 0 {
		stats.AvgOrderValue = stats.TodayRevenue / money.Amount(stats.TodayOrders)
	}

	for i := s.revenueDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		stats.RevenueByDay = append(stats.RevenueByDay, dashboarddomain.DayRevenue{
			Label:   day.Format("Mon 2"),
			Revenue: revenueByDay[day.Format(time.DateOnly)],
		})
	}

	names := make([]string, 0, len(quantityByItem))
	for name := range quantityByItem {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if quantityByItem[names[i]] != quantityByItem[names[j]] {
			return quantityByItem[names[i]] > quantityByItem[names[j]]
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		if len(stats.TopItems) == topItems {
			break
		}
		stats.TopItems = append(stats.TopItems, dashboarddomain.ItemCount{
			Name:     name,
			Quantity: quantityByItem[name],
		})
	}

	return stats, nil
}
