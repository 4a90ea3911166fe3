// Package domain defines the sales dashboard aggregates.
package domain

import (
	"context"

	"github.com/thirdpole/pos/pkg/money"
)

type DayRevenue struct {
	Label   string       `json:"label"`
	Revenue money.Amount `json:"revenue"`
}

type ItemCount struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Stats is everything the dashboard view renders, derived entirely from
// order history.
type Stats struct {
	TodayRevenue  money.Amount `json:"today_revenue"`
	TodayOrders   int          `json:"today_orders"`
	AvgOrderValue money.Amount `json:"avg_order_value"`
	RevenueByDay  []DayRevenue `json:"revenue_by_day"`
	TopItems      []ItemCount  `json:"top_items"`
}

type Service interface {
	Stats(ctx context.Context) (Stats, error)
}
