package service

import (
	"context"

	ledgerdomain "github.com/thirdpole/pos/internal/ledger/domain"
	orderdomain "github.com/thirdpole/pos/internal/order/domain"
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

func NewService(p ServiceParam) orderdomain.Service {
	return &Service{
		ledger: p.Ledger,
		log:    p.Log.Named("order.service"),
	}
}

func (s *Service) List(ctx context.Context) ([]orderdomain.FinalizedOrder, error) {
	var history []orderdomain.FinalizedOrder
	if _, err := s.ledger.Get(ctx, ledgerdomain.KeyOrderHistory, &history); err != nil {
		return nil, err
	}

	// History is appended oldest-first; the terminal shows newest first.
	out := make([]orderdomain.FinalizedOrder, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i])
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*orderdomain.FinalizedOrder, error) {
	var history []orderdomain.FinalizedOrder
	if _, err := s.ledger.Get(ctx, ledgerdomain.KeyOrderHistory, &history); err != nil {
		return nil, err
	}

	for i := range history {
		if history[i].ID == id {
			return &history[i], nil
		}
	}
	return nil, orderdomain.ErrNotFound
}
