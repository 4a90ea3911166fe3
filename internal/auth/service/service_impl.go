package service

import (
	"context"

	authdomain "github.com/thirdpole/pos/internal/auth/domain"
	"github.com/thirdpole/pos/internal/auth/pin"
	ledgerdomain "github.com/thirdpole/pos/internal/ledger/domain"
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

func NewService(p ServiceParam) authdomain.Service {
	return &Service{
		ledger: p.Ledger,
		log:    p.Log.Named("auth.service"),
	}
}

func (s *Service) Login(ctx context.Context, candidate string) error {
	ok, err := s.verify(ctx, candidate)
	if err != nil {
		return err
	}
	if !ok {
		s.log.Warn("login rejected")
		return authdomain.ErrInvalidPin
	}
	return nil
}

func (s *Service) ChangePin(ctx context.Context, req authdomain.ChangePinRequest) error {
	ok, err := s.verify(ctx, req.CurrentPin)
	if err != nil {
		return err
	}
	if !ok {
		return authdomain.ErrInvalidPin
	}
	if len(req.NewPin) < 4 {
		return authdomain.ErrPinTooWeak
	}

	encoded, err := pin.Hash(req.NewPin)
	if err != nil {
		return err
	}
	if err := s.ledger.Set(ctx, ledgerdomain.KeyStaffPin, encoded); err != nil {
		return err
	}

	s.log.Info("staff pin changed")
	return nil
}

func (s *Service) verify(ctx context.Context, candidate string) (bool, error) {
	var encoded string
	found, err := s.ledger.Get(ctx, ledgerdomain.KeyStaffPin, &encoded)
	if err != nil {
		return false, err
	}
	if !found {
		return candidate == authdomain.DefaultPin, nil
	}
	return pin.Verify(candidate, encoded), nil
}
