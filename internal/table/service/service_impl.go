package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	tabledomain "github.com/thirdpole/pos/internal/table/domain"
	"github.com/thirdpole/pos/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node

	tablerepo repository.Repository[tabledomain.Table]
}

func NewService(p ServiceParam) tabledomain.Service {
	return &Service{
		log:   p.Log.Named("table.service"),
		genID: p.GenID,

		tablerepo: repository.ProvideStore[tabledomain.Table](p.DB),
	}
}

func (s *Service) List(ctx context.Context) ([]tabledomain.Table, error) {
	rows, err := s.tablerepo.Find(ctx, &tabledomain.Table{})
	if err != nil {
		return nil, err
	}

	tables := make([]tabledomain.Table, 0, len(rows))
	for _, row := range rows {
		tables = append(tables, *row)
	}
	return tables, nil
}

func (s *Service) Get(ctx context.Context, id string) (*tabledomain.Table, error) {
	table, err := s.tablerepo.FindOne(ctx, &tabledomain.Table{ID: id})
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, tabledomain.ErrNotFound
	}
	return table, nil
}

func (s *Service) Create(ctx context.Context, req tabledomain.CreateTableRequest) (*tabledomain.Table, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, tabledomain.ErrInvalidName
	}
	if req.Seats < 1 {
		return nil, tabledomain.ErrInvalidSeats
	}

	table := tabledomain.Table{
		ID:     s.genID.Generate().String(),
		Name:   name,
		Seats:  req.Seats,
		Status: tabledomain.StatusFree,
	}
	if err := s.tablerepo.Create(ctx, &table); err != nil {
		return nil, err
	}

	s.log.Info("table created", zap.String("table_id", table.ID), zap.String("name", table.Name))
	return &table, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	table, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if table.Status == tabledomain.StatusOccupied {
		return tabledomain.ErrTableOccupied
	}
	return s.tablerepo.Delete(ctx, id)
}

func (s *Service) SetStatus(ctx context.Context, id string, status tabledomain.TableStatus) error {
	if status != tabledomain.StatusFree && status != tabledomain.StatusOccupied {
		return tabledomain.ErrInvalidStatus
	}

	table, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if table.Status == status {
		return nil
	}

	return s.tablerepo.Update(ctx, id, map[string]any{"status": status})
}
