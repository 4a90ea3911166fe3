package service

import (
	"context"
	"sort"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	menudomain "github.com/thirdpole/pos/internal/menu/domain"
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

	itemrepo repository.Repository[menudomain.Item]
	catrepo  repository.Repository[menudomain.Category]
}

func NewService(p ServiceParam) menudomain.Service {
	return &Service{
		log:   p.Log.Named("menu.service"),
		genID: p.GenID,

		itemrepo: repository.ProvideStore[menudomain.Item](p.DB),
		catrepo:  repository.ProvideStore[menudomain.Category](p.DB),
	}
}

func (s *Service) ListItems(ctx context.Context) ([]menudomain.Item, error) {
	rows, err := s.itemrepo.Find(ctx, &menudomain.Item{})
	if err != nil {
		return nil, err
	}
	items := make([]menudomain.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, *row)
	}
	return items, nil
}

func (s *Service) GetItem(ctx context.Context, id string) (*menudomain.Item, error) {
	item, err := s.itemrepo.FindOne(ctx, &menudomain.Item{ID: id})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, menudomain.ErrItemNotFound
	}
	return item, nil
}

func (s *Service) CreateItem(ctx context.Context, req menudomain.UpsertItemRequest) (*menudomain.Item, error) {
	if err := s.validateItem(ctx, &req); err != nil {
		return nil, err
	}

	item := menudomain.Item{
		ID:          s.genID.Generate().String(),
		Name:        req.Name,
		PriceAmount: req.PriceAmount,
		Category:    req.Category,
		Image:       req.Image,
		Description: req.Description,
		InStock:     req.InStock,
	}
	if err := s.itemrepo.Create(ctx, &item); err != nil {
		return nil, err
	}

	s.log.Info("menu item created", zap.String("item_id", item.ID), zap.String("name", item.Name))
	return &item, nil
}

func (s *Service) UpdateItem(ctx context.Context, id string, req menudomain.UpsertItemRequest) (*menudomain.Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateItem(ctx, &req); err != nil {
		return nil, err
	}

	item.Name = req.Name
	item.PriceAmount = req.PriceAmount
	item.Category = req.Category
	item.Image = req.Image
	item.Description = req.Description
	item.InStock = req.InStock
	if err := s.itemrepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	if _, err := s.GetItem(ctx, id); err != nil {
		return err
	}
	return s.itemrepo.Delete(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]menudomain.Category, error) {
	rows, err := s.catrepo.Find(ctx, &menudomain.Category{})
	if err != nil {
		return nil, err
	}
	cats := make([]menudomain.Category, 0, len(rows))
	for _, row := range rows {
		cats = append(cats, *row)
	}
	sortCategories(cats)
	return cats, nil
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*menudomain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, menudomain.ErrInvalidName
	}

	id := slug.Make(name)
	existing, err := s.catrepo.FindOne(ctx, &menudomain.Category{ID: id})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, menudomain.ErrDuplicateSlug
	}

	count, err := s.catrepo.Count(ctx, &menudomain.Category{})
	if err != nil {
		return nil, err
	}

	cat := menudomain.Category{ID: id, Name: name, Position: int(count)}
	if err := s.catrepo.Create(ctx, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *Service) RenameCategory(ctx context.Context, id, name string) (*menudomain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, menudomain.ErrInvalidName
	}

	cat, err := s.catrepo.FindOne(ctx, &menudomain.Category{ID: id})
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, menudomain.ErrCategoryNotFound
	}

	cat.Name = name
	if err := s.catrepo.Save(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	cat, err := s.catrepo.FindOne(ctx, &menudomain.Category{ID: id})
	if err != nil {
		return err
	}
	if cat == nil {
		return menudomain.ErrCategoryNotFound
	}

	inUse, err := s.itemrepo.Count(ctx, &menudomain.Item{Category: id})
	if err != nil {
		return err
	}
	if inUse > 0 {
		return menudomain.ErrCategoryInUse
	}

	return s.catrepo.Delete(ctx, id)
}

func (s *Service) validateItem(ctx context.Context, req *menudomain.UpsertItemRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return menudomain.ErrInvalidName
	}
	if req.PriceAmount < 0 {
		return menudomain.ErrInvalidPrice
	}

	cat, err := s.catrepo.FindOne(ctx, &menudomain.Category{ID: req.Category})
	if err != nil {
		return err
	}
	if cat == nil {
		return menudomain.ErrInvalidCategory
	}
	return nil
}

func sortCategories(cats []menudomain.Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].Position < cats[j].Position
	})
}
