package domain

import (
	"context"
	"errors"

	"github.com/thirdpole/pos/pkg/money"
)

type UpsertItemRequest struct {
	Name        string
	PriceAmount money.Amount
	Category    string
	Image       string
	Description string
	InStock     bool
}

type Service interface {
	ListItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	CreateItem(ctx context.Context, req UpsertItemRequest) (*Item, error)
	UpdateItem(ctx context.Context, id string, req UpsertItemRequest) (*Item, error)
	DeleteItem(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, name string) (*Category, error)
	RenameCategory(ctx context.Context, id, name string) (*Category, error)
	// DeleteCategory fails with ErrCategoryInUse while any item still
	// references the category.
	DeleteCategory(ctx context.Context, id string) error
}

var (
	ErrItemNotFound     = errors.New("item_not_found")
	ErrCategoryNotFound = errors.New("category_not_found")
	ErrCategoryInUse    = errors.New("category_in_use")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidPrice     = errors.New("invalid_price")
	ErrInvalidCategory  = errors.New("invalid_category")
	ErrDuplicateSlug    = errors.New("duplicate_category")
)
