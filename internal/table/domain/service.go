package domain

import (
	"context"
	"errors"
)

type CreateTableRequest struct {
	Name  string
	Seats int
}

type Service interface {
	List(ctx context.Context) ([]Table, error)
	Get(ctx context.Context, id string) (*Table, error)
	Create(ctx context.Context, req CreateTableRequest) (*Table, error)
	// Delete removes a table. A table that is currently occupied cannot
	// be deleted.
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status TableStatus) error
}

var (
	ErrNotFound      = errors.New("table_not_found")
	ErrTableOccupied = errors.New("table_occupied")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidSeats  = errors.New("invalid_seats")
	ErrInvalidStatus = errors.New("invalid_status")
)
