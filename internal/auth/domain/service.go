// Package domain defines staff PIN authentication.
package domain

import (
	"context"
	"errors"
)

// DefaultPin is accepted until a PIN has been set through ChangePin.
const DefaultPin = "1234"

type ChangePinRequest struct {
	CurrentPin string
	NewPin     string
}

type Service interface {
	// Login verifies the staff PIN.
	Login(ctx context.Context, pin string) error
	// ChangePin replaces the staff PIN. The current PIN must verify and
	// the new PIN must be at least four digits.
	ChangePin(ctx context.Context, req ChangePinRequest) error
}

var (
	ErrInvalidPin = errors.New("invalid_pin")
	ErrPinTooWeak = errors.New("pin_too_weak")
)
