package domain

import (
	"context"
	"errors"
)

// Well-known keys. The session core only ever touches KeyActiveSessions
// and KeyOrderHistory; it does not own the store.
const (
	KeyActiveSessions = "active_sessions"
	KeyOrderHistory   = "order_history"
	KeySettings       = "restaurant_settings"
	KeyStaffPin       = "staff_pin"
)

// ErrPersistenceUnavailable wraps any failed read or write against the
// underlying store. In-memory state stays authoritative until the next
// successful write.
var ErrPersistenceUnavailable = errors.New("persistence_unavailable")

type Store interface {
	// Get unmarshals the value stored under key into dest. The second
	// return is false when the key is absent.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value any) error
	// Delete removes the key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
