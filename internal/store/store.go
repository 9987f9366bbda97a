// Package store provides durable key/value backends for per-user collections.
//
// A backend maps a (user, kind) key to one opaque JSON payload and replaces
// it atomically on every write. Typed access lives in package repository.
package store

import (
	"context"
	"fmt"
)

// Kind names a collection.
type Kind string

// Collection kinds.
const (
	KindExpenses Kind = "expenses"
	KindBudgets  Kind = "budgets"
	KindAccounts Kind = "accounts"
	KindUsers    Kind = "users"
)

// Key identifies one stored collection. Global collections such as the
// user directory use an empty UserID.
type Key struct {
	UserID string
	Kind   Kind
}

// String returns the logical key, e.g. "expenses:user_1".
func (k Key) String() string {
	if k.UserID == "" {
		return string(k.Kind)
	}
	return fmt.Sprintf("%s:%s", k.Kind, k.UserID)
}

// Backend stores collection payloads.
type Backend interface {
	// Get returns the payload stored under key. found is false when the
	// key was never written; that is not an error.
	Get(ctx context.Context, key Key) (payload []byte, found bool, err error)
	// Put atomically replaces the payload stored under key.
	Put(ctx context.Context, key Key, payload []byte) error
}
