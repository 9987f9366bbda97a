// Package repository provides typed access to the per-user collections
// held by a store.Backend.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gitlab.com/yelinaung/expense-ledger/internal/models"
	"gitlab.com/yelinaung/expense-ledger/internal/store"
)

// collection converts between domain values T and their stored JSON shape R.
type collection[T, R any] struct {
	backend    store.Backend
	kind       store.Kind
	toRecord   func(T) R
	fromRecord func(userID string, rec R) (T, string, error)
}

func (c *collection[T, R]) key(userID string) store.Key {
	return store.Key{UserID: userID, Kind: c.kind}
}

// load decodes the stored collection. An absent key yields an empty slice.
// Any undecodable or invalid record fails the whole read with ErrCorruptData.
func (c *collection[T, R]) load(ctx context.Context, userID string) ([]T, error) {
	key := c.key(userID)
	payload, found, err := c.backend.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !found {
		return []T{}, nil
	}

	var records []R
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", models.ErrCorruptData, key, err)
	}

	items := make([]T, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		item, id, err := c.fromRecord(userID, rec)
		if err != nil {
			return nil, fmt.Errorf("%w: %s record %d: %v", models.ErrCorruptData, key, i, err)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s record %d: duplicate id %q", models.ErrCorruptData, key, i, id)
		}
		seen[id] = struct{}{}
		items = append(items, item)
	}
	return items, nil
}

func (c *collection[T, R]) exists(ctx context.Context, userID string) (bool, error) {
	key := c.key(userID)
	_, found, err := c.backend.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", key, err)
	}
	return found, nil
}

// save replaces the stored collection with items.
func (c *collection[T, R]) save(ctx context.Context, userID string, items []T) error {
	key := c.key(userID)
	records := make([]R, 0, len(items))
	for _, item := range items {
		records = append(records, c.toRecord(item))
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	if err := c.backend.Put(ctx, key, payload); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// checkOwner rejects records that name a different user than their key.
func checkOwner(keyUser, id, recordUser string) error {
	if id == "" {
		return fmt.Errorf("missing id")
	}
	if recordUser != keyUser {
		return fmt.Errorf("record %q belongs to user %q", id, recordUser)
	}
	return nil
}
