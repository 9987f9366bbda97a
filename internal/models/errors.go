package models

import "errors"

// Errors returned by the ledger. Callers match them with errors.Is; the
// wrapping message carries the detail.
var (
	ErrValidation        = errors.New("validation failed")
	ErrDuplicateCategory = errors.New("budget already exists for category")
	ErrImmutableField    = errors.New("field cannot be changed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidBudget     = errors.New("invalid budget amount")
	ErrCorruptData       = errors.New("stored data is corrupt")
	ErrStoreUnavailable  = errors.New("store unavailable")
)
