package repo

import (
	"errors"
	"time"
)

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidQuantityChange is returned when a change would make stock negative.
	ErrInvalidQuantityChange = errors.New("invalid quantity change")
	ErrDuplicatedValueUnique = errors.New("duplicated value for unique field")
	ErrCategoryInUse         = errors.New("category still has products")
)

const queryTimeout = 3 * time.Second

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
