package types

import (
	"context"
	"errors"
)

// Source loads a named record collection. Implementations unwrap transport
// envelopes and return a plain slice; a nil slice is a valid empty result.
type Source interface {
	// Fetch returns every record of the entity collection.
	// Returns ErrEntityNotFound if the entity is not known to the source.
	Fetch(ctx context.Context, entity string) ([]Record, error)
}

// Gateway performs record mutations against the backend. Callers refetch
// after a successful mutation; a failed mutation leaves no local trace.
type Gateway interface {
	// Create stores a new record and returns its identifier. When the
	// record carries no identifier the gateway assigns one.
	Create(ctx context.Context, entity string, rec Record) (string, error)

	// Update replaces the record with the given identifier.
	// Returns ErrNotFound if no record exists with that identifier.
	Update(ctx context.Context, entity, id string, rec Record) error

	// Delete removes the record with the given identifier.
	// Returns ErrNotFound if no record exists with that identifier.
	Delete(ctx context.Context, entity, id string) error
}

// Store is a data source that also accepts mutations.
type Store interface {
	Source
	Gateway
}

// Record and gateway errors.
var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidID       = errors.New("invalid record ID")
	ErrInvalidData     = errors.New("invalid record data")
	ErrEntityNotFound  = errors.New("entity not found")
	ErrFetchFailed     = errors.New("fetch failed")
	ErrMutationFailed  = errors.New("mutation failed")
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// List engine errors.
var (
	ErrUnknownCriterion = errors.New("unknown filter criterion")
	ErrInvalidPageSize  = errors.New("page size not allowed")
	ErrPageNotFound     = errors.New("page not found")
)

// Session errors.
var (
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrInvalidToken = errors.New("token must not be empty")
)
