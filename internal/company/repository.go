package company

import "context"

// Repository is the storage contract for companies. Implementations return
// apperr-classified errors: not-found for missing handles, conflict for
// duplicate creates.
type Repository interface {
	// Create inserts a new company and returns the stored record.
	Create(ctx context.Context, c Company) (*Company, error)
	// FindAll returns all companies ordered by name, filtered by f.
	FindAll(ctx context.Context, f Filter) ([]Company, error)
	// Get returns one company with its jobs attached.
	Get(ctx context.Context, handle string) (*Detail, error)
	// Update applies a partial update and returns the new record.
	Update(ctx context.Context, handle string, u Update) (*Company, error)
	// Remove deletes a company (its jobs cascade away with it).
	Remove(ctx context.Context, handle string) error
}
