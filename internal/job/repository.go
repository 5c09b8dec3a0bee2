package job

import "context"

// Repository is the storage contract for jobs. Implementations return
// apperr-classified errors: not-found for missing ids, bad-reference when a
// create points at a nonexistent company.
type Repository interface {
	// Create inserts a new job and returns the stored record with its
	// storage-assigned id.
	Create(ctx context.Context, in CreateInput) (*Job, error)
	// FindAll returns all jobs in id order, filtered by f.
	FindAll(ctx context.Context, f Filter) ([]Job, error)
	// Get returns one job by id.
	Get(ctx context.Context, id int) (*Job, error)
	// Update applies a partial update and returns the new record.
	Update(ctx context.Context, id int, u Update) (*Job, error)
	// Remove deletes a job.
	Remove(ctx context.Context, id int) error
}
