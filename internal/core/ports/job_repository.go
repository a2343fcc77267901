package ports

import (
	"context"
	"time"

	"scheduler/internal/core/domain/model/job"
)

// JobRepository defines the persistence contract for job documents.
type JobRepository interface {
	// Add persists a new job document.
	Add(ctx context.Context, j *job.Job) error

	// Update persists changes to an existing job document.
	// Returns errs.ErrObjectNotFound when the document no longer exists,
	// for example because its own handler cancelled it.
	Update(ctx context.Context, j *job.Job) error

	// Find returns documents matching filter, oldest first.
	Find(ctx context.Context, filter job.Filter) ([]*job.Job, error)

	// FindLatest returns the most recently created document named name.
	// Returns errs.ErrObjectNotFound when there is none.
	FindLatest(ctx context.Context, name string) (*job.Job, error)

	// FindSingle returns the single-type document named name.
	// Returns errs.ErrObjectNotFound when there is none.
	FindSingle(ctx context.Context, name string) (*job.Job, error)

	// FindNextDue returns the next unlocked (or stale-locked) due document whose
	// name is in names, ordered by priority then due time, locking its row for
	// the current transaction. Returns nil, nil when nothing is due.
	FindNextDue(ctx context.Context, names []string, now time.Time, lockLifetime time.Duration) (*job.Job, error)

	// Delete removes documents matching filter and returns how many were removed.
	Delete(ctx context.Context, filter job.Filter) (int64, error)
}
