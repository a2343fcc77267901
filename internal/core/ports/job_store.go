package ports

import (
	"context"
	"time"

	"scheduler/internal/core/domain/model/job"
)

// JobHandler executes one job. The returned error is the failure signal; a
// nil error is the completion signal, so each execution completes exactly once.
type JobHandler func(ctx context.Context, j *job.Job) (job.Data, error)

// JobStore is the job-queue surface workflows program against.
type JobStore interface {
	// Define attaches handler to name, replacing any earlier definition.
	Define(name string, priority job.Priority, handler JobHandler)

	// Jobs lists persisted documents matching filter.
	Jobs(ctx context.Context, filter job.Filter) ([]*job.Job, error)

	// Schedule persists a one-shot job named name due at when.
	Schedule(ctx context.Context, when time.Time, name string, data job.Data) (*job.Job, error)

	// Every installs (or replaces) the single recurring job named name.
	Every(ctx context.Context, interval string, name string, data job.Data) (*job.Job, error)

	// Cancel deletes every document matching filter.
	Cancel(ctx context.Context, filter job.Filter) (int64, error)
}

// JobRunner triggers executions outside the due-time schedule.
type JobRunner interface {
	// RunNow runs the most recent document named name immediately.
	// Returns errs.ErrObjectNotFound when no such document exists.
	RunNow(ctx context.Context, name string) (job.Data, error)
}
