package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scheduler/internal/core/domain/model/job"
	"scheduler/internal/pkg/errs"
)

// ErrJobNotDefined is the failure recorded for a document whose name has no handler.
var ErrJobNotDefined = errors.New("undefined job")

// RunNow runs the most recently created document named name, ignoring its
// due time, and returns the handler's outcome.
func (s *Scheduler) RunNow(ctx context.Context, name string) (job.Data, error) {
	latest, err := s.uowFactory.Create().JobRepository().FindLatest(ctx, name)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, fmt.Errorf("cannot find job %q: %w", name, err)
		}
		return nil, err
	}

	return s.Run(ctx, latest)
}

// Run executes j with its definition and records the outcome on the document.
// Bookkeeping for a document removed by its own handler is skipped.
func (s *Scheduler) Run(ctx context.Context, j *job.Job) (job.Data, error) {
	started := s.now()
	j.Lock(started)
	j.Start(started)
	if err := s.save(ctx, j); err != nil {
		s.logger.ErrorContext(ctx, "failed to record job start", "job", j.Name(), "error", err)
	}

	s.metrics.started(j.Name())
	data, err := s.execute(ctx, j)
	s.metrics.finished(j.Name(), time.Since(started), err)

	finished := s.now()
	if err != nil {
		s.logger.ErrorContext(ctx, "job failed", "job", j.Name(), "error", err)
		if ferr := j.Fail(finished, err); ferr != nil {
			s.logger.ErrorContext(ctx, "failed to compute next run", "job", j.Name(), "error", ferr)
		}
	} else {
		s.logger.InfoContext(ctx, "job finished", "job", j.Name(), "duration", finished.Sub(started))
		if ferr := j.Finish(finished); ferr != nil {
			s.logger.ErrorContext(ctx, "failed to compute next run", "job", j.Name(), "error", ferr)
		}
	}

	if serr := s.save(ctx, j); serr != nil {
		s.logger.ErrorContext(ctx, "failed to record job outcome", "job", j.Name(), "error", serr)
	}
	return data, err
}

func (s *Scheduler) execute(ctx context.Context, j *job.Job) (data job.Data, err error) {
	d, ok := s.definition(j.Name())
	if !ok {
		return nil, ErrJobNotDefined
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", j.Name(), r)
		}
	}()
	return d.handler(ctx, j)
}

func (s *Scheduler) save(ctx context.Context, j *job.Job) error {
	err := s.uowFactory.Create().JobRepository().Update(ctx, j)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	return err
}
