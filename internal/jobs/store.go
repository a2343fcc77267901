package jobs

import (
	"context"
	"errors"
	"time"

	"scheduler/internal/core/domain/model/job"
	"scheduler/internal/pkg/errs"
)

// Jobs lists persisted documents matching filter, oldest first.
func (s *Scheduler) Jobs(ctx context.Context, filter job.Filter) ([]*job.Job, error) {
	return s.uowFactory.Create().JobRepository().Find(ctx, filter)
}

// Schedule persists a one-shot job due at when, with the priority of the
// name's definition.
func (s *Scheduler) Schedule(ctx context.Context, when time.Time, name string, data job.Data) (*job.Job, error) {
	priority := job.PriorityNormal
	if d, ok := s.definition(name); ok {
		priority = d.priority
	}

	j, err := job.NewJob(name, job.TypeNormal, data, priority, s.now())
	if err != nil {
		return nil, err
	}
	j.ScheduleAt(when)

	if err = s.uowFactory.Create().JobRepository().Add(ctx, j); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "job scheduled", "job", name, "next_run_at", when.UTC())
	return j, nil
}

// Every upserts the single recurring document for name. An existing document
// keeps its identity and gets the new payload, priority and interval.
func (s *Scheduler) Every(ctx context.Context, interval string, name string, data job.Data) (*job.Job, error) {
	parsed, err := job.ParseInterval(interval)
	if err != nil {
		return nil, err
	}

	priority := job.PriorityNormal
	if d, ok := s.definition(name); ok {
		priority = d.priority
	}

	uow := s.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := s.now()
	repo := uow.JobRepository()
	j, err := repo.FindSingle(ctx, name)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		if j, err = job.NewJob(name, job.TypeSingle, data, priority, now); err != nil {
			return nil, err
		}
		if err = j.RepeatEvery(parsed, now); err != nil {
			return nil, err
		}
		err = repo.Add(ctx, j)
	case err == nil:
		j.Replace(data, priority)
		if err = j.RepeatEvery(parsed, now); err != nil {
			return nil, err
		}
		err = repo.Update(ctx, j)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "recurring job installed", "job", name, "repeat", parsed.String(), "next_run_at", j.NextRunAt())
	return j, nil
}

// Cancel deletes every document matching filter.
func (s *Scheduler) Cancel(ctx context.Context, filter job.Filter) (int64, error) {
	removed, err := s.uowFactory.Create().JobRepository().Delete(ctx, filter)
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "jobs cancelled", "job", filter.Name, "removed", removed)
	return removed, nil
}
