package queries

import (
	"context"
	"database/sql"
	"time"

	"scheduler/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListJobsQueryHandler reads the jobs table directly, oldest first.
type ListJobsQueryHandler struct {
	db *gorm.DB
}

func NewListJobsQueryHandler(db *gorm.DB) ListJobsQueryHandler {
	return ListJobsQueryHandler{db: db}
}

func (h ListJobsQueryHandler) Handle(ctx context.Context, query ListJobsQuery) ([]ListJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := h.db.WithContext(ctx).
		Table("jobs").
		Select(`id, name, type, priority, next_run_at, repeat_interval, locked_at,
			last_run_at, last_finished_at, failed_at, fail_reason, fail_count, created_at`).
		Order("created_at ASC")
	if query.Name() != "" {
		stmt = stmt.Where("name = ?", query.Name())
	}

	rows, err := stmt.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]ListJobsQueryResponse, 0)
	for rows.Next() {
		var (
			item                           ListJobsQueryResponse
			id                             uuid.UUID
			repeatInterval, failReason     sql.NullString
			nextRunAt, lockedAt, lastRunAt sql.NullTime
			lastFinishedAt, failedAt       sql.NullTime
		)
		err = rows.Scan(
			&id,
			&item.Name,
			&item.Type,
			&item.Priority,
			&nextRunAt,
			&repeatInterval,
			&lockedAt,
			&lastRunAt,
			&lastFinishedAt,
			&failedAt,
			&failReason,
			&item.FailCount,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		item.RepeatInterval = repeatInterval.String
		item.FailReason = failReason.String
		item.NextRunAt = timePtr(nextRunAt)
		item.LockedAt = timePtr(lockedAt)
		item.LastRunAt = timePtr(lastRunAt)
		item.LastFinishedAt = timePtr(lastFinishedAt)
		item.FailedAt = timePtr(failedAt)
		item.CreatedAt = item.CreatedAt.UTC()
		jobs = append(jobs, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
