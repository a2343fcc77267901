// Package jobrepo persists job documents in the "jobs" table with GORM and
// maps them to and from the job domain aggregate.
package jobrepo

import (
	"time"

	"scheduler/internal/core/domain/model/job"
	"scheduler/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO is the row layout of a job document. Single-type documents are
// unique per name through a partial index.
type JobDTO struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name           string         `gorm:"not null;index;uniqueIndex:idx_jobs_single_name,where:type = 'single'"`
	Type           string         `gorm:"type:varchar(16);not null"`
	Data           map[string]any `gorm:"type:jsonb;serializer:json"`
	Priority       int            `gorm:"not null;default:0"`
	NextRunAt      *time.Time     `gorm:"index"`
	RepeatInterval string
	LockedAt       *time.Time
	LastRunAt      *time.Time
	LastFinishedAt *time.Time
	FailedAt       *time.Time
	FailReason     string
	FailCount      int
	CreatedAt      time.Time `gorm:"index"`
}

// TableName overrides GORM's pluralized default.
func (JobDTO) TableName() string {
	return "jobs"
}

func fromDomain(j *job.Job) JobDTO {
	s := j.Snapshot()
	return JobDTO{
		ID:             s.ID.Bytes(),
		Name:           s.Name,
		Type:           string(s.Type),
		Data:           s.Data,
		Priority:       int(s.Priority),
		NextRunAt:      s.NextRunAt,
		RepeatInterval: s.RepeatInterval,
		LockedAt:       s.LockedAt,
		LastRunAt:      s.LastRunAt,
		LastFinishedAt: s.LastFinishedAt,
		FailedAt:       s.FailedAt,
		FailReason:     s.FailReason,
		FailCount:      s.FailCount,
		CreatedAt:      s.CreatedAt,
	}
}

func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return job.RestoreJob(job.Snapshot{
		ID:             id,
		Name:           dto.Name,
		Type:           job.Type(dto.Type),
		Data:           dto.Data,
		Priority:       job.Priority(dto.Priority),
		NextRunAt:      utc(dto.NextRunAt),
		RepeatInterval: dto.RepeatInterval,
		LockedAt:       utc(dto.LockedAt),
		LastRunAt:      utc(dto.LastRunAt),
		LastFinishedAt: utc(dto.LastFinishedAt),
		FailedAt:       utc(dto.FailedAt),
		FailReason:     dto.FailReason,
		FailCount:      dto.FailCount,
		CreatedAt:      dto.CreatedAt.UTC(),
	})
}

func toDomainList(dtos []JobDTO) ([]*job.Job, error) {
	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		j, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
