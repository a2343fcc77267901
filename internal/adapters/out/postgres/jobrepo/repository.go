package jobrepo

import (
	"context"
	"errors"
	"time"

	"scheduler/internal/core/domain/model/job"
	"scheduler/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormJobRepository implements ports.JobRepository using GORM.
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a repository on db, which may be a transaction.
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// Add inserts a new job document.
func (r *GormJobRepository) Add(ctx context.Context, j *job.Job) error {
	if err := j.Validate(); err != nil {
		return err
	}

	dto := fromDomain(j)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes every column of an existing job document, nil timestamps included.
func (r *GormJobRepository) Update(ctx context.Context, j *job.Job) error {
	if err := j.Validate(); err != nil {
		return err
	}

	dto := fromDomain(j)
	result := r.db.WithContext(ctx).Model(&dto).Select("*").Omit("id", "created_at").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("job", j.ID().String())
	}
	return nil
}

// Find lists job documents matching filter, oldest first.
func (r *GormJobRepository) Find(ctx context.Context, filter job.Filter) ([]*job.Job, error) {
	var dtos []JobDTO
	if err := r.filtered(ctx, filter).Order("created_at ASC").Order("id ASC").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

// FindLatest returns the newest document with the given name.
func (r *GormJobRepository) FindLatest(ctx context.Context, name string) (*job.Job, error) {
	var dto JobDTO
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("created_at DESC").
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", name)
		}
		return nil, err
	}
	return toDomain(dto)
}

// FindSingle returns the single-type document with the given name.
func (r *GormJobRepository) FindSingle(ctx context.Context, name string) (*job.Job, error) {
	var dto JobDTO
	err := r.db.WithContext(ctx).
		Where("name = ? AND type = ?", name, string(job.TypeSingle)).
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", name)
		}
		return nil, err
	}
	return toDomain(dto)
}

// FindNextDue selects the most urgent due document among names and locks its
// row with FOR UPDATE SKIP LOCKED, so concurrent processes never pick the same
// document inside their transactions.
func (r *GormJobRepository) FindNextDue(
	ctx context.Context,
	names []string,
	now time.Time,
	lockLifetime time.Duration,
) (*job.Job, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var dto JobDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("name IN ?", names).
		Where("next_run_at IS NOT NULL AND next_run_at <= ?", now.UTC()).
		Where("(locked_at IS NULL OR locked_at <= ?)", now.UTC().Add(-lockLifetime)).
		Order("priority DESC").
		Order("next_run_at ASC").
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(dto)
}

// Delete removes every document matching filter.
func (r *GormJobRepository) Delete(ctx context.Context, filter job.Filter) (int64, error) {
	result := r.filtered(ctx, filter).Delete(&JobDTO{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *GormJobRepository) filtered(ctx context.Context, filter job.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&JobDTO{})
	if filter.Name != "" {
		return q.Where("name = ?", filter.Name)
	}
	return q.Where("1 = 1")
}
