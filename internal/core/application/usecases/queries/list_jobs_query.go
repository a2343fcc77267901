// Package queries contains read models served to the job dashboard.
package queries

import (
	"errors"
	"strings"
	"time"

	"scheduler/internal/core/domain/model/kernel"
	"scheduler/internal/pkg/guard"
)

var ErrListJobsQueryIsNotConstructed = errors.New(
	"ListJobsQuery must be created via NewListJobsQuery constructor",
)

// ListJobsQuery lists job documents, optionally only those with one name.
//
// Example:
//
//	query := NewListJobsQuery("Automatic Export Job Recurring")
//	jobs, err := handler.Handle(ctx, query)
type ListJobsQuery struct {
	name string

	guard guard.ConstructorGuard
}

// NewListJobsQuery creates the query. An empty name lists every job.
func NewListJobsQuery(name string) ListJobsQuery {
	return ListJobsQuery{
		name:  strings.TrimSpace(name),
		guard: guard.NewConstructorGuard(),
	}
}

func (q ListJobsQuery) Validate() error {
	return q.guard.Validate(ErrListJobsQueryIsNotConstructed)
}

func (q ListJobsQuery) Name() string {
	return q.name
}

// ListJobsQueryResponse is one row of the dashboard.
type ListJobsQueryResponse struct {
	ID             kernel.UUID `json:"-"`
	Name           string      `json:"name"`
	Type           string      `json:"type"`
	Priority       int         `json:"priority"`
	NextRunAt      *time.Time  `json:"nextRunAt"`
	RepeatInterval string      `json:"repeatInterval,omitempty"`
	LockedAt       *time.Time  `json:"lockedAt"`
	LastRunAt      *time.Time  `json:"lastRunAt"`
	LastFinishedAt *time.Time  `json:"lastFinishedAt"`
	FailedAt       *time.Time  `json:"failedAt"`
	FailReason     string      `json:"failReason,omitempty"`
	FailCount      int         `json:"failCount"`
	CreatedAt      time.Time   `json:"createdAt"`
}
