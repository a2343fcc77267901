// Package commands contains the operations that change scheduled jobs.
// Each command is built through its constructor, validated by its handler and
// handed to the workflow or scheduler that owns the change.
package commands

import (
	"context"

	"scheduler/internal/core/domain/model/export"
	"scheduler/internal/core/ports"
)

type (
	// ExportJobCreator schedules the initial automatic export job.
	ExportJobCreator interface {
		CreateJob(ctx context.Context, data export.JobData, intervalHint string) (string, error)
	}

	// ExportJobDeleter removes both automatic export jobs.
	ExportJobDeleter interface {
		DeleteJob(ctx context.Context) error
	}

	// JobRunner runs a persisted job outside its schedule.
	JobRunner = ports.JobRunner
)
