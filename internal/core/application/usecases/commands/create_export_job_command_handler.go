package commands

import (
	"context"

	"scheduler/internal/core/domain/model/export"
)

// CreateExportJobCommandHandler schedules the initial export job. The
// requested repeat interval is applied later, when the recurring job replaces
// the initial one.
type CreateExportJobCommandHandler struct {
	creator ExportJobCreator
}

func NewCreateExportJobCommandHandler(creator ExportJobCreator) CreateExportJobCommandHandler {
	return CreateExportJobCommandHandler{creator: creator}
}

// Handle returns the name of the scheduled job.
func (h CreateExportJobCommandHandler) Handle(ctx context.Context, cmd CreateExportJobCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	data := export.JobData{
		Schedule: cmd.Schedule(),
		Priority: cmd.Priority(),
	}
	return h.creator.CreateJob(ctx, data, cmd.Schedule().Repeat)
}
