package commands

import (
	"context"

	"scheduler/internal/core/domain/model/job"
)

// RunJobNowCommandHandler returns the job's own outcome. A missing job is
// reported as errs.ErrObjectNotFound.
type RunJobNowCommandHandler struct {
	runner JobRunner
}

func NewRunJobNowCommandHandler(runner JobRunner) RunJobNowCommandHandler {
	return RunJobNowCommandHandler{runner: runner}
}

func (h RunJobNowCommandHandler) Handle(ctx context.Context, cmd RunJobNowCommand) (job.Data, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.runner.RunNow(ctx, cmd.Name())
}
