package commands

import (
	"errors"

	"scheduler/internal/pkg/guard"
)

var ErrDeleteExportJobCommandIsNotConstructed = errors.New(
	"DeleteExportJobCommand must be created via NewDeleteExportJobCommand constructor",
)

// DeleteExportJobCommand removes the initial and the recurring export job.
type DeleteExportJobCommand struct {
	guard guard.ConstructorGuard
}

func NewDeleteExportJobCommand() DeleteExportJobCommand {
	return DeleteExportJobCommand{guard: guard.NewConstructorGuard()}
}

func (c DeleteExportJobCommand) Validate() error {
	return c.guard.Validate(ErrDeleteExportJobCommandIsNotConstructed)
}
