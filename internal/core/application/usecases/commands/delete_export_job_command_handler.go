package commands

import "context"

type DeleteExportJobCommandHandler struct {
	deleter ExportJobDeleter
}

func NewDeleteExportJobCommandHandler(deleter ExportJobDeleter) DeleteExportJobCommandHandler {
	return DeleteExportJobCommandHandler{deleter: deleter}
}

func (h DeleteExportJobCommandHandler) Handle(ctx context.Context, cmd DeleteExportJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.deleter.DeleteJob(ctx)
}
