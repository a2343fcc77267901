package commands_test

import (
	"testing"

	"scheduler/internal/core/application/usecases/commands"
	"scheduler/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunJobNowCommand_TrimsName(t *testing.T) {
	cmd, err := commands.NewRunJobNowCommand("  Automatic Export Job Recurring ")

	require.NoError(t, err)
	assert.Equal(t, "Automatic Export Job Recurring", cmd.Name())
}

func TestNewRunJobNowCommand_BlankName(t *testing.T) {
	_, err := commands.NewRunJobNowCommand(" ")

	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCommands_NotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, commands.RunJobNowCommand{}.Validate(), commands.ErrRunJobNowCommandIsNotConstructed)
	assert.ErrorIs(t, commands.DeleteExportJobCommand{}.Validate(), commands.ErrDeleteExportJobCommandIsNotConstructed)
	assert.NoError(t, commands.NewDeleteExportJobCommand().Validate())
}
