package commands_test

import (
	"testing"

	"scheduler/internal/core/application/usecases/commands"
	"scheduler/internal/core/domain/model/export"
	"scheduler/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validSchedule = export.ScheduleSpec{ExportHourOfDayUTC: 2, Amount: 1, Units: "days", Repeat: "1 day"}

func TestNewCreateExportJobCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewCreateExportJobCommand(validSchedule, "high")

	require.NoError(t, err)
	assert.Equal(t, validSchedule, cmd.Schedule())
	assert.Equal(t, "high", cmd.Priority())
	assert.NoError(t, cmd.Validate())
}

func TestNewCreateExportJobCommand_InvalidHour(t *testing.T) {
	spec := validSchedule
	spec.ExportHourOfDayUTC = -1

	_, err := commands.NewCreateExportJobCommand(spec, "high")

	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewCreateExportJobCommand_InvalidRepeat(t *testing.T) {
	spec := validSchedule
	spec.Repeat = "every now and then"

	_, err := commands.NewCreateExportJobCommand(spec, "high")

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewCreateExportJobCommand_JoinsErrors(t *testing.T) {
	spec := validSchedule
	spec.Units = ""

	_, err := commands.NewCreateExportJobCommand(spec, "asap")

	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCreateExportJobCommand_NotConstructedViaConstructor(t *testing.T) {
	var cmd commands.CreateExportJobCommand

	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateExportJobCommandIsNotConstructed)
}
