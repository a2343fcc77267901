package export_test

import (
	"testing"
	"time"

	"scheduler/internal/core/domain/model/export"
	"scheduler/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailySpec() export.ScheduleSpec {
	return export.ScheduleSpec{ExportHourOfDayUTC: 2, Amount: 1, Units: "days", Repeat: "1 day"}
}

func TestScheduleSpec_Validate(t *testing.T) {
	require.NoError(t, dailySpec().Validate())

	spec := dailySpec()
	spec.ExportHourOfDayUTC = 24
	require.ErrorIs(t, spec.Validate(), errs.ErrValueIsOutOfRange)

	spec = dailySpec()
	spec.Amount = 0
	require.ErrorIs(t, spec.Validate(), errs.ErrValueIsOutOfRange)

	spec = dailySpec()
	spec.Units = ""
	require.ErrorIs(t, spec.Validate(), errs.ErrValueIsRequired)

	spec = dailySpec()
	spec.Repeat = "sometimes"
	require.ErrorIs(t, spec.Validate(), errs.ErrValueIsInvalid)
}

func TestScheduleSpec_Cadence(t *testing.T) {
	assert.Equal(t, export.CadenceProduction, dailySpec().Cadence())

	spec := dailySpec()
	spec.Units = export.UnitsMinutes
	assert.Equal(t, export.CadenceAccelerated, spec.Cadence())
}

func TestJobData_RoundTrip(t *testing.T) {
	ranAt := time.Date(2026, 3, 10, 2, 0, 3, 0, time.UTC)
	original := export.JobData{
		Schedule:           dailySpec(),
		Priority:           "high",
		InitialExportRunAt: &ranAt,
	}.Tagged(export.RecurringJobName)

	data, err := original.ToJobData()
	require.NoError(t, err)
	assert.Equal(t, export.RecurringJobName, data["identifier"])

	decoded, err := export.JobDataFrom(data)
	require.NoError(t, err)
	assert.Equal(t, original.Schedule, decoded.Schedule)
	assert.Equal(t, export.RecurringJobName, decoded.Name)
	require.NotNil(t, decoded.InitialExportRunAt)
	assert.True(t, ranAt.Equal(*decoded.InitialExportRunAt))
}

func TestJobDataFrom_InvalidPayload(t *testing.T) {
	_, err := export.JobDataFrom(map[string]any{"schedule": "daily"})

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
