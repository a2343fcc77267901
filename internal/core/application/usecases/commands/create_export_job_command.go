package commands

import (
	"errors"

	"scheduler/internal/core/domain/model/export"
	"scheduler/internal/core/domain/model/job"
	"scheduler/internal/pkg/guard"
)

var ErrCreateExportJobCommandIsNotConstructed = errors.New(
	"CreateExportJobCommand must be created via NewCreateExportJobCommand constructor",
)

// CreateExportJobCommand requests the automatic export on a schedule.
//
// Example:
//
//	cmd, err := NewCreateExportJobCommand(export.ScheduleSpec{
//	    ExportHourOfDayUTC: 2, Amount: 1, Units: "days", Repeat: "1 day",
//	}, "high")
type CreateExportJobCommand struct { //nolint:recvcheck //using for validation
	schedule export.ScheduleSpec
	priority string

	guard guard.ConstructorGuard
}

// NewCreateExportJobCommand validates the schedule and the priority label.
func NewCreateExportJobCommand(schedule export.ScheduleSpec, priority string) (CreateExportJobCommand, error) {
	cmd := CreateExportJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSchedule(schedule),
		cmd.setPriority(priority),
	); err != nil {
		return CreateExportJobCommand{}, err
	}

	return cmd, nil
}

func (c CreateExportJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateExportJobCommandIsNotConstructed)
}

func (c CreateExportJobCommand) Schedule() export.ScheduleSpec {
	return c.schedule
}

func (c CreateExportJobCommand) Priority() string {
	return c.priority
}

func (c *CreateExportJobCommand) setSchedule(schedule export.ScheduleSpec) error {
	if err := schedule.Validate(); err != nil {
		return err
	}

	c.schedule = schedule
	return nil
}

func (c *CreateExportJobCommand) setPriority(priority string) error {
	if _, err := job.ParsePriority(priority); err != nil {
		return err
	}

	c.priority = priority
	return nil
}
