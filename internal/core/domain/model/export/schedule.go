package export

import (
	"encoding/json"
	"fmt"
	"time"

	"scheduler/internal/core/domain/model/job"
	"scheduler/internal/pkg/errs"
)

const (
	InitialJobName   = "Automatic Export Job Initial"
	RecurringJobName = "Automatic Export Job Recurring"

	// UnitsMinutes in a schedule selects the accelerated cadence.
	UnitsMinutes = "minutes"
)

// ScheduleSpec is the schedule requested by the create-export API.
type ScheduleSpec struct {
	ExportHourOfDayUTC int    `json:"exportHourOfDayUtc"`
	Amount             int    `json:"amount"`
	Units              string `json:"units"`
	Repeat             string `json:"repeat"`
}

// Validate checks the hour range and that repeat parses as an interval.
func (s ScheduleSpec) Validate() error {
	if s.ExportHourOfDayUTC < 0 || s.ExportHourOfDayUTC > 23 {
		return errs.NewValueIsOutOfRangeError("exportHourOfDayUtc", s.ExportHourOfDayUTC, 0, 23)
	}
	if s.Amount <= 0 {
		return errs.NewValueIsOutOfRangeError("amount", s.Amount, 1, "unbounded")
	}
	if s.Units == "" {
		return errs.NewValueIsRequiredError("units")
	}
	if _, err := job.ParseInterval(s.Repeat); err != nil {
		return err
	}
	return nil
}

// Cadence returns the cadence selected by the schedule units.
func (s ScheduleSpec) Cadence() Cadence {
	if s.Units == UnitsMinutes {
		return CadenceAccelerated
	}
	return CadenceProduction
}

// JobData is the payload stored with both export jobs.
type JobData struct {
	Schedule           ScheduleSpec `json:"schedule"`
	Priority           string       `json:"priority,omitempty"`
	Name               string       `json:"name,omitempty"`
	Identifier         string       `json:"identifier,omitempty"`
	InitialExportRunAt *time.Time   `json:"initialExportRunAt,omitempty"`
}

// Tagged returns a copy of d whose name and identifier are set to name.
func (d JobData) Tagged(name string) JobData {
	d.Name = name
	d.Identifier = name
	return d
}

// ToJobData converts d into the opaque job payload.
func (d JobData) ToJobData() (job.Data, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode export job data: %w", err)
	}
	var out job.Data
	if err = json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("encode export job data: %w", err)
	}
	return out, nil
}

// JobDataFrom decodes an export payload read back from the job store.
func JobDataFrom(data job.Data) (JobData, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return JobData{}, fmt.Errorf("decode export job data: %w", err)
	}
	var out JobData
	if err = json.Unmarshal(raw, &out); err != nil {
		return JobData{}, errs.NewValueIsInvalidErrorWithCause("export job data", err)
	}
	return out, nil
}
