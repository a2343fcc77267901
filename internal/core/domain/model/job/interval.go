package job

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"scheduler/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

var intervalUnits = map[string]time.Duration{
	"second":  time.Second,
	"seconds": time.Second,
	"minute":  time.Minute,
	"minutes": time.Minute,
	"hour":    time.Hour,
	"hours":   time.Hour,
	"day":     24 * time.Hour,
	"days":    24 * time.Hour,
	"week":    7 * 24 * time.Hour,
	"weeks":   7 * 24 * time.Hour,
}

// Interval is the repeat schedule of a recurring job. It accepts
//
//	"10m", "1h30m"          Go durations
//	"1 day", "5 minutes"    "<amount> <unit>" text
//	"0 2 * * *", "@daily"   standard cron expressions and descriptors
type Interval struct {
	text     string
	schedule cron.Schedule
}

// ParseInterval parses repeat text in any of the supported forms.
func ParseInterval(text string) (Interval, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Interval{}, errs.NewValueIsRequiredError("repeat")
	}

	if d, err := time.ParseDuration(trimmed); err == nil {
		return newEveryInterval(trimmed, d)
	}

	if d, ok := parseHumanDuration(trimmed); ok {
		return newEveryInterval(trimmed, d)
	}

	schedule, err := cron.ParseStandard(trimmed)
	if err != nil {
		return Interval{}, errs.NewValueIsInvalidErrorWithCause("repeat", err)
	}
	return Interval{text: trimmed, schedule: schedule}, nil
}

func newEveryInterval(text string, d time.Duration) (Interval, error) {
	if d < time.Second {
		return Interval{}, errs.NewValueIsOutOfRangeError("repeat", text, time.Second, "unbounded")
	}
	return Interval{text: text, schedule: cron.Every(d)}, nil
}

func parseHumanDuration(text string) (time.Duration, bool) {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) != 2 {
		return 0, false
	}
	amount, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || amount <= 0 {
		return 0, false
	}
	unit, ok := intervalUnits[fields[1]]
	if !ok {
		return 0, false
	}
	return time.Duration(amount * float64(unit)), true
}

// Next returns the first activation strictly after from.
func (i Interval) Next(from time.Time) time.Time {
	return i.schedule.Next(from)
}

func (i Interval) String() string {
	return i.text
}

func (i Interval) Validate() error {
	if i.schedule == nil {
		return fmt.Errorf("%w: interval must be created via ParseInterval", errs.ErrValueIsRequired)
	}
	return nil
}
