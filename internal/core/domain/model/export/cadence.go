package export

import (
	"fmt"
	"path/filepath"
	"time"
)

// Cadence selects due-time and retention rules.
type Cadence int

const (
	CadenceProduction Cadence = iota
	CadenceAccelerated
)

const (
	productionRetention  = 60 * 24 * time.Hour
	acceleratedRetention = 5 * time.Minute

	runDirectoryLayout = "2006-01-02T15-04-05"
)

func (c Cadence) String() string {
	if c == CadenceAccelerated {
		return "accelerated"
	}
	return "production"
}

// Retention is how long backup artifacts are kept under this cadence.
func (c Cadence) Retention() time.Duration {
	if c == CadenceAccelerated {
		return acceleratedRetention
	}
	return productionRetention
}

// NextDueTime returns when the initial export job should fire.
//
// Production: the next hour:00:00.000 UTC, today when the current UTC hour is
// strictly before hour, otherwise tomorrow. Accelerated: the start of the next
// UTC minute.
func NextDueTime(now time.Time, hour int, cadence Cadence) time.Time {
	now = now.UTC()
	if cadence == CadenceAccelerated {
		return now.Truncate(time.Minute).Add(time.Minute)
	}

	due := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if now.Hour() >= hour {
		due = due.AddDate(0, 0, 1)
	}
	return due
}

// DueTimeLabel renders a due time the way it is logged: "today at 2",
// "tomorrow at 2", or "14:31" for the accelerated cadence.
func DueTimeLabel(now, due time.Time, cadence Cadence) string {
	due = due.UTC()
	if cadence == CadenceAccelerated {
		return fmt.Sprintf("%02d:%02d", due.Hour(), due.Minute())
	}
	if due.YearDay() == now.UTC().YearDay() {
		return fmt.Sprintf("today at %d", due.Hour())
	}
	return fmt.Sprintf("tomorrow at %d", due.Hour())
}

// IsExpired reports whether an artifact created at createdAt falls before the
// retention cutoff. Both sides are compared at minute granularity and an
// artifact exactly at the cutoff is kept.
func (c Cadence) IsExpired(createdAt, now time.Time) bool {
	cutoff := now.Add(-c.Retention()).Truncate(time.Minute)
	return createdAt.Truncate(time.Minute).Before(cutoff)
}

// RunDirectory is the backup directory of a process started at startedAt.
func RunDirectory(root string, startedAt time.Time) string {
	return filepath.Join(root, startedAt.UTC().Format(runDirectoryLayout), "db")
}
