package job

import (
	"errors"
	"maps"
	"strings"
	"time"

	"scheduler/internal/core/domain/model/kernel"
	"scheduler/internal/pkg/errs"
)

var (
	// ErrJobIsNotConstructed is returned when a Job was not created via NewJob or RestoreJob.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob constructor")
	ErrJobTypeIsInvalid    = errors.New("job type must be normal or single")
)

// Type distinguishes per-call documents from upserted recurring documents.
type Type string

const (
	TypeNormal Type = "normal"
	TypeSingle Type = "single"
)

// Data is the opaque JSON object stored with a job and handed back to its handler.
type Data map[string]any

// Job is a persisted unit of scheduled work.
//
// Invariants:
//   - name is not blank
//   - type is normal or single
//   - a recurring job (repeatInterval != "") always has a parseable interval
//   - lastFinishedAt only moves on successful executions
type Job struct {
	id             kernel.UUID
	name           string
	jobType        Type
	data           Data
	priority       Priority
	nextRunAt      *time.Time
	repeatInterval string
	lockedAt       *time.Time
	lastRunAt      *time.Time
	lastFinishedAt *time.Time
	failedAt       *time.Time
	failReason     string
	failCount      int
	createdAt      time.Time

	isConstructed bool
}

// Snapshot is the full state of a Job, used for persistence and read models.
type Snapshot struct {
	ID             kernel.UUID
	Name           string
	Type           Type
	Data           Data
	Priority       Priority
	NextRunAt      *time.Time
	RepeatInterval string
	LockedAt       *time.Time
	LastRunAt      *time.Time
	LastFinishedAt *time.Time
	FailedAt       *time.Time
	FailReason     string
	FailCount      int
	CreatedAt      time.Time
}

// NewJob creates an unscheduled job document.
func NewJob(name string, jobType Type, data Data, priority Priority, createdAt time.Time) (*Job, error) {
	j := &Job{
		id:            kernel.NewUUID(),
		name:          strings.TrimSpace(name),
		jobType:       jobType,
		data:          cloneData(data),
		priority:      priority,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}
	if err := j.Validate(); err != nil {
		return nil, err
	}
	return j, nil
}

// RestoreJob rebuilds a Job from persisted state.
func RestoreJob(s Snapshot) (*Job, error) {
	j := &Job{
		id:             s.ID,
		name:           s.Name,
		jobType:        s.Type,
		data:           cloneData(s.Data),
		priority:       s.Priority,
		nextRunAt:      s.NextRunAt,
		repeatInterval: s.RepeatInterval,
		lockedAt:       s.LockedAt,
		lastRunAt:      s.LastRunAt,
		lastFinishedAt: s.LastFinishedAt,
		failedAt:       s.FailedAt,
		failReason:     s.FailReason,
		failCount:      s.FailCount,
		createdAt:      s.CreatedAt,
		isConstructed:  true,
	}
	if err := j.Validate(); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Job) Validate() error {
	if !j.isConstructed {
		return ErrJobIsNotConstructed
	}
	if err := j.id.Validate(); err != nil {
		return err
	}
	if j.name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if j.jobType != TypeNormal && j.jobType != TypeSingle {
		return errs.NewValueIsInvalidErrorWithCause("type", ErrJobTypeIsInvalid)
	}
	if j.repeatInterval != "" {
		if _, err := ParseInterval(j.repeatInterval); err != nil {
			return err
		}
	}
	return nil
}

func (j *Job) ID() kernel.UUID            { return j.id }
func (j *Job) Name() string               { return j.name }
func (j *Job) Type() Type                 { return j.jobType }
func (j *Job) Priority() Priority         { return j.priority }
func (j *Job) NextRunAt() *time.Time      { return j.nextRunAt }
func (j *Job) RepeatInterval() string     { return j.repeatInterval }
func (j *Job) LockedAt() *time.Time       { return j.lockedAt }
func (j *Job) LastRunAt() *time.Time      { return j.lastRunAt }
func (j *Job) LastFinishedAt() *time.Time { return j.lastFinishedAt }
func (j *Job) FailReason() string         { return j.failReason }
func (j *Job) FailCount() int             { return j.failCount }

// Data returns a copy of the payload; mutating it does not change the job.
func (j *Job) Data() Data {
	return cloneData(j.data)
}

// IsRecurring reports whether the job reschedules itself after each run.
func (j *Job) IsRecurring() bool {
	return j.repeatInterval != ""
}

// ScheduleAt makes the job due at a single absolute time.
func (j *Job) ScheduleAt(at time.Time) {
	t := at.UTC()
	j.nextRunAt = &t
}

// RepeatEvery turns the job into a recurring job, first due at interval.Next(now).
func (j *Job) RepeatEvery(interval Interval, now time.Time) error {
	if err := interval.Validate(); err != nil {
		return err
	}
	j.repeatInterval = interval.String()
	j.ScheduleAt(interval.Next(now))
	return nil
}

// Replace overwrites payload and priority, used when Every upserts a single job.
func (j *Job) Replace(data Data, priority Priority) {
	j.data = cloneData(data)
	j.priority = priority
}

// Lock marks the job as held by an execution starting at now.
func (j *Job) Lock(now time.Time) {
	t := now.UTC()
	j.lockedAt = &t
}

// Start records the beginning of an execution.
func (j *Job) Start(now time.Time) {
	t := now.UTC()
	j.lastRunAt = &t
}

// Finish records a successful execution and computes the next due time.
func (j *Job) Finish(now time.Time) error {
	t := now.UTC()
	j.lastFinishedAt = &t
	j.lockedAt = nil
	return j.advance(now)
}

// Fail records a failed execution. lastFinishedAt is left untouched so the
// job keeps its pre-run state; recurring jobs still move to their next slot.
func (j *Job) Fail(now time.Time, cause error) error {
	t := now.UTC()
	j.failedAt = &t
	j.failCount++
	if cause != nil {
		j.failReason = cause.Error()
	}
	j.lockedAt = nil
	return j.advance(now)
}

func (j *Job) advance(now time.Time) error {
	if !j.IsRecurring() {
		j.nextRunAt = nil
		return nil
	}
	interval, err := ParseInterval(j.repeatInterval)
	if err != nil {
		return err
	}
	from := now
	if j.lastRunAt != nil {
		from = *j.lastRunAt
	}
	next := interval.Next(from)
	if !next.After(now) {
		next = interval.Next(now)
	}
	j.ScheduleAt(next)
	return nil
}

// Snapshot returns the full state of the job.
func (j *Job) Snapshot() Snapshot {
	return Snapshot{
		ID:             j.id,
		Name:           j.name,
		Type:           j.jobType,
		Data:           cloneData(j.data),
		Priority:       j.priority,
		NextRunAt:      j.nextRunAt,
		RepeatInterval: j.repeatInterval,
		LockedAt:       j.lockedAt,
		LastRunAt:      j.lastRunAt,
		LastFinishedAt: j.lastFinishedAt,
		FailedAt:       j.failedAt,
		FailReason:     j.failReason,
		FailCount:      j.failCount,
		CreatedAt:      j.createdAt,
	}
}

func cloneData(d Data) Data {
	if d == nil {
		return Data{}
	}
	return maps.Clone(d)
}
