// Package export drives the automatic database export: an initial one-shot
// job at a computed due time that, after its first successful backup, is
// replaced by a recurring job.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	exportmodel "scheduler/internal/core/domain/model/export"
	"scheduler/internal/core/domain/model/job"
	"scheduler/internal/core/ports"
)

// Option customizes a Workflow.
type Option func(*Workflow)

// WithClock replaces the wall clock, which defaults to time.Now in UTC.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) {
		w.now = now
	}
}

// Workflow owns the two export job definitions.
type Workflow struct {
	store        ports.JobStore
	backuper     ports.Backuper
	backupRoot   string
	runDirectory string
	now          func() time.Time
	logger       *slog.Logger
}

// NewWorkflow creates the workflow. Every backup of this process goes to the
// run directory derived from startedAt under backupRoot.
func NewWorkflow(
	store ports.JobStore,
	backuper ports.Backuper,
	backupRoot string,
	startedAt time.Time,
	logger *slog.Logger,
	opts ...Option,
) *Workflow {
	w := &Workflow{
		store:        store,
		backuper:     backuper,
		backupRoot:   backupRoot,
		runDirectory: exportmodel.RunDirectory(backupRoot, startedAt),
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger.With("component", "automatic_export_job"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// JobNames are the job names whose handler is RunJob.
func JobNames() []string {
	return []string{exportmodel.InitialJobName, exportmodel.RecurringJobName}
}

// RunDirectory is where this process writes its backups.
func (w *Workflow) RunDirectory() string {
	return w.runDirectory
}

// CreateJob defines the initial export job and schedules it for its first
// due time. It returns the scheduled job name.
func (w *Workflow) CreateJob(ctx context.Context, data exportmodel.JobData, intervalHint string) (string, error) {
	if err := data.Schedule.Validate(); err != nil {
		return "", err
	}
	priority, err := job.ParsePriority(data.Priority)
	if err != nil {
		return "", err
	}

	w.store.Define(exportmodel.InitialJobName, priority, w.RunJob)
	w.logger.InfoContext(ctx, "Actual interval parameter", "interval", intervalHint)

	now := w.now()
	cadence := data.Schedule.Cadence()
	due := exportmodel.NextDueTime(now, data.Schedule.ExportHourOfDayUTC, cadence)
	w.logger.InfoContext(ctx, "Next run (in UTC)",
		"next_run_at", due.Format(time.RFC3339Nano),
		"label", exportmodel.DueTimeLabel(now, due, cadence),
		"cadence", cadence.String(),
	)

	payload, err := data.Tagged(exportmodel.InitialJobName).ToJobData()
	if err != nil {
		return "", err
	}
	if _, err = w.store.Schedule(ctx, due, exportmodel.InitialJobName, payload); err != nil {
		return "", fmt.Errorf("failed to schedule %s: %w", exportmodel.InitialJobName, err)
	}

	return exportmodel.InitialJobName, nil
}

// RunJob is the handler of both export jobs. It purges expired backups and
// takes a new one. The first successful run of the initial job then replaces
// it with the recurring job before completing.
func (w *Workflow) RunJob(ctx context.Context, j *job.Job) (job.Data, error) {
	original := j.Data()
	data, err := exportmodel.JobDataFrom(original)
	if err != nil {
		return nil, err
	}

	cadence := data.Schedule.Cadence()
	firstRun := j.Name() == exportmodel.InitialJobName && j.LastFinishedAt() == nil
	w.logger.InfoContext(ctx, "Starting export", "job", j.Name(), "cadence", cadence.String(), "first_run", firstRun)

	w.PurgeOldFiles(ctx, cadence)

	if err = w.backuper.Backup(ctx, w.runDirectory); err != nil {
		w.logger.ErrorContext(ctx, "export failed", "job", j.Name(), "error", err)
		return nil, fmt.Errorf("backup failed: %w", err)
	}

	if !firstRun {
		return original, nil
	}

	if err = w.installRecurring(ctx, data); err != nil {
		w.logger.ErrorContext(ctx, "failed to install recurring export", "error", err)
		return nil, err
	}
	return original, nil
}

// installRecurring cancels the initial job, defines the recurring job with
// the same priority and schedules it on the requested interval.
func (w *Workflow) installRecurring(ctx context.Context, data exportmodel.JobData) error {
	if _, err := w.store.Cancel(ctx, job.ByName(exportmodel.InitialJobName)); err != nil {
		return fmt.Errorf("failed to cancel %s: %w", exportmodel.InitialJobName, err)
	}

	priority, err := job.ParsePriority(data.Priority)
	if err != nil {
		return err
	}
	w.store.Define(exportmodel.RecurringJobName, priority, w.RunJob)

	w.logger.InfoContext(ctx, "Creating recurring export", "job", exportmodel.RecurringJobName, "repeat", data.Schedule.Repeat)
	initialRunAt := w.now()
	recurring := exportmodel.JobData{
		Schedule: exportmodel.ScheduleSpec{
			Amount: data.Schedule.Amount,
			Units:  data.Schedule.Units,
			Repeat: data.Schedule.Repeat,
		},
		Priority:           data.Priority,
		InitialExportRunAt: &initialRunAt,
	}.Tagged(exportmodel.RecurringJobName)

	payload, err := recurring.ToJobData()
	if err != nil {
		return err
	}
	if _, err = w.store.Every(ctx, data.Schedule.Repeat, exportmodel.RecurringJobName, payload); err != nil {
		return fmt.Errorf("failed to schedule %s: %w", exportmodel.RecurringJobName, err)
	}
	return nil
}

// DeleteJob cancels the initial job and then the recurring job. Both are
// attempted; their errors are joined.
func (w *Workflow) DeleteJob(ctx context.Context) error {
	w.logger.InfoContext(ctx, "Deleting automatic export job (initial/recurring)")

	_, initialErr := w.store.Cancel(ctx, job.ByName(exportmodel.InitialJobName))
	if initialErr != nil {
		initialErr = fmt.Errorf("failed to cancel %s: %w", exportmodel.InitialJobName, initialErr)
	}
	_, recurringErr := w.store.Cancel(ctx, job.ByName(exportmodel.RecurringJobName))
	if recurringErr != nil {
		recurringErr = fmt.Errorf("failed to cancel %s: %w", exportmodel.RecurringJobName, recurringErr)
	}
	return errors.Join(initialErr, recurringErr)
}

// PurgeOldFiles removes entries of the backup root older than the cadence's
// retention. Failures never propagate.
func (w *Workflow) PurgeOldFiles(ctx context.Context, cadence exportmodel.Cadence) {
	entries, err := os.ReadDir(w.backupRoot)
	if err != nil {
		w.logger.ErrorContext(ctx, "Purge of old files failed", "root", w.backupRoot, "error", err)
		return
	}

	now := w.now()
	for _, entry := range entries {
		path := filepath.Join(w.backupRoot, entry.Name())
		info, err := entry.Info()
		if err != nil {
			w.logger.ErrorContext(ctx, "Failed to stat file", "path", path, "error", err)
			continue
		}
		// Go exposes no portable birth time; modification time stands in.
		if !cadence.IsExpired(info.ModTime(), now) {
			continue
		}
		if err = os.RemoveAll(path); err != nil {
			w.logger.ErrorContext(ctx, "Failed to remove file", "path", path, "error", err)
			continue
		}
		w.logger.InfoContext(ctx, "Removed file", "path", path)
	}
}
