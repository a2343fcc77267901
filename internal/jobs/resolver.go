package jobs

import (
	"context"
	"log/slog"
	"strings"

	"scheduler/internal/core/domain/model/job"
	"scheduler/internal/core/ports"
)

// ReservedPrefix marks job names that are kept undefined in this process.
const ReservedPrefix = "WatchList"

// Resolver picks the handler for a persisted job name. ok is false when the
// name must stay undefined.
type Resolver func(name string) (handler ports.JobHandler, ok bool)

// NewResolver routes the given export job names to exportHandler, names with
// ReservedPrefix nowhere, and everything else to fallback.
func NewResolver(exportHandler, fallback ports.JobHandler, exportNames ...string) Resolver {
	exports := make(map[string]struct{}, len(exportNames))
	for _, name := range exportNames {
		exports[name] = struct{}{}
	}

	return func(name string) (ports.JobHandler, bool) {
		if strings.HasPrefix(name, ReservedPrefix) {
			return nil, false
		}
		if _, ok := exports[name]; ok {
			return exportHandler, true
		}
		return fallback, true
	}
}

// AlertsHandler logs the job and completes it with its own data.
func AlertsHandler(logger *slog.Logger) ports.JobHandler {
	logger = logger.With("component", "alerts_job")
	return func(ctx context.Context, j *job.Job) (job.Data, error) {
		logger.InfoContext(ctx, "Running job", "job", j.Name())
		return j.Data(), nil
	}
}
