package job_test

import (
	"errors"
	"testing"
	"time"

	"scheduler/internal/core/domain/model/job"
	"scheduler/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func newTestJob(t *testing.T, jobType job.Type) *job.Job {
	t.Helper()
	j, err := job.NewJob("Automatic Export Job Initial", jobType, job.Data{"identifier": "x"}, job.PriorityHigh, now)
	require.NoError(t, err)
	return j
}

func TestNewJob(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		j := newTestJob(t, job.TypeNormal)

		require.NoError(t, j.Validate())
		assert.Equal(t, "Automatic Export Job Initial", j.Name())
		assert.Equal(t, job.PriorityHigh, j.Priority())
		assert.Equal(t, "x", j.Data()["identifier"])
		assert.Nil(t, j.NextRunAt())
		assert.Nil(t, j.LastFinishedAt())
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := job.NewJob("  ", job.TypeNormal, nil, job.PriorityNormal, now)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := job.NewJob("x", job.Type("cron"), nil, job.PriorityNormal, now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var j job.Job
		require.ErrorIs(t, j.Validate(), job.ErrJobIsNotConstructed)
	})
}

func TestJob_DataIsCopied(t *testing.T) {
	j := newTestJob(t, job.TypeNormal)

	d := j.Data()
	d["identifier"] = "mutated"

	assert.Equal(t, "x", j.Data()["identifier"])
}

func TestJob_ScheduleAndLock(t *testing.T) {
	j := newTestJob(t, job.TypeNormal)

	j.ScheduleAt(now.Add(time.Minute))
	j.Lock(now)

	require.NotNil(t, j.NextRunAt())
	assert.Equal(t, now.Add(time.Minute), *j.NextRunAt())
	require.NotNil(t, j.LockedAt())
	assert.Equal(t, now, *j.LockedAt())
}

func TestJob_FinishOneShot(t *testing.T) {
	j := newTestJob(t, job.TypeNormal)
	j.ScheduleAt(now)
	j.Lock(now)
	j.Start(now)

	require.NoError(t, j.Finish(now.Add(time.Second)))

	require.NotNil(t, j.LastFinishedAt())
	assert.Equal(t, now.Add(time.Second), *j.LastFinishedAt())
	assert.Nil(t, j.NextRunAt())
	assert.Nil(t, j.LockedAt())
}

func TestJob_FinishRecurring(t *testing.T) {
	interval, err := job.ParseInterval("1 day")
	require.NoError(t, err)

	j := newTestJob(t, job.TypeSingle)
	require.NoError(t, j.RepeatEvery(interval, now))
	require.NotNil(t, j.NextRunAt())
	assert.Equal(t, now.Add(24*time.Hour), *j.NextRunAt())

	runAt := now.Add(24 * time.Hour)
	j.Lock(runAt)
	j.Start(runAt)
	require.NoError(t, j.Finish(runAt.Add(3*time.Second)))

	assert.Equal(t, runAt.Add(24*time.Hour), *j.NextRunAt())
	assert.True(t, j.IsRecurring())
}

func TestJob_FailKeepsLastFinishedAt(t *testing.T) {
	j := newTestJob(t, job.TypeNormal)
	j.ScheduleAt(now)
	j.Lock(now)
	j.Start(now)

	require.NoError(t, j.Fail(now, errors.New("pg_dump exited with status 1")))

	assert.Nil(t, j.LastFinishedAt())
	assert.Nil(t, j.LockedAt())
	assert.Equal(t, 1, j.FailCount())
	assert.Equal(t, "pg_dump exited with status 1", j.FailReason())
}

func TestRestoreJob(t *testing.T) {
	original := newTestJob(t, job.TypeNormal)
	original.ScheduleAt(now)

	restored, err := job.RestoreJob(original.Snapshot())

	require.NoError(t, err)
	assert.True(t, original.ID().IsEqual(restored.ID()))
	assert.Equal(t, original.Snapshot(), restored.Snapshot())

	snapshot := original.Snapshot()
	snapshot.RepeatInterval = "not an interval"
	_, err = job.RestoreJob(snapshot)
	require.Error(t, err)
}

func TestByName(t *testing.T) {
	assert.Equal(t, job.Filter{Name: "other"}, job.ByName("other"))
	assert.Empty(t, job.Filter{}.Name)
}
