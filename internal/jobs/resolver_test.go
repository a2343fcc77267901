package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"scheduler/internal/core/domain/model/job"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolver_Routing(t *testing.T) {
	export := func(context.Context, *job.Job) (job.Data, error) { return job.Data{"handler": "export"}, nil }
	alerts := func(context.Context, *job.Job) (job.Data, error) { return job.Data{"handler": "alerts"}, nil }
	resolve := NewResolver(export, alerts, "Automatic Export Job Initial", "Automatic Export Job Recurring")

	tests := []struct {
		name    string
		job     string
		defined bool
		handler string
	}{
		{name: "reserved prefix stays undefined", job: "WatchListDaily", defined: false},
		{name: "initial export", job: "Automatic Export Job Initial", defined: true, handler: "export"},
		{name: "recurring export", job: "Automatic Export Job Recurring", defined: true, handler: "export"},
		{name: "anything else is an alert", job: "price alert", defined: true, handler: "alerts"},
		{name: "prefix must lead", job: "MyWatchList", defined: true, handler: "alerts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, ok := resolve(tt.job)
			require.Equal(t, tt.defined, ok)
			if !ok {
				assert.Nil(t, handler)
				return
			}
			data, err := handler(t.Context(), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.handler, data["handler"])
		})
	}
}

func TestAlertsHandler_CompletesWithJobData(t *testing.T) {
	j, err := job.NewJob("price alert", job.TypeNormal, job.Data{"symbol": "ACME"}, job.PriorityNormal, fixedNow)
	require.NoError(t, err)

	data, err := AlertsHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))(t.Context(), j)

	require.NoError(t, err)
	assert.Equal(t, job.Data{"symbol": "ACME"}, data)
}
