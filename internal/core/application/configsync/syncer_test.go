package configsync_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"scheduler/internal/core/application/configsync"
	"scheduler/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore serves fixed values and hands out watch channels the test feeds.
type fakeStore struct {
	mu      sync.Mutex
	values  map[string]string
	getErr  error
	gets    []string
	watches map[string]chan ports.ConfigChange
}

func newFakeStore(values map[string]string) *fakeStore {
	return &fakeStore{values: values, watches: make(map[string]chan ports.ConfigChange)}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets = append(f.gets, key)
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeStore) Watch(ctx context.Context, key string) <-chan ports.ConfigChange {
	in := f.watchInput(key)
	out := make(chan ports.ConfigChange)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case c := <-in:
				select {
				case out <- c:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

func (f *fakeStore) watchInput(key string) chan ports.ConfigChange {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.watches[key]
	if !ok {
		ch = make(chan ports.ConfigChange, 4)
		f.watches[key] = ch
	}
	return ch
}

type mapEnv struct {
	mu     sync.Mutex
	values map[string]string
}

func newMapEnv() *mapEnv {
	return &mapEnv{values: make(map[string]string)}
}

func (e *mapEnv) Lookup(name string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.values[name]
	return v, ok
}

func (e *mapEnv) Set(name, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.values[name] = value
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func path(key string) string {
	return configsync.PathPrefix + key
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "db_app_username", configsync.EnvName("db-app-username"))
	assert.Equal(t, "server_port", configsync.EnvName("server-port"))
}

func TestKeysFor(t *testing.T) {
	assert.Equal(t, configsync.Keys, configsync.KeysFor("production"))
	assert.Equal(t, []string{"server-port", "log-level"}, configsync.KeysFor("development"))
	assert.Equal(t, []string{"server-port", "log-level"}, configsync.KeysFor(""))
}

func TestSyncer_LoadAll_SetsEnvironmentInOrder(t *testing.T) {
	store := newFakeStore(map[string]string{
		path("db-name"): "scheduler",
		path("db-ip"):   "10.0.0.5",
		path("db-port"): "5432",
	})
	env := newMapEnv()
	syncer := configsync.NewSyncer(store, env, "production", discardLogger())

	require.NoError(t, syncer.LoadAll(t.Context()))

	assert.Equal(t, "scheduler", env.values["db_name"])
	assert.Equal(t, "10.0.0.5", env.values["db_ip"])
	assert.Equal(t, "5432", env.values["db_port"])
	_, ok := env.values["server_port"]
	assert.False(t, ok, "missing keys are skipped")

	want := make([]string, 0, len(configsync.Keys))
	for _, key := range configsync.Keys {
		want = append(want, path(key))
	}
	assert.Equal(t, want, store.gets)
}

func TestSyncer_LoadAll_StoreErrorStops(t *testing.T) {
	store := newFakeStore(nil)
	store.getErr = errors.New("consul unreachable")
	syncer := configsync.NewSyncer(store, newMapEnv(), "production", discardLogger())

	err := syncer.LoadAll(t.Context())

	assert.ErrorContains(t, err, "consul unreachable")
	assert.Len(t, store.gets, 1)
}

func TestSyncer_WatchAll(t *testing.T) {
	tests := []struct {
		name      string
		held      map[string]string
		changes   []ports.ConfigChange
		restartOn string
	}{
		{
			name:    "unchanged value is a no-op",
			held:    map[string]string{"server_port": "5005"},
			changes: []ports.ConfigChange{{Key: path("server-port"), Value: "5005"}},
		},
		{
			name:    "surrounding whitespace is ignored",
			held:    map[string]string{"server_port": "5005"},
			changes: []ports.ConfigChange{{Key: path("server-port"), Value: " 5005\n"}},
		},
		{
			name:    "value never loaded is a no-op",
			held:    map[string]string{},
			changes: []ports.ConfigChange{{Key: path("log-level"), Value: "debug"}},
		},
		{
			name:    "watch error is logged only",
			held:    map[string]string{"server_port": "5005"},
			changes: []ports.ConfigChange{{Key: path("server-port"), Err: errors.New("timeout")}},
		},
		{
			name:      "changed value requests a restart",
			held:      map[string]string{"server_port": "5005", "log_level": "info"},
			changes:   []ports.ConfigChange{{Key: path("log-level"), Value: "info"}, {Key: path("server-port"), Value: "6006"}},
			restartOn: "server_port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore(nil)
			env := newMapEnv()
			for k, v := range tt.held {
				env.values[k] = v
			}
			syncer := configsync.NewSyncer(store, env, "development", discardLogger())
			for _, c := range tt.changes {
				store.watchInput(c.Key) <- c
			}

			ctx, cancel := context.WithTimeout(t.Context(), 200*time.Millisecond)
			defer cancel()
			err := syncer.WatchAll(ctx)

			if tt.restartOn == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, configsync.ErrRestartRequested)
			var restart *configsync.RestartRequestedError
			require.ErrorAs(t, err, &restart)
			assert.Equal(t, tt.restartOn, restart.EnvName)
		})
	}
}

func TestSyncer_WatchAll_RestartCancelsOtherWatches(t *testing.T) {
	store := newFakeStore(nil)
	env := newMapEnv()
	env.values["db_ip"] = "10.0.0.5"
	syncer := configsync.NewSyncer(store, env, "production", discardLogger())
	store.watchInput(path("db-ip")) <- ports.ConfigChange{Key: path("db-ip"), Value: "10.0.0.6"}

	done := make(chan error, 1)
	go func() { done <- syncer.WatchAll(t.Context()) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, configsync.ErrRestartRequested)
	case <-time.After(2 * time.Second):
		t.Fatal("WatchAll did not return after a change")
	}
	assert.Len(t, syncer.Keys(), len(configsync.Keys))
}
