// Package configsync copies configuration keys from the config store into
// the process environment and asks for a restart when one of them changes.
package configsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"scheduler/internal/core/ports"
)

// PathPrefix is the config store folder of this service.
const PathPrefix = "config/scheduler-service/"

// ProductionEnv is the APP_ENV value that syncs every key.
const ProductionEnv = "production"

// Keys is the ordered list of synced keys. Order matters: later startup steps
// read earlier keys.
var Keys = []string{
	"db-name",
	"db-ip",
	"db-port",
	"db-app-username",
	"db-app-password",
	"db-admin-username",
	"db-admin-password",
	"dashboard-username",
	"dashboard-password",
	"server-port",
	"log-level",
}

// devModeSkippedKeys come from .env outside production.
var devModeSkippedKeys = []string{
	"db-name",
	"db-ip",
	"db-port",
	"db-app-username",
	"db-app-password",
	"db-admin-username",
	"db-admin-password",
	"dashboard-username",
	"dashboard-password",
}

// ErrRestartRequested matches every *RestartRequestedError.
var ErrRestartRequested = errors.New("restart requested")

// RestartRequestedError reports a watched key whose value changed after it
// was loaded into the environment.
type RestartRequestedError struct {
	EnvName string
}

func (e *RestartRequestedError) Error() string {
	return fmt.Sprintf("restart requested: %s changed", e.EnvName)
}

func (e *RestartRequestedError) Unwrap() error {
	return ErrRestartRequested
}

// EnvName maps a config key to its environment variable name.
func EnvName(key string) string {
	return strings.ReplaceAll(key, "-", "_")
}

// KeysFor returns the keys synced under appEnv.
func KeysFor(appEnv string) []string {
	if appEnv == ProductionEnv {
		return slices.Clone(Keys)
	}
	keys := make([]string, 0, len(Keys))
	for _, key := range Keys {
		if !slices.Contains(devModeSkippedKeys, key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// Syncer pulls Keys into the environment, then watches them.
type Syncer struct {
	store  ports.ConfigStore
	env    ports.Environment
	keys   []string
	logger *slog.Logger
}

// NewSyncer builds a syncer for the keys relevant to appEnv.
func NewSyncer(store ports.ConfigStore, env ports.Environment, appEnv string, logger *slog.Logger) *Syncer {
	logger = logger.With("component", "config_sync")
	keys := KeysFor(appEnv)
	if appEnv != ProductionEnv {
		logger.Warn("DEV MODE: skipping configuration keys", "keys", devModeSkippedKeys)
	}
	return &Syncer{store: store, env: env, keys: keys, logger: logger}
}

// Keys returns the keys this syncer handles, in load order.
func (s *Syncer) Keys() []string {
	return slices.Clone(s.keys)
}

// LoadAll fetches every key in order and sets its environment variable.
// Missing keys are skipped; a store error stops the load and is returned.
func (s *Syncer) LoadAll(ctx context.Context) error {
	for _, key := range s.keys {
		s.logger.InfoContext(ctx, "Processing configuration key", "key", key)
		value, found, err := s.store.Get(ctx, PathPrefix+key)
		if err != nil {
			return err
		}
		if !found {
			s.logger.WarnContext(ctx, "configuration key not found", "key", key)
			continue
		}
		if err = s.env.Set(EnvName(key), value); err != nil {
			return fmt.Errorf("failed to set %s: %w", EnvName(key), err)
		}
	}
	return nil
}

// WatchAll watches every key and blocks. It returns a *RestartRequestedError
// for the first key whose trimmed value differs from a non-empty value held
// in the environment, or nil once ctx is done. Watch errors are only logged.
func (s *Syncer) WatchAll(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	restart := make(chan *RestartRequestedError, 1)
	var wg sync.WaitGroup
	for _, key := range s.keys {
		changes := s.store.Watch(ctx, PathPrefix+key)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for change := range changes {
				if rerr := s.handle(ctx, change); rerr != nil {
					select {
					case restart <- rerr:
					default:
					}
					cancel()
					return
				}
			}
		}()
	}

	wg.Wait()
	select {
	case rerr := <-restart:
		return rerr
	default:
		return nil
	}
}

func (s *Syncer) handle(ctx context.Context, change ports.ConfigChange) *RestartRequestedError {
	if change.Err != nil {
		s.logger.ErrorContext(ctx, "configuration watch error", "key", change.Key, "error", change.Err)
		return nil
	}

	envName := EnvName(strings.TrimPrefix(change.Key, PathPrefix))
	newValue := strings.TrimSpace(change.Value)
	current, ok := s.env.Lookup(envName)
	if !ok || current == "" || strings.TrimSpace(current) == newValue {
		return nil
	}

	s.logger.InfoContext(ctx, "Restarting due to configuration value change", "env", envName)
	return &RestartRequestedError{EnvName: envName}
}
