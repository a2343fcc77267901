// Package consul reads and watches configuration keys in Consul KV.
package consul

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"scheduler/internal/core/ports"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/consul/api"
)

const (
	defaultWaitTime       = 5 * time.Minute
	defaultInitialBackoff = time.Second
)

// kvGetter is the part of *api.KV the store needs.
type kvGetter interface {
	Get(key string, q *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error)
}

var _ ports.ConfigStore = (*ConfigStore)(nil)

// ConfigStore implements ports.ConfigStore with Consul blocking queries.
type ConfigStore struct {
	kv         kvGetter
	waitTime   time.Duration
	newBackOff func() backoff.BackOff
	logger     *slog.Logger
}

// NewConfigStore connects to the Consul agent at host:port over plain HTTP.
func NewConfigStore(host, port string, logger *slog.Logger) (*ConfigStore, error) {
	cfg := api.DefaultConfig()
	cfg.Address = net.JoinHostPort(host, port)
	cfg.Scheme = "http"

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	logger.Info("connecting to consul", "component", "consul", "address", cfg.Address)
	return newConfigStore(client.KV(), logger), nil
}

func newConfigStore(kv kvGetter, logger *slog.Logger) *ConfigStore {
	return &ConfigStore{
		kv:       kv,
		waitTime: defaultWaitTime,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = defaultInitialBackoff
			b.MaxElapsedTime = 0
			return b
		},
		logger: logger.With("component", "consul"),
	}
}

// Get reads the current value of key.
func (s *ConfigStore) Get(ctx context.Context, key string) (string, bool, error) {
	pair, _, err := s.kv.Get(key, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return "", false, fmt.Errorf("failed to get consul key %s: %w", key, err)
	}
	if pair == nil {
		return "", false, nil
	}
	return string(pair.Value), true, nil
}

// Watch polls key with blocking queries and emits a change every time its
// modify index moves, starting with the current value. Errors are emitted and
// retried with exponential backoff. A deleted key produces no notification.
// The channel is closed when ctx is done.
func (s *ConfigStore) Watch(ctx context.Context, key string) <-chan ports.ConfigChange {
	changes := make(chan ports.ConfigChange)

	go func() {
		defer close(changes)

		retry := s.newBackOff()
		var index uint64
		for {
			opts := (&api.QueryOptions{WaitIndex: index, WaitTime: s.waitTime}).WithContext(ctx)
			pair, meta, err := s.kv.Get(key, opts)
			if ctx.Err() != nil {
				return
			}

			if err != nil {
				if !s.emit(ctx, changes, ports.ConfigChange{Key: key, Err: err}) {
					return
				}
				wait := retry.NextBackOff()
				if wait == backoff.Stop {
					return
				}
				select {
				case <-ctx.Done():
					return
				case <-time.After(wait):
				}
				continue
			}
			retry.Reset()

			if meta.LastIndex == index {
				continue
			}
			// Consul may reset its index; start over rather than block forever.
			if meta.LastIndex < index {
				index = 0
				continue
			}
			index = meta.LastIndex

			if pair == nil {
				continue
			}
			if !s.emit(ctx, changes, ports.ConfigChange{Key: key, Value: string(pair.Value)}) {
				return
			}
		}
	}()

	return changes
}

func (s *ConfigStore) emit(ctx context.Context, changes chan<- ports.ConfigChange, change ports.ConfigChange) bool {
	select {
	case changes <- change:
		return true
	case <-ctx.Done():
		return false
	}
}
