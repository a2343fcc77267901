package ports

import "context"

// ConfigChange is one notification from a config store watch. Err is set
// for watch-channel errors; Key and Value are set otherwise.
type ConfigChange struct {
	Key   string
	Value string
	Err   error
}

// ConfigStore is a distributed key-value configuration service.
type ConfigStore interface {
	// Get returns the current value of key. found is false when the key does not exist.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Watch streams notifications for key until ctx is cancelled. The first
	// notification carries the current value.
	Watch(ctx context.Context, key string) <-chan ConfigChange
}

// Environment is the process-wide configuration the rest of startup reads.
type Environment interface {
	Lookup(name string) (string, bool)
	Set(name, value string) error
}
