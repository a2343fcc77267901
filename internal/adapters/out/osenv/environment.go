// Package osenv exposes the process environment as ports.Environment.
package osenv

import (
	"os"

	"scheduler/internal/core/ports"
)

var _ ports.Environment = Environment{}

type Environment struct{}

func (Environment) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

func (Environment) Set(name, value string) error {
	return os.Setenv(name, value)
}
