package commands

import (
	"errors"
	"strings"

	"scheduler/internal/pkg/errs"
	"scheduler/internal/pkg/guard"
)

var ErrRunJobNowCommandIsNotConstructed = errors.New(
	"RunJobNowCommand must be created via NewRunJobNowCommand constructor",
)

// RunJobNowCommand runs the newest job document with the given name
// immediately, regardless of its due time.
type RunJobNowCommand struct { //nolint:recvcheck //using for validation
	name string

	guard guard.ConstructorGuard
}

func NewRunJobNowCommand(name string) (RunJobNowCommand, error) {
	cmd := RunJobNowCommand{guard: guard.NewConstructorGuard()}
	if err := cmd.setName(name); err != nil {
		return RunJobNowCommand{}, err
	}
	return cmd, nil
}

func (c RunJobNowCommand) Validate() error {
	return c.guard.Validate(ErrRunJobNowCommandIsNotConstructed)
}

func (c RunJobNowCommand) Name() string {
	return c.name
}

func (c *RunJobNowCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}
