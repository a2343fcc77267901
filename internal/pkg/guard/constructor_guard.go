// Package guard holds the ConstructorGuard used by command objects to reject
// zero values that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built by its constructor. Embed it in a
// struct and call Validate from the struct's own Validate method:
//
//	type CreateExportJobCommand struct {
//	    spec  export.ScheduleSpec
//	    guard guard.ConstructorGuard
//	}
//
//	func (c CreateExportJobCommand) Validate() error {
//	    return c.guard.Validate(ErrCreateExportJobCommandIsNotConstructed)
//	}
//
// The zero value is "not constructed".
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
