// Package errs provides the error kinds shared by the scheduler service.
//
// Every kind follows the same pattern:
//   - a sentinel error (ErrObjectNotFound, ErrValueIsInvalid, ...) for errors.Is
//   - a struct carrying the offending parameter and an optional cause
//   - constructors with and without cause
//   - Unwrap returning the sentinel
//
// Adapters translate the sentinels into transport responses, for example
// ErrObjectNotFound becomes HTTP 404 in the run-now endpoint.
package errs
