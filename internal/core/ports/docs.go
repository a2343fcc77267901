// Package ports defines the contracts between the scheduler core and its
// infrastructure: job persistence and transactions, the job store surface
// used by workflows, the configuration store, the process environment and
// the backup action.
package ports
