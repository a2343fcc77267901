// Package job models the persisted job document driven by the scheduler.
//
// A Job carries a name, an opaque JSON payload, a priority and the bookkeeping
// columns the processing loop relies on:
//
//	nextRunAt       when the job is due (nil: never again)
//	repeatInterval  empty for one-shot jobs, interval text for recurring ones
//	lockedAt        set while an execution holds the job
//	lastFinishedAt  set after a successful execution only
//
// Two document types exist. TypeNormal jobs are inserted per Schedule call;
// TypeSingle jobs are upserted by name so Every never duplicates a recurring job.
package job
