// Package jobs runs persisted jobs from the Postgres job store.
//
// A Scheduler keeps the handler definitions of the process, claims due job
// documents on a robfig/cron tick and executes each claimed job in its own
// goroutine. Workflows schedule and cancel jobs through the same Scheduler,
// which the composition root passes to them explicitly.
//
//	scheduler := jobs.NewScheduler(uowFactory, ping, jobs.Config{}, metrics, logger)
//	workflow := export.NewWorkflow(scheduler, backuper, ...)
//	if err := scheduler.Start(jobs.NewResolver(workflow.RunJob, jobs.AlertsHandler(logger), export.JobNames()...)); err != nil {
//		return err
//	}
//	defer scheduler.Stop(ctx)
//
// # Claiming
//
// Every tick locks the next due document among the defined names inside a
// transaction (SELECT ... FOR UPDATE SKIP LOCKED), highest priority first and
// then earliest due time, until nothing is due. A lock older than the lock
// lifetime is considered stale and the document may be claimed again.
//
// # Readiness
//
// On the first tick that reaches the store, every persisted job name gets a
// handler from the Resolver. A failed readiness check is logged and retried on
// the next tick.
package jobs
