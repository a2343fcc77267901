// Package export holds the value objects of the automatic database export:
// the schedule requested through the API, the payload stored with the export
// jobs, the cadence rules and the due-time arithmetic.
//
// Two cadences exist. Production exports run daily at a UTC hour and keep
// backups for 60 days. Accelerated exports (schedule units "minutes") are a
// development aid: the initial job fires one minute after creation and
// backups older than five minutes are purged.
package export
