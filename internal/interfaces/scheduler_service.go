package interfaces

// SchedulerService runs periodic index rebuilds on a cron schedule.
type SchedulerService interface {
	// Start begins the scheduler with the given cron expression. An empty
	// expression disables scheduled rebuilds.
	Start(cronExpr string) error

	// Stop halts the scheduler and waits for any in-flight run to finish.
	Stop()

	// IsRunning reports whether the scheduler has been started.
	IsRunning() bool
}
