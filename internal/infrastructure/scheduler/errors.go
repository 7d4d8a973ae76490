package scheduler

import "errors"

// Errors returned by NewSyncScheduler and Trigger.
var (
	ErrInvalidConfig       = errors.New("scheduler: invalid configuration")
	ErrUnknownJobKind      = errors.New("scheduler: no task registered for job kind")
	ErrSchedulerNotRunning = errors.New("scheduler: not running")
	ErrJobAlreadyRunning   = errors.New("scheduler: job already running")
)
