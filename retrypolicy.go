package easythreads

import (
	"time"
)

const (
	defaultAttempts     = 1
	defaultInitialRetry = 200 * time.Millisecond
	defaultMaxRetry     = 5 * time.Second
)

// RetryPolicy describes how many times and how often a task's callable
// is retried in place before the task is declared Failed.
// Zero values are treated as "use manager defaults".
type RetryPolicy struct {
	// Attempts is the maximum number of tries for the callable.
	// The default of 1 means a failure is recorded immediately;
	// re-running a Failed task is then the job of RetryFailed.
	Attempts int

	// Initial is the first backoff duration between attempts.
	Initial time.Duration

	// Max is the cap for backoff duration.
	Max time.Duration
}

// GetDefaultRP returns a pointer to the default retry policy used by
// the manager. Useful in tests or when constructing a manager with the
// same defaults.
func GetDefaultRP() *RetryPolicy {
	rp := RetryPolicy{
		Attempts: defaultAttempts,
		Initial:  defaultInitialRetry,
		Max:      defaultMaxRetry,
	}
	return &rp
}

// overlay returns pol with any positive fields of per applied on top.
func (pol RetryPolicy) overlay(per *RetryPolicy) RetryPolicy {
	if per == nil {
		return pol
	}
	if per.Attempts > 0 {
		pol.Attempts = per.Attempts
	}
	if per.Initial > 0 {
		pol.Initial = per.Initial
	}
	if per.Max > 0 {
		pol.Max = per.Max
	}
	return pol
}
