package easythreads

import (
	"time"
)

const (
	defaultPollInterval = 100 * time.Millisecond
)

// ProgressFunc observes task progress. It is invoked with the task
// name, the number of completed units and the task's total units: once
// at admission (completed == 0), once per ReportProgress call from the
// callable, and once at completion (completed == total).
//
// Implementations must be safe for concurrent use; panics inside the
// observer are contained and do not affect task state.
type ProgressFunc func(name string, completed, total int)

// Options configure a Manager.
//
// Workers is required and validated by New; all other zero values are
// replaced with sensible defaults in FillDefaults.
type Options struct {
	// Workers is the concurrency cap: at most this many tasks run at
	// any instant. Zero or negative is a configuration error.
	Workers int

	// PollInterval bounds how long the scheduler sleeps between
	// admission checks when no wake-up signal arrives.
	PollInterval time.Duration

	// DefaultRetry is the in-place retry policy applied to tasks that
	// do not carry their own.
	DefaultRetry RetryPolicy

	// Observer, if set, receives progress notifications.
	Observer ProgressFunc

	// Metrics receives lifecycle counters. Defaults to NoopMetrics.
	Metrics MetricsPolicy

	// Daemon controls teardown: when true, Shutdown abandons running
	// tasks instead of waiting for them, mirroring detached worker
	// threads that die with the process.
	Daemon bool
}

// FillDefaults replaces unset optional fields with defaults. Workers
// is deliberately left alone: an invalid cap must fail construction,
// not silently become a default.
func (o *Options) FillDefaults() {
	if o.PollInterval <= 0 {
		o.PollInterval = defaultPollInterval
	}
	if o.DefaultRetry.Attempts <= 0 {
		o.DefaultRetry.Attempts = defaultAttempts
	}
	if o.DefaultRetry.Initial <= 0 {
		o.DefaultRetry.Initial = defaultInitialRetry
	}
	if o.DefaultRetry.Max <= 0 {
		o.DefaultRetry.Max = defaultMaxRetry
	}
	if o.Metrics == nil {
		o.Metrics = &NoopMetrics{}
	}
}
