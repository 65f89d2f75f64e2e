package easythreads

import (
	"sync/atomic"
)

// MetricsPolicy defines hooks used by the manager to report task
// lifecycle activity.
//
// Implementations must be safe for concurrent use. All methods are
// expected to be lightweight and non-blocking.
type MetricsPolicy interface {

	// IncSubmitted increments the submitted tasks counter.
	IncSubmitted()

	// IncStarted increments the started (admitted) tasks counter.
	IncStarted()

	// IncSucceeded increments the succeeded tasks counter.
	IncSucceeded()

	// IncFailed increments the failed tasks counter.
	IncFailed()

	// AddRetried adds n to the retried tasks counter.
	//
	// This is used when RetryFailed re-admits a batch of failed
	// records as fresh tasks.
	AddRetried(n int64)
}

// AtomicMetrics is a lock-free metrics implementation backed by atomics.
//
// Writes are optimized for hot paths.
// Reads are intended for cold-path observation.
type AtomicMetrics struct {
	submitted atomic.Uint64
	started   atomic.Uint64
	succeeded atomic.Uint64
	failed    atomic.Uint64
	retried   atomic.Int64
}

// Submitted returns the total number of submitted tasks.
func (m *AtomicMetrics) Submitted() uint64 { return m.submitted.Load() }

// Started returns the total number of admitted tasks.
func (m *AtomicMetrics) Started() uint64 { return m.started.Load() }

// Succeeded returns the total number of tasks that finished cleanly.
func (m *AtomicMetrics) Succeeded() uint64 { return m.succeeded.Load() }

// Failed returns the total number of tasks that ended Failed.
func (m *AtomicMetrics) Failed() uint64 { return m.failed.Load() }

// Retried returns the total number of records re-admitted by RetryFailed.
func (m *AtomicMetrics) Retried() int64 { return m.retried.Load() }

func (m *AtomicMetrics) IncSubmitted() { m.submitted.Add(1) }
func (m *AtomicMetrics) IncStarted()   { m.started.Add(1) }
func (m *AtomicMetrics) IncSucceeded() { m.succeeded.Add(1) }
func (m *AtomicMetrics) IncFailed()    { m.failed.Add(1) }

func (m *AtomicMetrics) AddRetried(n int64) { m.retried.Add(n) }

//------------- NoopMetrics ----------------------------------

// NoopMetrics is a MetricsPolicy implementation that discards
// all metric updates.
//
// It can be used when metrics collection is disabled and
// zero overhead is desired.
type NoopMetrics struct{}

func (m *NoopMetrics) IncSubmitted()      {}
func (m *NoopMetrics) IncStarted()        {}
func (m *NoopMetrics) IncSucceeded()      {}
func (m *NoopMetrics) IncFailed()         {}
func (m *NoopMetrics) AddRetried(n int64) {}
