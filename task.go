package easythreads

import (
	"context"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of a task record. Transitions are
// strictly forward: Pending -> Running -> Succeeded | Failed. A
// terminal record is never revisited; re-running a failed task always
// creates a fresh record.
type State int32

const (
	StatePending State = iota
	StateRunning
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateRunning:
		return "Running"
	case StateSucceeded:
		return "Succeeded"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether s is a final state.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// TaskFunc is the callable executed for a task. The payload is never
// introspected by the manager. The context is canceled by Cancel and
// Shutdown; honoring it is cooperative.
type TaskFunc[T any] func(ctx context.Context, payload T) (any, error)

// Task describes a unit of work submitted to a Manager.
type Task[T any] struct {
	// Name identifies the task in the registry. If empty, a name is
	// derived from Fn's identity and disambiguated. An explicit name
	// that collides with a live record fails with ErrDuplicateName.
	Name string

	// Priority orders admission: lower values are admitted first.
	// Equal priorities keep submission order.
	Priority int

	// Payload is passed to Fn when executed.
	Payload T

	// Fn is the work itself.
	Fn TaskFunc[T]

	// Units is the total number of progress units reported to the
	// observer. Zero means 1.
	Units int

	// Retry overrides the manager's default in-place retry policy.
	// Non-zero fields take effect, zero fields keep the default.
	Retry *RetryPolicy
}

// record is the registry's mutable run-state for one task. All fields
// past the immutable header are guarded by the manager mutex.
type record[T any] struct {
	id       uuid.UUID
	name     string
	priority int
	seq      uint64
	payload  T
	fn       TaskFunc[T]
	units    int
	retry    RetryPolicy

	state      State
	completed  int // last reported progress, units
	result     any
	err        error
	startedAt  time.Time
	finishedAt time.Time

	done chan struct{} // closed exactly once, on reaching a terminal state
}

func (r *record[T]) snapshot() Snapshot {
	return Snapshot{
		ID:         r.id,
		Name:       r.name,
		Priority:   r.priority,
		State:      r.state,
		Completed:  r.completed,
		Units:      r.units,
		Result:     r.result,
		Err:        r.err,
		StartedAt:  r.startedAt,
		FinishedAt: r.finishedAt,
	}
}

// Snapshot is a point-in-time copy of a task record. It is detached
// from the registry: once returned it never changes.
type Snapshot struct {
	ID         uuid.UUID
	Name       string
	Priority   int
	State      State
	Completed  int // advisory progress units reported so far
	Units      int
	Result     any
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns how long the task has been (or was) running. Zero
// while Pending; measured against the current time while Running.
func (s Snapshot) Duration() time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	if s.FinishedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// Handle refers to one submitted task.
type Handle struct {
	id   uuid.UUID
	name string
	done <-chan struct{}
}

// ID returns the unique run ID of the record behind this handle.
func (h *Handle) ID() uuid.UUID { return h.id }

// Name returns the registry name the task was admitted under, which
// may differ from the submitted name when it was auto-derived.
func (h *Handle) Name() string { return h.name }

// Done returns a channel closed when the task reaches a terminal state.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Wait blocks until the task reaches a terminal state or ctx expires.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type progressKey struct{}

// ReportProgress emits advisory progress from inside a task callable.
// completed is the number of units done so far. Outside a task context
// it is a no-op.
func ReportProgress(ctx context.Context, completed int) {
	if report, ok := ctx.Value(progressKey{}).(func(int)); ok {
		report(completed)
	}
}

func withProgress(ctx context.Context, report func(int)) context.Context {
	return context.WithValue(ctx, progressKey{}, report)
}

// callableName derives a registry base name from a function's runtime
// identity, keeping only the last path element.
func callableName(fn any) string {
	pc := reflect.ValueOf(fn).Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "task"
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "task"
	}
	return name
}
