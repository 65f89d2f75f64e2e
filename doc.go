// Package easythreads provides a bounded-concurrency, priority-ordered
// task manager with per-task lifecycle tracking.
//
// Design goals
//
// The package is designed around the following principles:
//
//   - Admit at most Workers tasks concurrently, never more
//   - Strict priority admission with stable FIFO tie-breaking
//   - Every task tracked by name from submission to a terminal state
//   - Failures contained per task, never crossing into the scheduler
//     or sibling tasks
//
// Rather than optimizing raw throughput of anonymous jobs, easythreads
// optimizes for observability of named units of work: at any moment a
// caller can ask which tasks are pending, running, finished or failed,
// and retrieve each task's result or failure cause.
//
// Architecture overview
//
// The manager is composed of four loosely coupled layers:
//
//  1. Admission (admitQueue)
//     A min-heap ordered by (priority, submission sequence). Lower
//     priority values are admitted first; equal priorities keep
//     submission order.
//
//  2. Scheduling (Manager.scheduler)
//     A dedicated goroutine that pops admissible tasks while the
//     running count is below the worker cap, waking on submission and
//     completion signals with a bounded poll-interval fallback.
//
//  3. Execution (Manager.runTask)
//     Each admitted task runs on its own goroutine under a supervisor
//     that captures the result, error or panic, stamps start/finish
//     times and signals completion exactly once.
//
//  4. Registry (Manager registry methods)
//     A name-keyed map of task records guarded by one coarse mutex.
//     Status reads are linearizable with respect to submissions and
//     completions: a snapshot never observes a record mid-transition.
//
// Retry model
//
// Two retry paths exist and compose:
//
//   - A per-task RetryPolicy retries the callable in place with
//     exponential backoff before the task is declared Failed.
//   - RetryFailed copies every currently Failed record into a fresh
//     record under a disambiguated name and re-admits it, leaving the
//     original in the registry for audit.
//
// Cancellation
//
// Cancellation is cooperative. Cancel stops further admission and
// cancels the context passed to task callables; it never forcibly
// stops running work. Shutdown cancels, stops the scheduler and
// optionally waits for in-flight tasks.
//
// Progress
//
// A task runs exactly once. Callables may emit advisory progress with
// ReportProgress; the configured observer receives (name, completed,
// total) at admission, on each report, and at completion. Observer
// panics are contained and do not affect task state.
package easythreads
