package easythreads

import (
	"context"
	"fmt"
	"sync"
	"time"

	boff "github.com/Andrej220/go-utils/backoff"
	lg "github.com/Andrej220/go-utils/zlog"
	"github.com/google/uuid"
)

// Manager is a bounded-concurrency, priority-ordered task scheduler.
// It owns the registry of task records, the admission queue and the
// running count; all three are guarded by one coarse mutex so that
// every registry read is linearizable with respect to submissions and
// completions.
type Manager[T any] struct {
	opts Options

	mu      sync.Mutex
	items   map[string]*record[T]
	queue   *admitQueue
	seq     uint64
	running int
	changed chan struct{} // closed and replaced on every lifecycle transition

	wake     chan struct{} // scheduler nudge
	stopCh   chan struct{} // closed by Shutdown; rejects new submissions
	doneCh   chan struct{} // closed when the scheduler goroutine exits
	stopOnce sync.Once

	baseCtx context.Context // canceled by Cancel and Shutdown
	cancel  context.CancelFunc

	wg sync.WaitGroup // in-flight task supervisors
}

// New creates a Manager and starts its scheduler goroutine. A
// non-positive Workers cap fails with ErrInvalidWorkers.
func New[T any](opts Options) (*Manager[T], error) {
	if opts.Workers <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkers, opts.Workers)
	}
	opts.FillDefaults()

	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager[T]{
		opts:    opts,
		items:   make(map[string]*record[T]),
		queue:   newAdmitQueue(),
		changed: make(chan struct{}),
		wake:    make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		baseCtx: ctx,
		cancel:  cancel,
	}
	go m.scheduler()
	return m, nil
}

// Submit registers a task and queues it for admission. The returned
// Handle reports the registry name (possibly auto-derived) and
// completion. Submission is allowed on a canceled manager (the task
// simply stays Pending) but not on a closed one.
func (m *Manager[T]) Submit(t Task[T]) (*Handle, error) {
	if t.Fn == nil {
		return nil, ErrNilFunc
	}
	select {
	case <-m.stopCh:
		return nil, ErrClosed
	default:
	}

	units := t.Units
	if units <= 0 {
		units = 1
	}
	pol := m.opts.DefaultRetry.overlay(t.Retry)

	m.mu.Lock()
	name := t.Name
	if name == "" {
		name = m.uniqueNameLocked(callableName(t.Fn))
	} else if _, exists := m.items[name]; exists {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	m.seq++
	rec := &record[T]{
		id:       uuid.New(),
		name:     name,
		priority: t.Priority,
		seq:      m.seq,
		payload:  t.Payload,
		fn:       t.Fn,
		units:    units,
		retry:    pol,
		state:    StatePending,
		done:     make(chan struct{}),
	}
	m.items[name] = rec
	m.queue.Push(name, rec.priority, rec.seq)
	m.notifyLocked()
	m.mu.Unlock()

	m.opts.Metrics.IncSubmitted()
	m.nudge()
	lg.FromContext(m.baseCtx).Info("task submitted",
		lg.String("task", name),
		lg.Int("priority", t.Priority),
	)
	return &Handle{id: rec.id, name: name, done: rec.done}, nil
}

// scheduler is a dedicated goroutine that:
//   - admits queued tasks while the running count is below the cap
//   - wakes on submission and completion signals
//   - falls back to a bounded poll interval if no signal arrives
func (m *Manager[T]) scheduler() {
	defer close(m.doneCh)

	ticker := time.NewTicker(m.opts.PollInterval)
	defer ticker.Stop()

	for {
		m.admit()
		select {
		case <-m.stopCh:
			return
		case <-m.wake:
		case <-ticker.C:
		}
	}
}

// admit pops admissible work while a slot is free. It short-circuits
// once cancellation is signaled; queued entries stay Pending.
func (m *Manager[T]) admit() {
	for {
		if m.baseCtx.Err() != nil {
			return
		}
		m.mu.Lock()
		if m.running >= m.opts.Workers {
			m.mu.Unlock()
			return
		}
		name, ok := m.queue.Pop()
		if !ok {
			m.mu.Unlock()
			return
		}
		rec := m.items[name]
		if rec == nil || rec.state != StatePending {
			// stale admission key; the registry is the source of truth
			m.mu.Unlock()
			continue
		}
		rec.state = StateRunning
		rec.startedAt = time.Now()
		m.running++
		m.notifyLocked()
		m.wg.Add(1)
		m.mu.Unlock()

		m.opts.Metrics.IncStarted()
		go m.runTask(rec)
	}
}

// runTask supervises exactly one record: it runs the callable with
// capture semantics, moves the record to a terminal state and signals
// completion exactly once. Nothing raised by the callable or the
// observer escapes this goroutine.
func (m *Manager[T]) runTask(rec *record[T]) {
	defer m.wg.Done()

	m.observe(rec.name, 0, rec.units)

	res, err := m.attempt(rec)

	m.mu.Lock()
	rec.finishedAt = time.Now()
	if err != nil {
		rec.err = err
		rec.state = StateFailed
	} else {
		rec.result = res
		rec.state = StateSucceeded
		rec.completed = rec.units
	}
	elapsed := rec.finishedAt.Sub(rec.startedAt)
	completed := rec.completed
	m.running--
	m.notifyLocked()
	m.mu.Unlock()

	close(rec.done)

	logger := lg.FromContext(m.baseCtx).With(lg.String("task", rec.name))
	if err != nil {
		m.opts.Metrics.IncFailed()
		logger.Error("task failed",
			lg.String("duration", elapsed.String()),
			lg.Any("error", err),
		)
	} else {
		m.opts.Metrics.IncSucceeded()
		logger.Info("task finished", lg.String("duration", elapsed.String()))
	}

	m.observe(rec.name, completed, rec.units)
	m.nudge()
}

// attempt runs the callable under the record's retry policy, backing
// off between attempts. Cancellation cuts the backoff wait short and
// returns the last error.
func (m *Manager[T]) attempt(rec *record[T]) (any, error) {
	pol := rec.retry
	bo := boff.New(pol.Initial, pol.Max, time.Now().UnixNano())

	var (
		res any
		err error
	)
	for attempt := 1; ; attempt++ {
		res, err = m.invoke(rec)
		if err == nil || attempt >= pol.Attempts || m.baseCtx.Err() != nil {
			return res, err
		}
		delay := bo.Next()
		lg.FromContext(m.baseCtx).Warn("task attempt failed; backing off",
			lg.String("task", rec.name),
			lg.Int("attempt", attempt),
			lg.String("sleep", delay.String()),
			lg.Any("error", err),
		)
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-m.baseCtx.Done():
			if !timer.Stop() {
				<-timer.C // drain if timer already fired
			}
			return res, err
		}
	}
}

// invoke calls the task function once, converting a panic into an
// ordinary error so it never aborts sibling tasks or the scheduler.
func (m *Manager[T]) invoke(rec *record[T]) (res any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("easythreads: task %s panicked: %v", rec.name, r)
		}
	}()
	ctx := withProgress(m.baseCtx, func(completed int) {
		m.mu.Lock()
		rec.completed = completed
		m.mu.Unlock()
		m.observe(rec.name, completed, rec.units)
	})
	return rec.fn(ctx, rec.payload)
}

// observe invokes the configured observer; its failures must not
// affect task state, so panics are swallowed with a log line.
func (m *Manager[T]) observe(name string, completed, total int) {
	ob := m.opts.Observer
	if ob == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			lg.FromContext(m.baseCtx).Warn("observer panicked",
				lg.String("task", name),
				lg.Any("panic", r),
			)
		}
	}()
	ob(name, completed, total)
}

// notifyLocked broadcasts a state change to Join waiters. Callers must
// hold m.mu.
func (m *Manager[T]) notifyLocked() {
	close(m.changed)
	m.changed = make(chan struct{})
}

// nudge wakes the scheduler without blocking.
func (m *Manager[T]) nudge() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// Join blocks until no queued work is admissible and no task is
// running, or until ctx expires. It returns the names still Pending or
// Running at return time, nil when fully drained. A canceled manager
// counts as drained once nothing is Running, since admission will not
// resume; its pending names are the return value.
func (m *Manager[T]) Join(ctx context.Context) []string {
	for {
		m.mu.Lock()
		drained := m.running == 0 && (m.queue.Len() == 0 || m.baseCtx.Err() != nil)
		if drained {
			left := m.unfinishedLocked()
			m.mu.Unlock()
			return left
		}
		ch := m.changed
		m.mu.Unlock()

		select {
		case <-ctx.Done():
			m.mu.Lock()
			left := m.unfinishedLocked()
			m.mu.Unlock()
			return left
		case <-ch:
		}
	}
}

// JoinTimeout is Join with a duration budget: negative blocks until
// drained, zero performs a single non-blocking check, positive waits
// at most that long.
func (m *Manager[T]) JoinTimeout(timeout time.Duration) []string {
	switch {
	case timeout < 0:
		return m.Join(context.Background())
	case timeout == 0:
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return m.Join(ctx)
	default:
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return m.Join(ctx)
	}
}

func (m *Manager[T]) unfinishedLocked() []string {
	var left []string
	for name, rec := range m.items {
		if !rec.state.Terminal() {
			left = append(left, name)
		}
	}
	return left
}

// Cancel signals cooperative cancellation: no further task is admitted
// and the context passed to running callables is canceled. Running
// work is never forcibly stopped.
func (m *Manager[T]) Cancel() {
	lg.FromContext(m.baseCtx).Warn("cancel signaled; admission stopped")
	m.cancel()
	m.nudge()

	m.mu.Lock()
	m.notifyLocked()
	m.mu.Unlock()
}

// Canceled reports whether cancellation has been signaled.
func (m *Manager[T]) Canceled() bool { return m.baseCtx.Err() != nil }

// Shutdown cancels, stops the scheduler and waits for in-flight tasks
// until ctx expires. With Options.Daemon set, running tasks are
// abandoned instead of awaited. Safe to call more than once.
func (m *Manager[T]) Shutdown(ctx context.Context) error {
	m.stopOnce.Do(func() {
		m.cancel()
		close(m.stopCh)

		m.mu.Lock()
		m.notifyLocked()
		m.mu.Unlock()
	})
	<-m.doneCh

	if m.opts.Daemon {
		return nil
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.wg.Wait()
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop is a blocking Shutdown.
func (m *Manager[T]) Stop() { _ = m.Shutdown(context.Background()) }

// ActiveCount returns the number of tasks currently Running.
func (m *Manager[T]) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// QueueLen returns the number of admission keys waiting in the queue.
func (m *Manager[T]) QueueLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Len()
}
