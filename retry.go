package easythreads

import (
	"fmt"
	"sort"

	lg "github.com/Andrej220/go-utils/zlog"
	"github.com/google/uuid"
)

// RetryFailed re-submits every record that is Failed at the time of
// the call. For each one, a fresh record is created with the same
// callable, payload, priority, units and retry policy under a
// disambiguated name; the original Failed record stays in the registry
// for audit. Returns the derived names, in the original submission
// order of the records they retry.
//
// Calling RetryFailed again targets only records Failed at that later
// time, so repeated calls are not idempotent when retries themselves
// fail.
func (m *Manager[T]) RetryFailed() []string {
	m.mu.Lock()

	var failed []*record[T]
	for _, rec := range m.items {
		if rec.state == StateFailed {
			failed = append(failed, rec)
		}
	}
	sort.Slice(failed, func(i, j int) bool { return failed[i].seq < failed[j].seq })

	derived := make([]string, 0, len(failed))
	for _, old := range failed {
		name := m.uniqueNameLocked(old.name)
		m.seq++
		rec := &record[T]{
			id:       uuid.New(),
			name:     name,
			priority: old.priority,
			seq:      m.seq,
			payload:  old.payload,
			fn:       old.fn,
			units:    old.units,
			retry:    old.retry,
			state:    StatePending,
			done:     make(chan struct{}),
		}
		m.items[name] = rec
		m.queue.Push(name, rec.priority, rec.seq)
		derived = append(derived, name)
	}
	if len(derived) > 0 {
		m.notifyLocked()
	}
	m.mu.Unlock()

	if len(derived) > 0 {
		m.opts.Metrics.AddRetried(int64(len(derived)))
		m.nudge()
		lg.FromContext(m.baseCtx).Info("failed tasks re-submitted",
			lg.Int("count", len(derived)),
		)
	}
	return derived
}

// uniqueNameLocked disambiguates base against the registry: base, then
// base-2, base-3, and so on. Used by both the submission and retry
// paths. Callers must hold m.mu.
func (m *Manager[T]) uniqueNameLocked(base string) string {
	if _, ok := m.items[base]; !ok {
		return base
	}
	for i := 2; ; i++ {
		name := fmt.Sprintf("%s-%d", base, i)
		if _, ok := m.items[name]; !ok {
			return name
		}
	}
}
