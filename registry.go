package easythreads

import (
	"fmt"
	"sort"
)

// Registry queries. Every method takes the manager mutex, so a
// returned snapshot or mapping reflects one consistent instant: a
// record is never observed mid-transition.

// Status returns a point-in-time snapshot of the named record.
func (m *Manager[T]) Status(name string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.items[name]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return rec.snapshot(), nil
}

// Result returns the named task's result. A Failed record yields its
// recorded failure cause as the error; a record that has not finished
// yields a nil result.
func (m *Manager[T]) Result(name string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.items[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if rec.err != nil {
		return nil, rec.err
	}
	return rec.result, nil
}

// AllNames returns every name currently held in the registry,
// terminal records included, in sorted order.
func (m *Manager[T]) AllNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.items))
	for name := range m.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActiveNames returns the names of records currently Running, sorted.
func (m *Manager[T]) ActiveNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var names []string
	for name, rec := range m.items {
		if rec.state == StateRunning {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Results returns name -> result for every record in the registry.
// Records that have not succeeded map to nil.
func (m *Manager[T]) Results() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]any, len(m.items))
	for name, rec := range m.items {
		out[name] = rec.result
	}
	return out
}

// Failures returns name -> failure cause for records in state Failed.
func (m *Manager[T]) Failures() map[string]error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]error)
	for name, rec := range m.items {
		if rec.state == StateFailed {
			out[name] = rec.err
		}
	}
	return out
}

// RemoveFinished evicts every terminal record from the registry and
// returns the evicted names, sorted. Pending and Running records are
// untouched.
func (m *Manager[T]) RemoveFinished() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed []string
	for name, rec := range m.items {
		if rec.state.Terminal() {
			removed = append(removed, name)
			delete(m.items, name)
		}
	}
	sort.Strings(removed)
	return removed
}

// Idle reports whether nothing is queued and nothing is running.
func (m *Manager[T]) Idle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Len() == 0 && m.running == 0
}
