package easythreads

import (
	"container/heap"
)

// entry is one admission key: the record name plus the ordering pair.
// The registry remains the source of truth for the record itself; a
// stale entry whose record has been removed is skipped at pop time.
type entry struct {
	name     string
	priority int
	seq      uint64

	// index is maintained by the heap. It stores the element's
	// current position and is required by heap.Interface.
	index int
}

// admitQueue is the priority-ordered holding area for tasks not yet
// started. Smaller priority values pop first; among equal priorities
// the earlier submission sequence wins, so ties are FIFO-stable.
//
// The queue has no locking of its own: every call happens under the
// manager's mutex, which is the single synchronization boundary for
// all scheduler state.
type admitQueue struct {
	pq admitHeap
}

func newAdmitQueue() *admitQueue {
	q := &admitQueue{}
	q.pq = make(admitHeap, 0, initialAdmitCapacity)
	heap.Init(&q.pq)
	return q
}

const initialAdmitCapacity = 64

// Push inserts an admission key for the named record.
func (q *admitQueue) Push(name string, priority int, seq uint64) {
	heap.Push(&q.pq, &entry{name: name, priority: priority, seq: seq})
}

// Pop removes and returns the name with the smallest (priority, seq).
// If the queue is empty, Pop returns "" and false.
func (q *admitQueue) Pop() (string, bool) {
	if q.pq.Len() == 0 {
		return "", false
	}
	e := heap.Pop(&q.pq).(*entry)
	return e.name, true
}

// Len returns the number of admission keys currently queued.
func (q *admitQueue) Len() int {
	return q.pq.Len()
}

// admitHeap — min-heap on (priority, seq)
type admitHeap []*entry

func (pq admitHeap) Len() int { return len(pq) }
func (pq admitHeap) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority < pq[j].priority
	}
	return pq[i].seq < pq[j].seq
}
func (pq admitHeap) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *admitHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*pq)
	*pq = append(*pq, e)
}

func (pq *admitHeap) Pop() any {
	old := *pq
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*pq = old[:n-1]
	return e
}
