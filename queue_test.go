package easythreads

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmitQueueEmpty(t *testing.T) {
	q := newAdmitQueue()

	name, ok := q.Pop()
	assert.False(t, ok)
	assert.Empty(t, name)
	assert.Zero(t, q.Len())
}

func TestAdmitQueuePriorityOrder(t *testing.T) {
	q := newAdmitQueue()
	q.Push("low", 3, 1)
	q.Push("high", 1, 2)
	q.Push("mid", 2, 3)
	q.Push("negative", -1, 4)
	require.Equal(t, 4, q.Len())

	var got []string
	for {
		name, ok := q.Pop()
		if !ok {
			break
		}
		got = append(got, name)
	}
	assert.Equal(t, []string{"negative", "high", "mid", "low"}, got)
}

func TestAdmitQueueFIFOTieBreak(t *testing.T) {
	q := newAdmitQueue()
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		q.Push(name, 5, uint64(i+1))
	}

	var got []string
	for {
		name, ok := q.Pop()
		if !ok {
			break
		}
		got = append(got, name)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got)
}

func TestAdmitQueueInterleaved(t *testing.T) {
	q := newAdmitQueue()
	q.Push("first", 1, 1)

	name, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, "first", name)

	// re-pushing a name is allowed; the registry arbitrates staleness
	q.Push("first", 1, 2)
	q.Push("second", 0, 3)

	name, _ = q.Pop()
	assert.Equal(t, "second", name)
	name, _ = q.Pop()
	assert.Equal(t, "first", name)
}
