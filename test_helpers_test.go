package easythreads_test

import (
	"runtime"
	"testing"
	"time"

	et "github.com/sahillihas/EasyThreads"
)

func newTestOptions(workers int) et.Options {
	return et.Options{
		Workers:      workers,
		PollInterval: 5 * time.Millisecond,
	}
}

func newTestManager(t *testing.T, workers int) *et.Manager[int] {
	t.Helper()

	m, err := et.New[int](newTestOptions(workers))
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	t.Cleanup(m.Stop)
	return m
}

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		runtime.Gosched()
	}
	t.Fatal("condition not satisfied before timeout")
}
