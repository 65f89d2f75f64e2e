package easythreads_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	et "github.com/sahillihas/EasyThreads"
)

func TestFileSinkWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	sink := et.NewFileSink(path)

	if err := sink.Write("Hello"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := sink.Write("World"); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 || lines[0] != "Hello" || lines[1] != "World" {
		t.Fatalf("lines = %v; want [Hello World]", lines)
	}
}

func TestFileSinkConcurrentAppend(t *testing.T) {
	const writers = 20

	path := filepath.Join(t.TempDir(), "out.txt")
	sink := et.NewFileSink(path)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = sink.Write(fmt.Sprintf("line-%02d", i))
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != writers {
		t.Fatalf("got %d lines; want %d", len(lines), writers)
	}
	sort.Strings(lines)
	for i, line := range lines {
		if want := fmt.Sprintf("line-%02d", i); line != want {
			t.Fatalf("line %d = %q; want %q (no interleaved writes)", i, line, want)
		}
	}
}

func TestFileSinkFromTasks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	sink := et.NewFileSink(path)

	m := newTestManager(t, 4)
	for i := 0; i < 8; i++ {
		_, err := m.Submit(et.Task[int]{
			Payload: i,
			Fn: func(_ context.Context, n int) (any, error) {
				return nil, sink.Write(fmt.Sprintf("message %d", n))
			},
		})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if left := m.JoinTimeout(5 * time.Second); len(left) != 0 {
		t.Fatalf("join left %v; want none", left)
	}
	if failures := m.Failures(); len(failures) != 0 {
		t.Fatalf("failures = %v; want none", failures)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("got %d lines; want 8", len(lines))
	}
}
