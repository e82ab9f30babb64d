package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesRapidTriggers(t *testing.T) {
	var count atomic.Int32
	var mu sync.Mutex
	var last ChangeEvent

	d := NewDebouncer(50*time.Millisecond, func(e ChangeEvent) {
		count.Add(1)
		mu.Lock()
		last = e
		mu.Unlock()
	})
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Trigger(ChangeEvent{Path: "reqs.yaml", ChangeType: "write"})
		time.Sleep(10 * time.Millisecond)
	}
	d.Trigger(ChangeEvent{Path: "reqs.yaml", ChangeType: "rename"})

	time.Sleep(150 * time.Millisecond)

	if got := count.Load(); got != 1 {
		t.Errorf("expected 1 callback invocation, got %d", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if last.ChangeType != "rename" {
		t.Errorf("expected the most recent event, got %+v", last)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	var count atomic.Int32
	d := NewDebouncer(50*time.Millisecond, func(ChangeEvent) {
		count.Add(1)
	})

	d.Trigger(ChangeEvent{})
	d.Stop()

	time.Sleep(100 * time.Millisecond)

	if got := count.Load(); got != 0 {
		t.Errorf("expected 0 callback invocations after stop, got %d", got)
	}
}

func TestFileWatcher_DetectsWatchedFileWrite(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "requirements.yaml")
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{manifest, other} {
		if err := os.WriteFile(p, []byte("initial"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	var eventCount atomic.Int32
	var mu sync.Mutex
	var paths []string

	w, err := NewFileWatcher(50*time.Millisecond, func(e ChangeEvent) {
		eventCount.Add(1)
		mu.Lock()
		paths = append(paths, e.Path)
		mu.Unlock()
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Add(manifest); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = w.Run(ctx)
	}()

	// Give watcher time to start
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(other, []byte("ignored"), 0600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(150 * time.Millisecond)
	if eventCount.Load() != 0 {
		t.Fatal("changes to unwatched files must be ignored")
	}

	if err := os.WriteFile(manifest, []byte("modified"), 0600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	cancel()

	if eventCount.Load() == 0 {
		t.Fatal("expected at least one change event")
	}
	mu.Lock()
	defer mu.Unlock()
	if filepath.Base(paths[0]) != "requirements.yaml" {
		t.Errorf("unexpected path %s", paths[0])
	}
}

func TestFileWatcher_ContextCancellation(t *testing.T) {
	dir := t.TempDir()

	w, err := NewFileWatcher(50*time.Millisecond, func(ChangeEvent) {})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Add(filepath.Join(dir, "requirements.yaml")); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("watcher did not stop after context cancellation")
	}
}

func TestFileWatcher_CloseAfterFailedAdd(t *testing.T) {
	w, err := NewFileWatcher(50*time.Millisecond, func(ChangeEvent) {})
	if err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(t.TempDir(), "gone", "requirements.yaml")
	if err := w.Add(missing); err == nil {
		t.Fatal("expected error watching a file in a missing directory")
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
