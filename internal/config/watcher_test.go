package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_DeliversWriteEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWatcher([]string{path}, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events():
		if ev.Path != path {
			t.Fatalf("event path = %q, want %q", ev.Path, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no event within 3s")
	}
}

func TestWatcher_ClosesOnContextCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWatcher([]string{path}, nil)
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()

	select {
	case _, ok := <-drain(w.Events()):
		if ok {
			t.Fatal("events channel should close")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("events channel not closed within 3s")
	}
}

// drain skips any buffered events so the close can be observed.
func drain(ch <-chan ReloadEvent) <-chan ReloadEvent {
	out := make(chan ReloadEvent)
	go func() {
		defer close(out)
		for range ch {
		}
	}()
	return out
}
