package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) record(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestWatcher_ReportsNewFile(t *testing.T) {
	dir := t.TempDir()
	var rec recorder

	w := New(dir, []string{".txt"}, rec.record, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	writeFile(t, filepath.Join(dir, "cv.txt"), "golang")
	writeFile(t, filepath.Join(dir, "skip.xyz"), "nope")

	time.Sleep(300 * time.Millisecond)

	got := rec.snapshot()
	if len(got) < 1 {
		t.Fatalf("expected at least one report, got %v", got)
	}
	for _, p := range got {
		if strings.HasSuffix(p, "skip.xyz") {
			t.Errorf("non-matching extension reported: %v", got)
		}
	}
}

func TestWatcher_NewDirectoryIsWatched(t *testing.T) {
	dir := t.TempDir()
	var rec recorder

	w := New(dir, []string{".txt"}, rec.record, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	nested := filepath.Join(dir, "backend", "senior")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(nested, "deep.txt"), "sql")

	time.Sleep(500 * time.Millisecond)

	found := false
	for _, p := range rec.snapshot() {
		if strings.HasSuffix(p, "deep.txt") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected deep.txt to be reported, got %v", rec.snapshot())
	}
}

func TestWatcher_SyncExisting(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "old.txt"), "python")
	writeFile(t, filepath.Join(dir, "old.bin"), "x")

	var rec recorder
	w := New(dir, []string{".txt"}, rec.record, WithDebounce(10*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	w.SyncExisting()
	time.Sleep(200 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 1 || !strings.HasSuffix(got[0], "old.txt") {
		t.Errorf("expected exactly old.txt, got %v", got)
	}
}

func TestWatcher_CreatesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data", "cv")

	w := New(root, nil, nil)
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if _, err := os.Stat(root); err != nil {
		t.Errorf("root should exist after Start: %v", err)
	}
}

func TestMatchExtension(t *testing.T) {
	tests := []struct {
		path       string
		extensions []string
		want       bool
	}{
		{"/a/cv.pdf", []string{".pdf", ".docx"}, true},
		{"/a/cv.PDF", []string{".pdf"}, true},
		{"/a/cv.odt", []string{".pdf"}, false},
		{"/a/cv", nil, true},
	}
	for _, tt := range tests {
		w := New("/a", tt.extensions, nil)
		if got := w.matchExtension(tt.path); got != tt.want {
			t.Errorf("matchExtension(%q, %v) = %v, want %v", tt.path, tt.extensions, got, tt.want)
		}
	}
}
