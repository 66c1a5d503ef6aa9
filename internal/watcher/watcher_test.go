package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	noop := func(string) {}

	_, err := New("", time.Second, noop)
	assert.Error(t, err)

	_, err = New(t.TempDir(), time.Second, nil)
	assert.Error(t, err)

	_, err = New(filepath.Join(t.TempDir(), "missing"), time.Second, noop)
	assert.Error(t, err)
}

func TestWatcher_ProcessesDroppedPDF(t *testing.T) {
	dir := t.TempDir()
	processed := make(chan string, 4)

	w, err := New(dir, 50*time.Millisecond, func(path string) {
		processed <- path
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	dropped := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(dropped, []byte("%PDF-1.4 body"), 0o644))

	select {
	case path := <-processed:
		assert.Equal(t, dropped, path)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the dropped PDF to be processed")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the watcher to shut down")
	}
}

func TestWatcher_IgnoresNonPDFFiles(t *testing.T) {
	dir := t.TempDir()
	processed := make(chan string, 4)

	w, err := New(dir, 50*time.Millisecond, func(path string) {
		processed <- path
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case path := <-processed:
		t.Fatalf("non-PDF file was processed: %s", path)
	case <-time.After(300 * time.Millisecond):
		// Expected: nothing happened.
	}

	cancel()
	<-done
}

func TestWatcher_DebouncesRepeatedWrites(t *testing.T) {
	dir := t.TempDir()
	processed := make(chan string, 8)

	w, err := New(dir, 150*time.Millisecond, func(path string) {
		processed <- path
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Simulate a chunked export: several writes in quick succession.
	path := filepath.Join(dir, "chunked.pdf")
	f, err := os.Create(path)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = f.WriteString("chunk\n")
		require.NoError(t, err)
		require.NoError(t, f.Sync())
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, f.Close())

	select {
	case <-processed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the debounced file")
	}

	// The quiet writes collapsed into a single callback.
	select {
	case path := <-processed:
		t.Fatalf("file processed more than once: %s", path)
	case <-time.After(400 * time.Millisecond):
	}

	cancel()
	<-done
}
