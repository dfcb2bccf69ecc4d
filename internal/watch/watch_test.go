// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 50 * time.Millisecond

// start runs w in the background and returns a channel receiving one value
// per action call.
func start(t *testing.T, w *Watcher, action Action) (<-chan struct{}, context.CancelFunc) {
	t.Helper()
	calls := make(chan struct{}, 16)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(ctx context.Context) error {
			calls <- struct{}{}
			if action != nil {
				return action(ctx)
			}
			return nil
		})
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("Run did not return after cancel")
		}
		w.Close()
	})
	// Give the goroutine a moment to enter its select loop.
	time.Sleep(20 * time.Millisecond)
	return calls, cancel
}

func waitCall(t *testing.T, calls <-chan struct{}) {
	t.Helper()
	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatal("action was not called")
	}
}

func assertNoCall(t *testing.T, calls <-chan struct{}, wait time.Duration) {
	t.Helper()
	select {
	case <-calls:
		t.Fatal("unexpected action call")
	case <-time.After(wait):
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Config{}, nil)
	assert.ErrorIs(t, err, ErrNoPaths)

	_, err = New(Config{Paths: []string{filepath.Join(t.TempDir(), "missing.yaml")}}, nil)
	assert.Error(t, err)
}

func TestRun_FileChangeTriggersOnce(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "course.yaml")
	require.NoError(t, os.WriteFile(file, []byte("title: a\n"), 0644))

	w, err := New(Config{Paths: []string{file}, Debounce: testDebounce}, nil)
	require.NoError(t, err)
	calls, _ := start(t, w, nil)

	// A burst of writes collapses into one call.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(file, []byte("title: b\n"), 0644))
	}
	waitCall(t, calls)
	assertNoCall(t, calls, 4*testDebounce)
}

func TestRun_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "course.yaml")
	require.NoError(t, os.WriteFile(file, []byte("title: a\n"), 0644))

	w, err := New(Config{Paths: []string{file}, Debounce: testDebounce}, nil)
	require.NoError(t, err)
	calls, _ := start(t, w, nil)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	assertNoCall(t, calls, 4*testDebounce)
}

func TestRun_ImageDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "course.yaml")
	images := filepath.Join(dir, "images")
	require.NoError(t, os.WriteFile(file, []byte("title: a\n"), 0644))
	require.NoError(t, os.Mkdir(images, 0755))

	w, err := New(Config{Paths: []string{file, images}, Debounce: testDebounce}, nil)
	require.NoError(t, err)
	calls, _ := start(t, w, nil)

	require.NoError(t, os.WriteFile(filepath.Join(images, "1.png"), []byte{0x89, 'P', 'N', 'G'}, 0644))
	waitCall(t, calls)
}

func TestRun_ActionErrorKeepsWatching(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "course.yaml")
	require.NoError(t, os.WriteFile(file, []byte("title: a\n"), 0644))

	w, err := New(Config{Paths: []string{file}, Debounce: testDebounce}, nil)
	require.NoError(t, err)

	var n atomic.Int32
	calls, _ := start(t, w, func(ctx context.Context) error {
		if n.Add(1) == 1 {
			panic("boom")
		}
		return errors.New("still failing")
	})

	require.NoError(t, os.WriteFile(file, []byte("title: b\n"), 0644))
	waitCall(t, calls)
	time.Sleep(2 * testDebounce)
	require.NoError(t, os.WriteFile(file, []byte("title: c\n"), 0644))
	waitCall(t, calls)
	assert.EqualValues(t, 2, n.Load())
}

func TestClose_Idempotent(t *testing.T) {
	dir := t.TempDir()
	w, err := New(Config{Paths: []string{dir}}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounce)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
