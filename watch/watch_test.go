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

func TestRunDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "schema.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(file, []byte("name: a\n"), 0o644))

	var calls atomic.Int32
	w, err := New(file, 50*time.Millisecond, func() error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte("name: b\n"), 0o644))
	}
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.EqualValues(t, 2, calls.Load())

	cancel()
	assert.NoError(t, <-done)
}

func TestRunReportsCallbackErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	first := true
	w, err := New(file, 20*time.Millisecond, func() error {
		if first {
			first = false
			return nil
		}
		return errors.New("broken schema")
	})
	require.NoError(t, err)
	defer w.Close()

	reported := make(chan error, 1)
	w.OnError = func(err error) {
		select {
		case reported <- err:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(file, []byte("models: ["), 0o644))
	select {
	case err := <-reported:
		assert.EqualError(t, err, "broken schema")
	case <-time.After(2 * time.Second):
		t.Fatal("callback error was not reported")
	}
}

func TestInitialRunError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "schema.yaml")
	w, err := New(file, 0, func() error { return errors.New("no schema") })
	require.NoError(t, err)
	defer w.Close()

	assert.EqualError(t, w.Run(context.Background()), "initial run: no schema")
}
