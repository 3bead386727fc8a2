// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	mu       sync.Mutex
	runCount int
	err      error
	block    bool
}

func (m *mockWorker) Run(ctx context.Context) error {
	m.mu.Lock()
	m.runCount++
	m.mu.Unlock()

	if m.block {
		<-ctx.Done()
	}
	return m.err
}

func (m *mockWorker) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runCount
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := NewWorkers(w1, w2, nil, w3)
	require.NoError(t, ws.Run(context.Background()))

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.count() != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.count())
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not block or fail on an empty workers list
	assert.NoError(t, ws.Run(context.Background()))
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	assert.NoError(t, ws.Run(context.Background()))
}

func TestWorkers_Run_FirstErrorCancelsOthers(t *testing.T) {
	boom := errors.New("listener failed")
	blocking := &mockWorker{block: true}
	failing := &mockWorker{err: boom}

	done := make(chan error, 1)
	go func() { done <- NewWorkers(blocking, failing).Run(context.Background()) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop after a failure")
	}
}

func startLoop(t *testing.T) (*Loop, context.CancelFunc) {
	t.Helper()
	l := NewLoop(8, nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		_ = l.Run(ctx)
		close(stopped)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})
	return l, cancel
}

func TestLoop_RunsInPostOrder(t *testing.T) {
	l, _ := startLoop(t)

	var got []int
	for i := 0; i < 5; i++ {
		require.NoError(t, l.Post(func(context.Context) { got = append(got, i) }))
	}
	// Do waits for everything posted before it
	require.NoError(t, l.Do(context.Background(), func(context.Context) error { return nil }))

	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestLoop_DoReturnsResult(t *testing.T) {
	l, _ := startLoop(t)
	want := errors.New("rejected")

	err := l.Do(context.Background(), func(context.Context) error { return want })
	assert.ErrorIs(t, err, want)
}

type ctxKey struct{}

func TestLoop_DoKeepsCallerValues(t *testing.T) {
	l, _ := startLoop(t)
	ctx := context.WithValue(context.Background(), ctxKey{}, "trace-7")

	var seen any
	require.NoError(t, l.Do(ctx, func(ctx context.Context) error {
		seen = ctx.Value(ctxKey{})
		return nil
	}))
	assert.Equal(t, "trace-7", seen)
}

func TestLoop_PostAfterStop(t *testing.T) {
	l, cancel := startLoop(t)
	cancel()

	assert.Eventually(t, func() bool {
		return errors.Is(l.Post(func(context.Context) {}), ErrLoopStopped)
	}, time.Second, 5*time.Millisecond)

	err := l.Do(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrLoopStopped)
}

func TestLoop_DoHonorsCallerContext(t *testing.T) {
	l := NewLoop(1, nil) // never started
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Do(ctx, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoop_AfterFuncRunsOnLoop(t *testing.T) {
	l, _ := startLoop(t)
	fired := make(chan struct{})

	l.AfterFunc(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("delayed call did not run")
	}
}

func TestLoop_AfterFuncStop(t *testing.T) {
	l, _ := startLoop(t)
	var mu sync.Mutex
	fired := false

	timer := l.AfterFunc(20*time.Millisecond, func() {
		mu.Lock()
		fired = true
		mu.Unlock()
	})
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	time.Sleep(60 * time.Millisecond)
	require.NoError(t, l.Do(context.Background(), func(context.Context) error { return nil }))

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, fired)
}

func TestLoop_StopAfterQueuedStillCancels(t *testing.T) {
	l := NewLoop(4, nil)
	fired := false

	timer := l.AfterFunc(time.Millisecond, func() { fired = true })
	// let the timer enqueue its call before the loop runs
	assert.Eventually(t, func() bool { return len(l.queue) == 1 }, time.Second, time.Millisecond)
	assert.True(t, timer.Stop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = l.Run(ctx) }()
	defer cancel()

	require.NoError(t, l.Do(context.Background(), func(context.Context) error { return nil }))
	assert.False(t, fired)
}
