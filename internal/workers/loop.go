// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/bucket-sync/internal/logger"
)

// Loop executes posted functions one at a time on a single goroutine.
// Everything that touches the sync subsystem goes through it.
type Loop struct {
	queue chan func(ctx context.Context)
	done  chan struct{}
	once  sync.Once
	log   *logger.Logger
}

// NewLoop returns a loop whose queue holds size pending functions.
func NewLoop(size int, log *logger.Logger) *Loop {
	if size <= 0 {
		size = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Loop{
		queue: make(chan func(ctx context.Context), size),
		done:  make(chan struct{}),
		log:   log,
	}
}

// Run consumes the queue until ctx is done. Functions receive a context
// carrying the loop logger.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })

	ctx = l.log.WithContext(ctx)
	l.log.Info().Str("func", "Loop.Run").Msg("event loop started")

	for {
		select {
		case <-ctx.Done():
			l.log.Info().Str("func", "Loop.Run").Msg("event loop stopped")
			return nil
		case fn := <-l.queue:
			fn(ctx)
		}
	}
}

// Post enqueues fn. It blocks while the queue is full and fails once the
// loop has stopped.
func (l *Loop) Post(fn func(ctx context.Context)) error {
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}

	select {
	case l.queue <- fn:
		return nil
	case <-l.done:
		return ErrLoopStopped
	}
}

// Do runs fn on the loop and waits for its result.
func (l *Loop) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	result := make(chan error, 1)

	posted := make(chan error, 1)
	go func() {
		posted <- l.Post(func(loopCtx context.Context) {
			// keep the caller's values (trace id, request logger) on top of
			// the loop context
			result <- fn(mergeContext(loopCtx, ctx))
		})
	}()

	select {
	case err := <-posted:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AfterFunc runs fn on the loop once d has elapsed. Stopping the returned
// Timer prevents fn from running even if the delay already elapsed but fn is
// still queued.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		_ = l.Post(func(context.Context) {
			if t.stopped.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	return t
}

type loopTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
}

func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	return t.stopped.CompareAndSwap(false, true)
}

// requestContext exposes the values of the caller's context while keeping
// the loop's cancellation.
type requestContext struct {
	context.Context
	values context.Context
}

func (c requestContext) Value(key any) any {
	if v := c.values.Value(key); v != nil {
		return v
	}
	return c.Context.Value(key)
}

func mergeContext(loopCtx, reqCtx context.Context) context.Context {
	return requestContext{Context: loopCtx, values: reqCtx}
}
