// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the bucket-sync peer and companion.
//
// Every entry is JSON with a "role" naming the binary, a timestamp, and the
// calling function under "func". Sync code never passes loggers around
// explicitly: the event loop and the HTTP middleware attach one to the
// context and callers pick it up with FromContext or FromRequest. The With*
// helpers derive children tagged with the sync session, the bucket, or the
// request trace id.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger, so the whole zerolog API is available on it.
type Logger struct {
	zerolog.Logger
}

var configureOnce sync.Once

func configure() {
	configureOnce.Do(func() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		zerolog.CallerFieldName = "func"
		zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
			return runtime.FuncForPC(pc).Name()
		}
	})
}

func newLogger(out io.Writer, role string) *Logger {
	configure()
	return &Logger{zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// NewLogger writes to stdout.
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role)
}

// NewFileLogger appends to the file at path, for when the terminal monitor
// owns stdout. An empty path means a "logs" file next to the executable.
// If the file cannot be opened the returned logger writes to stderr and the
// error is returned with it.
func NewFileLogger(role, path string) (*Logger, error) {
	if path == "" {
		execPath, _ := os.Executable()
		path = filepath.Join(filepath.Dir(execPath), "logs")
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return newLogger(os.Stderr, role), err
	}
	return newLogger(f, role), nil
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithSession tags entries with the sync session id.
func (l *Logger) WithSession(id string) *Logger {
	return &Logger{l.With().Str("sync_session", id).Logger()}
}

// WithBucket tags entries with a bucket id.
func (l *Logger) WithBucket(id uint8) *Logger {
	return &Logger{l.With().Uint8("bucket_id", id).Logger()}
}

// WithTraceID tags entries with the trace id of an API request.
func (l *Logger) WithTraceID(id string) *Logger {
	return &Logger{l.With().Str("trace_id", id).Logger()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx, or zerolog's default
// logger when there is none. It never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
