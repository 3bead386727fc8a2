// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization and id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// TraceIDCtxKey is the key used to store the request trace id in the context.
var TraceIDCtxKey = contextKey("traceID")

// SyncSessionCtxKey is the key used to store the id of the sync session a
// packet belongs to.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.SyncSessionCtxKey, sessionID)
var SyncSessionCtxKey = contextKey("syncSession")

// GetTraceIDFromContext retrieves the trace id stored by the HTTP middleware.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(TraceIDCtxKey).(string)
	return id, ok
}

// GetSyncSessionFromContext retrieves the sync session id from the context.
//
// Returns the id and an ok flag:
//   - ok == true: value is found and is a string
//   - ok == false: value is missing or has an unexpected type
func GetSyncSessionFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SyncSessionCtxKey).(string)
	return id, ok
}
