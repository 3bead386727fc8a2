// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks bucket updates before the companion splits them
// into packets. A bad update file then fails on load, and the peer never
// sees a session it would have to abandon halfway.
package validators

import "context"

// Validator checks one value. When fields are given, only those parts of
// the value are checked; unknown field names are an error.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
