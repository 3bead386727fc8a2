// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoHTTPServer is returned when the peer is started without an HTTP API
// address or without handlers to serve.
var errNoHTTPServer = errors.New("no HTTP API server is configured")
