// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// errNoHandlersAreCreated is returned by NewHandlers when the server
	// configuration has no HTTP address, leaving the peer without any way
	// to receive packets.
	errNoHandlersAreCreated = errors.New("no handlers are created")
	errNoPeerService        = errors.New("peer service is required")
)
