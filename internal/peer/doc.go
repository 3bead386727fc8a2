// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package peer implements the bucket-sync peer application runtime.
//
// It wires configuration, storage, the companion transport, the HTTP API and
// the optional terminal monitor into a single process lifecycle.
package peer
