// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codec encodes and decodes the bucket sync wire format.
//
// Every packet starts with a status byte. A start packet continues with the
// next version (big-endian uint16), the number of active buckets and one
// (id, flags) pair per bucket; a continuation packet has nothing but the
// status byte in front of its chunks. Chunks are (id, size, payload) triples
// packed back to back until the packet ends.
//
// All offsets are explicit; nothing here depends on in-memory struct layout.
package codec
