// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// bucket-sync peer HTTP handlers.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
package app

const (
	// MsgInvalidDataProvided is returned when a JSON request body cannot be
	// decoded.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected failure occurs
	// that the companion cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgPacketRejected prefixes the reason a start or continuation packet
	// was not applied.
	MsgPacketRejected = "packet rejected"

	// MsgUnknownSendOutcome is returned for a send outcome name the peer
	// does not know.
	MsgUnknownSendOutcome = "unknown send outcome"

	// MsgStatusUnavailable is returned when the status snapshot cannot be
	// assembled.
	MsgStatusUnavailable = "error getting peer status"

	// MsgBucketNotFound is returned for a bucket that is not active or holds
	// no data.
	MsgBucketNotFound = "bucket not found"

	// MsgBucketUnavailable is returned when an active bucket cannot be read.
	MsgBucketUnavailable = "error loading bucket"

	// MsgLinkEventFailed is returned when a link event could not be applied,
	// typically because the peer is shutting down.
	MsgLinkEventFailed = "error applying link event"
)
