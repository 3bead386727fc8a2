// Package http implements the HTTP API of a bucket-sync peer.
//
// It exposes route wiring, request handlers, and middleware. Companions push
// start and continuation packets as raw request bodies; status, bucket
// content and link events are exchanged as JSON or raw bytes. Request
// tracing and access logging are handled here before requests are delegated
// to the service layer.
package http
