// Package server runs the peer's HTTP API.
//
// The server is a worker: Run serves until its context is cancelled and then
// shuts down gracefully. Signal handling lives with the caller.
package server
