// Package companion is the phone side of bucket sync as a library: it loads a
// bucket update, splits it into packets sized for the peer and pushes them
// through the peer HTTP API, either once or every time the peer says hello.
package companion
