package companion

import "errors"

var (
	ErrProtocolMismatch = errors.New("peer speaks a different protocol version")
	ErrBufferTooSmall   = errors.New("buffer size must be positive")
)
