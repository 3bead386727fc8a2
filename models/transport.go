package models

import "fmt"

// SendErrorKind enumerates the outcomes a transport reports for a failed
// send.
type SendErrorKind uint8

const (
	SendOK SendErrorKind = iota
	SendBusy
	SendRejected
	SendNotRunning
	SendInvalidArgs
	SendBufferOverflow
	SendAlreadyReleased
	SendCallbackConflict
	SendNotRegistered
	SendOutOfMemory
	SendClosed
	SendInternalError
	SendInvalidState
	SendNotConnected
	SendTimeout
)

var sendErrorNames = map[SendErrorKind]string{
	SendOK:               "",
	SendBusy:             "busy",
	SendRejected:         "rejected",
	SendNotRunning:       "not_running",
	SendInvalidArgs:      "invalid_args",
	SendBufferOverflow:   "buffer_overflow",
	SendAlreadyReleased:  "already_released",
	SendCallbackConflict: "callback_conflict",
	SendNotRegistered:    "not_registered",
	SendOutOfMemory:      "out_of_memory",
	SendClosed:           "closed",
	SendInternalError:    "internal_error",
	SendInvalidState:     "invalid_state",
	SendNotConnected:     "not_connected",
	SendTimeout:          "timeout",
}

func (k SendErrorKind) String() string {
	if name, ok := sendErrorNames[k]; ok {
		if name == "" {
			return "ok"
		}
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

// ParseSendErrorKind maps the wire name of an outcome back to its kind.
// The empty string and "ok" both mean success.
func ParseSendErrorKind(name string) (SendErrorKind, error) {
	if name == "" || name == "ok" {
		return SendOK, nil
	}
	for kind, n := range sendErrorNames {
		if n == name {
			return kind, nil
		}
	}
	return SendOK, fmt.Errorf("unknown send outcome %q", name)
}

// SendFailureClass groups send outcomes by how the link reacts to them.
type SendFailureClass uint8

const (
	// ClassSuccess is a delivered send.
	ClassSuccess SendFailureClass = iota
	// ClassSendFailed is a failure with the link still up.
	ClassSendFailed
	// ClassLinkDown means the companion is unreachable.
	ClassLinkDown
)

// Classify returns how the link should react to k.
func (k SendErrorKind) Classify() SendFailureClass {
	switch k {
	case SendOK:
		return ClassSuccess
	case SendNotConnected, SendTimeout:
		return ClassLinkDown
	default:
		return ClassSendFailed
	}
}

// SendError is returned by transport adapters when a send does not go through.
type SendError struct {
	Kind SendErrorKind
	Err  error
}

func (e *SendError) Error() string {
	if e.Err == nil {
		return "send failed: " + e.Kind.String()
	}
	return fmt.Sprintf("send failed: %s: %v", e.Kind, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}
