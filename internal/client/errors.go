package client

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes a failure for the error log. The public API of the
// client stays boolean; kinds exist so logged messages carry a
// machine-readable cause.
type ErrorKind int

const (
	// KindUnknown is the zero kind for errors produced outside this package.
	KindUnknown ErrorKind = iota
	// KindTransport covers network failures and non-2xx statuses.
	KindTransport
	// KindDecode covers malformed or incomplete response bodies.
	KindDecode
	// KindVersionParse covers unparseable version strings on either side.
	KindVersionParse
	// KindPrecondition covers a download attempted without a prior successful check.
	KindPrecondition
	// KindFilesystem covers temp-file create/write/rename failures.
	KindFilesystem
	// KindLaunch covers installer processes that could not be started.
	KindLaunch
)

// String returns the log tag for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindVersionParse:
		return "version-parse"
	case KindPrecondition:
		return "precondition"
	case KindFilesystem:
		return "filesystem"
	case KindLaunch:
		return "launch"
	default:
		return "unknown"
	}
}

// ClientError is a failure tagged with its kind.
type ClientError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped error.
func (e *ClientError) Unwrap() error {
	return e.Err
}

// newError wraps an error with a kind and message.
func newError(kind ErrorKind, message string, err error) *ClientError {
	return &ClientError{Kind: kind, Message: message, Err: err}
}

// newErrorf builds a ClientError with a formatted message and no cause.
func newErrorf(kind ErrorKind, format string, args ...any) *ClientError {
	return &ClientError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf walks the error chain and returns the first kind found.
func KindOf(err error) ErrorKind {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}
