package core

import (
	"errors"
	"fmt"
)

// FailureClass partitions pipeline failures. Credential failures exit with
// code 2 ("log in first"); everything else exits 1.
type FailureClass int

const (
	FailCredential FailureClass = iota + 1
	FailTransport
	FailUpstream
	FailDecode
	FailIO
)

// Error is a classified pipeline failure. Body is set only for upstream
// failures where the raw response should be preserved for diagnosis.
type Error struct {
	Class FailureClass
	Msg   string
	Body  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) ExitCode() int {
	if e.Class == FailCredential {
		return 2
	}
	return 1
}

func Credentialf(format string, args ...any) *Error {
	return &Error{Class: FailCredential, Msg: fmt.Sprintf(format, args...)}
}

func Transportf(format string, args ...any) *Error {
	return &Error{Class: FailTransport, Msg: fmt.Sprintf(format, args...)}
}

// Upstream records a non-2xx response. The status becomes the error message
// and the body is carried verbatim, never re-parsed.
func Upstream(status int, body string) *Error {
	return &Error{Class: FailUpstream, Msg: fmt.Sprintf("HTTP %d", status), Body: body}
}

// Upstreamf records an upstream-reported failure with an accompanying raw
// payload, such as an agent status report that was not a success.
func Upstreamf(body string, format string, args ...any) *Error {
	return &Error{Class: FailUpstream, Msg: fmt.Sprintf(format, args...), Body: body}
}

func Decodef(format string, args ...any) *Error {
	return &Error{Class: FailDecode, Msg: fmt.Sprintf(format, args...)}
}

func IOf(format string, args ...any) *Error {
	return &Error{Class: FailIO, Msg: fmt.Sprintf(format, args...)}
}

// Failure converts any error into a failure envelope. Classified errors
// contribute their preserved response body.
func Failure(err error) Envelope {
	env := Envelope{Error: err.Error()}
	var cerr *Error
	if errors.As(err, &cerr) {
		env.ResponseBody = cerr.Body
	}
	return env
}

// ExitCode maps an error to the process exit code: 0 for nil, 2 for
// credential failures, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.ExitCode()
	}
	return 1
}
