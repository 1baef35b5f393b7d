package result

import (
	"errors"
	"fmt"
)

// StatusCode classifies a recoverable codec failure.
type StatusCode int

const (
	// Unknown is used for failures that did not originate in the codec.
	Unknown StatusCode = iota
	// HMACError reports a ciphertext whose authentication tag did not verify.
	HMACError
	// Failure reports invalid arguments or an unusable key resolver.
	Failure
	// FormatError reports a literal tag that did not match its expected value.
	FormatError
	// Truncated reports input that ended before the format was satisfied.
	Truncated
	// TrailingData reports bytes left over after a strict decode.
	TrailingData
)

var statusNames = map[StatusCode]string{
	Unknown:      "unknown",
	HMACError:    "hmac_error",
	Failure:      "failure",
	FormatError:  "format_error",
	Truncated:    "truncated",
	TrailingData: "trailing_data",
}

// String returns the snake_case name of the code. It is also used as the
// status label on codec metrics.
func (c StatusCode) String() string {
	if name, ok := statusNames[c]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(c))
}

// Error makes a StatusCode usable as an errors.Is target.
func (c StatusCode) Error() string {
	return c.String()
}

// Error is a StatusCode with context about where the failure happened.
type Error struct {
	Code   StatusCode
	Detail string
	cause  error
}

// Errorf builds an *Error with a formatted detail message. Errors among
// args only contribute text; use Wrap to keep one reachable.
func Errorf(code StatusCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// Wrap is Errorf with cause reachable through errors.Is and errors.As. The
// outer code always wins: a cause that itself carries a StatusCode is not
// recorded, so errors.Is never reports the inner code.
func Wrap(code StatusCode, cause error, format string, args ...interface{}) *Error {
	e := Errorf(code, format, args...)
	if cause != nil && CodeOf(cause) == Unknown {
		e.cause = cause
	}
	return e
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Code.String()
	}
	return e.Code.String() + ": " + e.Detail
}

// Is reports whether target is this error's StatusCode.
func (e *Error) Is(target error) bool {
	code, ok := target.(StatusCode)
	return ok && code == e.Code
}

func (e *Error) Unwrap() error {
	return e.cause
}

// CodeOf extracts the StatusCode carried by err. Errors from outside the
// codec map to Unknown.
func CodeOf(err error) StatusCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var code StatusCode
	if errors.As(err, &code) {
		return code
	}
	return Unknown
}
