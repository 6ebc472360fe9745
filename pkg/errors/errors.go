package errors

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the capture and friend-connection flows.
var (
	ErrPermissionDenied     = errors.New("camera permission denied")
	ErrCaptureFailed        = errors.New("capture failed")
	ErrPrecondition         = errors.New("precondition violation")
	ErrVerificationRejected = errors.New("verification rejected")
	ErrTransport            = errors.New("transport failure")
	ErrSubmitInFlight       = errors.New("submission already in flight")
	ErrClosed               = errors.New("workflow closed")
)

const (
	CodePermissionDenied     = "permission_denied"
	CodeCaptureFailed        = "capture_failed"
	CodePrecondition         = "precondition_violation"
	CodeVerificationRejected = "verification_rejected"
	CodeTransport            = "transport_failure"
	CodeSubmitInFlight       = "submit_in_flight"
	CodeClosed               = "closed"
)

var codes = map[error]string{
	ErrPermissionDenied:     CodePermissionDenied,
	ErrCaptureFailed:        CodeCaptureFailed,
	ErrPrecondition:         CodePrecondition,
	ErrVerificationRejected: CodeVerificationRejected,
	ErrTransport:            CodeTransport,
	ErrSubmitInFlight:       CodeSubmitInFlight,
	ErrClosed:               CodeClosed,
}

// Error represents a custom error type
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Kind builds an error of one of the package kinds. Message is what the user sees;
// cause, when set, stays reachable through errors.Is/As.
func Kind(kind error, message string, cause error) error {
	inner := kind
	if cause != nil {
		inner = fmt.Errorf("%w: %w", kind, cause)
	}
	return &Error{
		Code:    codes[kind],
		Message: message,
		Err:     inner,
	}
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetCode returns the error code if it exists
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetMessage returns the error message
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

func IsCaptureFailed(err error) bool {
	return errors.Is(err, ErrCaptureFailed)
}

func IsPrecondition(err error) bool {
	return errors.Is(err, ErrPrecondition)
}

func IsVerificationRejected(err error) bool {
	return errors.Is(err, ErrVerificationRejected)
}

func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

func IsSubmitInFlight(err error) bool {
	return errors.Is(err, ErrSubmitInFlight)
}
