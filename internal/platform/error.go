package platform

import (
	"errors"
	"strings"
)

// Error is the normalized backend error shape. Every failure that crosses the
// data-access or auth boundary is one of these; raw transport errors never
// escape those layers.
type Error struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Status  int    `json:"-"`
	Details any    `json:"details,omitempty"`

	cause error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// friendlyMessages maps known backend error codes to user-facing strings.
// Unknown codes pass the raw message through unchanged.
var friendlyMessages = map[string]string{
	"PGRST116": "Not found",
	"23505":    "This value already exists",
	"23503":    "Related record not found",
	"42501":    "Permission denied",
	"PGRST301": "Invalid request",
}

// Normalize converts any error into a *Error with a user-facing message.
// A nil error normalizes to nil.
func Normalize(err error) *Error {
	if err == nil {
		return nil
	}
	var perr *Error
	if errors.As(err, &perr) {
		message := perr.Message
		if friendly, ok := friendlyMessages[perr.Code]; ok {
			message = friendly
		}
		if message == "" {
			message = "Unknown error"
		}
		return &Error{
			Message: message,
			Code:    perr.Code,
			Status:  perr.Status,
			Details: perr.Details,
			cause:   perr.cause,
		}
	}
	message := err.Error()
	if message == "" {
		message = "Unknown error"
	}
	return &Error{Message: message, cause: err}
}

// transportError wraps a failure that happened before any backend response
// arrived (dial, DNS, body read, decode).
func transportError(err error) *Error {
	message := "Unknown error"
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return &Error{Message: message, cause: err}
}

// IsNetworkError is a best-effort check for transport-level failures.
func IsNetworkError(err error) bool {
	var perr *Error
	if !errors.As(err, &perr) {
		return false
	}
	if perr.Status == 0 && perr.cause != nil {
		return true
	}
	lower := strings.ToLower(perr.Message)
	return strings.Contains(lower, "network") || strings.Contains(lower, "connection refused")
}

// IsAuthError reports a 401 response or a permission-denied code.
func IsAuthError(err error) bool {
	var perr *Error
	if !errors.As(err, &perr) {
		return false
	}
	return perr.Status == 401 || perr.Code == "42501"
}

// IsNotFound reports a missing-row response.
func IsNotFound(err error) bool {
	var perr *Error
	if !errors.As(err, &perr) {
		return false
	}
	return perr.Code == "PGRST116" || perr.Status == 404
}

// IsValidationError reports a constraint-violation family code.
func IsValidationError(err error) bool {
	var perr *Error
	if !errors.As(err, &perr) {
		return false
	}
	return strings.HasPrefix(perr.Code, "23") || perr.Code == "PGRST301"
}
