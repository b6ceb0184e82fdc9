package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error is returned for every Grocy response with status >= 400.
type Error struct {
	StatusCode int
	// Message is the server's error_message, empty when the body had none.
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("grocy returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("grocy returned status %d: %s", e.StatusCode, e.Message)
}

// IsClientError reports a 4xx status.
func (e *Error) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError reports a 5xx status.
func (e *Error) IsServerError() bool {
	return e.StatusCode >= 500
}

func newError(status int, body []byte) *Error {
	e := &Error{StatusCode: status}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return e
	}
	var payload struct {
		ErrorMessage string `json:"error_message"`
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err == nil {
		e.Message = payload.ErrorMessage
	}
	return e
}

// ErrMissing marks a required field that was absent, null or "".
var ErrMissing = errors.New("missing required value")

// ErrUnknownValue marks a required enum field holding a value outside the
// known set.
var ErrUnknownValue = errors.New("unknown enum value")

// ParseError reports a response record that could not be built.
type ParseError struct {
	Record string
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("parse %s: %v", e.Record, e.Err)
	}
	return fmt.Sprintf("parse %s: field %s: %v", e.Record, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// AsError returns the *Error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
