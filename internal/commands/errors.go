package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/reglet-dev/rvext/internal/abi"
)

// ErrorResponse is a structured error written back to the Host in place of a
// normal response. It is also a Go error, so handlers can return it directly.
type ErrorResponse struct {
	// Kind is a machine-readable identifier (e.g. "VALIDATION_ERROR").
	Kind string `json:"error"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// Code is a numeric error code (e.g. 400, 500).
	Code int `json:"code"`
}

func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// JSON renders the response as the Host receives it. Non-ASCII text in the
// message is escaped so the document is always writable.
func (e *ErrorResponse) JSON() string {
	data, err := json.Marshal(e)
	if err != nil {
		return `{"error":"INTERNAL_ERROR","message":"unrenderable error","code":500}`
	}
	return abi.ASCIIJSON(data)
}

// NewValidationError reports bad arguments from the Host.
func NewValidationError(message string) *ErrorResponse {
	return &ErrorResponse{Kind: "VALIDATION_ERROR", Message: message, Code: 400}
}

// NewNotFoundError reports an unknown function name.
func NewNotFoundError(name string) *ErrorResponse {
	return &ErrorResponse{Kind: "NOT_FOUND", Message: "unknown function: " + name, Code: 404}
}

// NewInternalError reports an unexpected handler failure.
func NewInternalError(message string) *ErrorResponse {
	return &ErrorResponse{Kind: "INTERNAL_ERROR", Message: message, Code: 500}
}

// NewPanicError reports a recovered panic.
func NewPanicError(panicValue any) *ErrorResponse {
	var msg string
	if err, ok := panicValue.(error); ok {
		msg = err.Error()
	} else if s, ok := panicValue.(string); ok {
		msg = s
	} else {
		msg = "panic recovered"
	}
	return NewInternalError("panic: " + msg)
}

// AsErrorResponse converts any handler error into an ErrorResponse.
func AsErrorResponse(err error) *ErrorResponse {
	var resp *ErrorResponse
	if errors.As(err, &resp) {
		return resp
	}
	return NewInternalError(err.Error())
}
