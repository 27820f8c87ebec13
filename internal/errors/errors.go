package errors

import "fmt"

// ErrorCode represents a voxplan error code.
type ErrorCode string

const (
	ErrInvalidRequest  ErrorCode = "INVALID_REQUEST"  // 400
	ErrNotFound        ErrorCode = "NOT_FOUND"        // 404
	ErrAlreadyExists   ErrorCode = "ALREADY_EXISTS"   // 409
	ErrUnsupportedPlan ErrorCode = "UNSUPPORTED_PLAN" // 422
	ErrNotConfirmable  ErrorCode = "NOT_CONFIRMABLE"  // 422
	ErrInternal        ErrorCode = "INTERNAL"         // 500
)

// VoxError represents a structured error with code, status, and details.
type VoxError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *VoxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *VoxError {
	return &VoxError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing record.
func NewNotFound(what, identifier string) *VoxError {
	return &VoxError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", what, identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewAlreadyExists creates a 409 error for name collisions.
func NewAlreadyExists(what, name string) *VoxError {
	return &VoxError{
		Code:    ErrAlreadyExists,
		Status:  409,
		Message: fmt.Sprintf("%s %q already exists", what, name),
		Details: map[string]any{"name": name},
	}
}

// NewUnsupportedPlan creates a 422 error for plan kinds the executor
// cannot run.
func NewUnsupportedPlan(kind string) *VoxError {
	return &VoxError{
		Code:    ErrUnsupportedPlan,
		Status:  422,
		Message: fmt.Sprintf("plan kind %q cannot be executed", kind),
		Details: map[string]any{"kind": kind},
	}
}

// NewNotConfirmable creates a 422 error for executing a plan that
// still needs user input (confirmation or slot filling).
func NewNotConfirmable(kind string) *VoxError {
	return &VoxError{
		Code:    ErrNotConfirmable,
		Status:  422,
		Message: fmt.Sprintf("plan kind %q must be resolved through the dialogue before execution", kind),
		Details: map[string]any{"kind": kind},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *VoxError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &VoxError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a VoxError with the given code.
func Is(err error, code ErrorCode) bool {
	if vErr, ok := err.(*VoxError); ok {
		return vErr.Code == code
	}
	return false
}
