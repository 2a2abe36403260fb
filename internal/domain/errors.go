package domain

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidID    = errors.New("invalid id")
	ErrInvalidInput = errors.New("invalid input")
)

// Request outcomes reported to clients in the "error" field. The messages are
// part of the wire contract.
var (
	ErrMissingRequiredFields = errors.New("required field(s) missing")
	ErrMissingID             = errors.New("missing _id")
	ErrNoUpdateFields        = errors.New("no update field(s) sent")
	ErrUpdateFailed          = errors.New("could not update")
	ErrDeleteFailed          = errors.New("could not delete")
)

// IssueError is a rejected issue request. ID is empty when the request did
// not name an issue.
type IssueError struct {
	Err   error
	ID    string
	Cause error
}

func (e *IssueError) Error() string {
	if e.Cause != nil {
		return e.Err.Error() + ": " + e.Cause.Error()
	}
	return e.Err.Error()
}

func (e *IssueError) Unwrap() error {
	return e.Err
}

// ValidationError represents a field-level validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
