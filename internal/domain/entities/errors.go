package entities

import "errors"

var (
	// ErrInvalidReference is returned when a reference string cannot be parsed into an Identity.
	ErrInvalidReference = errors.New("invalid assembly name reference")

	// ErrTaskFailed marks a task whose log recorded at least one error.
	ErrTaskFailed = errors.New("task logged errors")
)
