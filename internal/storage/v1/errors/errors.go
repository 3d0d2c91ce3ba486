// Package errors provides custom storage error types.
package errors

import (
	"fmt"
)

type (
	// NotFoundError is returned when a lookup by an exact key misses.
	NotFoundError struct {
		Err    error
		Entity string
		ID     string
	}
	// AlreadyExistsError is returned when a create violates a uniqueness constraint.
	AlreadyExistsError struct {
		Err    error
		Entity string
		ID     string
	}
	ExecutionPSQLError struct {
		Err error
	}
	ScanningPSQLError struct {
		Err error
	}
	ContextTimeoutExceededError struct {
		Err error
	}
)

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %s: already exists", e.Entity, e.ID)
}

func (e *AlreadyExistsError) Unwrap() error {
	return e.Err
}

func (e *ExecutionPSQLError) Error() string {
	return fmt.Sprintf("%s: could not execute", e.Err.Error())
}

func (e *ExecutionPSQLError) Unwrap() error {
	return e.Err
}

func (e *ScanningPSQLError) Error() string {
	return fmt.Sprintf("%s: could not scan", e.Err.Error())
}

func (e *ScanningPSQLError) Unwrap() error {
	return e.Err
}

func (e *ContextTimeoutExceededError) Error() string {
	return fmt.Sprintf("%s: context timeout exceeded", e.Err.Error())
}

func (e *ContextTimeoutExceededError) Unwrap() error {
	return e.Err
}
