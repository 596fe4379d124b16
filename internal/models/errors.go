package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrIndexLoad ErrorType = iota
	ErrRecipeScan
	ErrAdvisory
	ErrProbe
	ErrReport
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrIndexLoad:
		return "IndexLoad"
	case ErrRecipeScan:
		return "RecipeScan"
	case ErrAdvisory:
		return "Advisory"
	case ErrProbe:
		return "Probe"
	case ErrReport:
		return "Report"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// LintError represents an error during a lint run
type LintError struct {
	Type ErrorType
	Port string
	Err  error
}

// Error implements the error interface
func (e *LintError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Port, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *LintError) Unwrap() error {
	return e.Err
}
