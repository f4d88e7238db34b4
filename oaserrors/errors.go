// Package oaserrors provides structured error types for oasprune.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - ParseError: YAML/JSON parsing failures and unsupported document versions
//   - MalformedReferenceError: $ref strings that are not local component pointers
//   - DanglingReferenceError: $ref strings naming components that do not exist
//   - IncompleteClosureError: internal consistency failures in the assembler
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.Is
//
//	result, err := pruner.PruneWithOptions(pruner.WithFilePath("api.yaml"), ...)
//	if err != nil {
//	    if errors.Is(err, oaserrors.ErrDanglingReference) {
//	        // The source document itself has broken references.
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrMalformedReference indicates a $ref string that is not a local
	// component pointer of the form #/components/<category>/<name>.
	ErrMalformedReference = errors.New("malformed reference")

	// ErrDanglingReference indicates a $ref naming a component that does
	// not exist in the document.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrIncompleteClosure indicates the assembled document failed its
	// reference self-check. This signals a defect in closure computation,
	// not bad input.
	ErrIncompleteClosure = errors.New("incomplete closure")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse an OpenAPI document.
// This includes YAML/JSON deserialization errors, missing version fields,
// and unsupported document versions (OAS 2.0).
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// MalformedReferenceError represents a $ref string that does not match the
// supported local component pointer shape #/components/<category>/<name>.
// External references (other files, URLs) and pointers outside the
// components section are reported through this type: the pruner cannot make
// such references self-contained, so they are fatal to the run.
type MalformedReferenceError struct {
	// Ref is the reference string that failed to parse
	Ref string
	// Location is the JSON path where the reference appears (may be empty)
	Location string
	// Message provides additional context about the failure
	Message string
}

// Error returns a human-readable error message.
func (e *MalformedReferenceError) Error() string {
	msg := "malformed reference"
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Location != "" {
		msg += " at " + e.Location
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as MalformedReferenceError has no underlying cause.
func (e *MalformedReferenceError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *MalformedReferenceError) Is(target error) bool {
	return target == ErrMalformedReference
}

// DanglingReferenceError represents a $ref naming a component that does not
// exist in the document. Surfaced immediately rather than silently skipped:
// dropping it would produce output that looks plausible but fails resolution.
type DanglingReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// Location is the JSON path where the reference appears (may be empty)
	Location string
}

// Error returns a human-readable error message.
func (e *DanglingReferenceError) Error() string {
	msg := "dangling reference"
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Location != "" {
		msg += " at " + e.Location
	}
	return msg
}

// Unwrap returns nil as DanglingReferenceError has no underlying cause.
func (e *DanglingReferenceError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *DanglingReferenceError) Is(target error) bool {
	return target == ErrDanglingReference
}

// IncompleteClosureError represents a failed self-check in the assembler:
// a $ref in the assembled output does not resolve within the output.
// With a correct closure resolver this never triggers; it exists as a
// defense-in-depth contract so closure bugs surface before output is written.
type IncompleteClosureError struct {
	// Ref is the unresolved reference found in the assembled document
	Ref string
	// Location is the JSON path where the reference appears
	Location string
}

// Error returns a human-readable error message.
func (e *IncompleteClosureError) Error() string {
	msg := "incomplete closure"
	if e.Ref != "" {
		msg += ": unresolved reference " + e.Ref
	}
	if e.Location != "" {
		msg += " at " + e.Location
	}
	return msg
}

// Unwrap returns nil as IncompleteClosureError has no underlying cause.
func (e *IncompleteClosureError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *IncompleteClosureError) Is(target error) bool {
	return target == ErrIncompleteClosure
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
