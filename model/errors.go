package model

import (
	"errors"
	"fmt"
)

// Failure taxonomy for the contract pipeline. Each failure names the
// operation that produced it so callers can retry with corrected input.

// ValidationError rejects input at the boundary, before any external
// call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// GenerationError reports a failed or schema-invalid response from the
// text-generation capability. Not retried automatically.
type GenerationError struct {
	Operation string
	Err       error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed during %s: %v", e.Operation, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// MergeError reports a merge that produced empty or unusable output. It
// carries the warnings gathered before the failure for diagnosability.
type MergeError struct {
	Reason   string
	Warnings []Warning
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge failed: %s", e.Reason)
}

// ExtractionError reports a failed file-to-text conversion. Unsupported
// reports whether the media type was rejected outright.
type ExtractionError struct {
	MediaType   string
	Unsupported bool
	Err         error
}

func (e *ExtractionError) Error() string {
	if e.Unsupported {
		return fmt.Sprintf("unsupported media type %q", e.MediaType)
	}
	return fmt.Sprintf("extraction failed for %s: %v", e.MediaType, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// RenderError reports a failed export to a print-ready artifact.
type RenderError struct {
	Format string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render to %s failed: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a boundary validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsGeneration reports whether err came from the generation capability.
func IsGeneration(err error) bool {
	var g *GenerationError
	return errors.As(err, &g)
}
