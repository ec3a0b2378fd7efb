// Package models defines the data model and error types shared by the spec
// validator: flows, nodes, domains, and the issues/results they produce.
package models

import (
	"errors"
	"strings"
)

// Operational failures. These describe the validator's own inability to
// read or normalize a file. They are distinct from ValidationIssue, which
// is data describing a problem found IN the corpus and is never returned
// as an error.
var (
	ErrProjectNotFound    = errors.New("project path not found")
	ErrSpecFileUnreadable = errors.New("spec file could not be read")
	ErrNormalizeFailed    = errors.New("flow document failed to normalize")
	ErrDomainNotFound     = errors.New("domain not found")
	ErrFlowNotFound       = errors.New("flow not found")
	ErrTriggerMissing     = errors.New("flow has no trigger node")
)

// ParseError wraps a failure to parse a single spec file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "parse " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NormalizeError wraps a failure to normalize a parsed flow document.
type NormalizeError struct {
	DomainID string
	FlowID   string
	Err      error
}

func (e *NormalizeError) Error() string {
	return "normalize " + e.DomainID + "/" + e.FlowID + ": " + e.Err.Error()
}

func (e *NormalizeError) Unwrap() error {
	return e.Err
}

// ValidationError represents a single field-level validation error, used for
// operational inputs (config, CLI arguments) — not for corpus findings,
// which are ValidationIssue values carried inside a ValidationResult.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every field-level violation found in a single
// validation pass (e.g. Config.Validate), so a caller can report all of them
// at once instead of fixing one field per run.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}
