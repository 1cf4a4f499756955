// Package errs tags pipeline failures with a kind so the HTTP boundary can
// map each one to a status code and a client-facing summary.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	Internal            Kind = "Internal"
	UnsupportedFormat   Kind = "UnsupportedFormat"
	InvalidRequest      Kind = "InvalidRequest"
	ParseFailure        Kind = "ParseFailure"
	CollaboratorFailure Kind = "CollaboratorFailure"
	SchemaMismatch      Kind = "SchemaMismatch"
)

const (
	SummaryUnsupportedFormat = "Unsupported file type. Please upload a CSV or Excel file."
	SummaryInvalidRequest    = "Invalid request."
	SummaryGeneration        = "An error occurred while generating synthetic data."
)

// Error is a failure raised by one pipeline stage.
type Error struct {
	Kind  Kind
	Stage string
	Err   error
}

func (e *Error) Error() string {
	if e.Stage == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E wraps err with a kind and the stage that produced it. A nil err yields nil.
func E(kind Kind, stage string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Stage: stage, Err: err}
}

// Errorf is E with a formatted message.
func Errorf(kind Kind, stage, format string, args ...any) error {
	return E(kind, stage, fmt.Errorf(format, args...))
}

// KindOf returns the kind of the outermost tagged error in the chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// StageOf returns the stage of the outermost tagged error in the chain.
func StageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Stage
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case UnsupportedFormat, InvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func Summary(kind Kind) string {
	switch kind {
	case UnsupportedFormat:
		return SummaryUnsupportedFormat
	case InvalidRequest:
		return SummaryInvalidRequest
	default:
		return SummaryGeneration
	}
}
