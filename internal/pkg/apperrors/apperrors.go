package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes a domain failure so transport layers can map it to a
// precise status without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound: session/transcript/scorecard absent when required.
	KindNotFound
	// KindPreconditionFailed: action attempted before its prerequisite exists.
	KindPreconditionFailed
	// KindValidation: malformed caller input or malformed judge output.
	KindValidation
	// KindConflict: duplicate write against a write-once row.
	KindConflict
	// KindProvider: judge/transport failure; retryable by the caller.
	KindProvider
	// KindStorage: persistence layer failure.
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPreconditionFailed:
		return "precondition_failed"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindProvider:
		return "provider"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// FieldError is one field-level validation diagnostic.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error is a kind-tagged domain error, optionally carrying field diagnostics
// and a wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	if len(e.Fields) > 0 {
		parts := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			parts[i] = f.Field + ": " + f.Reason
		}
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func PreconditionFailed(msg string) *Error {
	return &Error{Kind: KindPreconditionFailed, Message: msg}
}

func Validation(msg string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Provider(msg string, cause error) *Error {
	return &Error{Kind: KindProvider, Message: msg, Err: cause}
}

func Storage(msg string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: msg, Err: cause}
}

// KindOf returns the Kind of err, or KindUnknown for untagged errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// FieldsOf returns the field diagnostics attached to err, if any.
func FieldsOf(err error) []FieldError {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsProvider(err error) bool   { return KindOf(err) == KindProvider }
