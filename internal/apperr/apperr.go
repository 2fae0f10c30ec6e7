// Package apperr defines the error taxonomy surfaced to the presentation layer.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for presentation.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindDuplicate    Kind = "duplicate"
	KindPrecondition Kind = "precondition"
	KindNotFound     Kind = "not_found"
	KindIO           Kind = "io"
)

// Reason narrows a precondition failure.
type Reason string

const (
	ReasonNoQuestions      Reason = "NoQuestions"
	ReasonNoActiveUser     Reason = "NoActiveUser"
	ReasonUserNotFound     Reason = "UserNotFound"
	ReasonAllAnswered      Reason = "AllAnswered"
	ReasonNoAnswersYet     Reason = "NoAnswersYet"
	ReasonNoQuizInProgress Reason = "NoQuizInProgress"
	ReasonQuizInProgress   Reason = "QuizInProgress"
)

// Error is a classified, user-facing error.
type Error struct {
	Kind   Kind
	Reason Reason // set for KindPrecondition only
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed input.
func Validation(msg string, err error) *Error {
	return &Error{Kind: KindValidation, Msg: msg, Err: err}
}

// Duplicate reports a case-insensitive uniqueness violation.
func Duplicate(format string, args ...any) *Error {
	return &Error{Kind: KindDuplicate, Msg: fmt.Sprintf(format, args...)}
}

// Precondition reports an operation attempted in the wrong state.
func Precondition(reason Reason, msg string) *Error {
	return &Error{Kind: KindPrecondition, Reason: reason, Msg: msg}
}

// NotFound reports a reference to an unknown entity.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// IO reports a storage or file failure.
func IO(msg string, err error) *Error {
	return &Error{Kind: KindIO, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// ReasonOf returns the precondition reason in err's chain, or "".
func ReasonOf(err error) Reason {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
