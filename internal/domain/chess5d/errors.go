package chess5d

import (
	"errors"
	"fmt"
)

// Kind groups error codes into the three fatal failure classes.
type Kind int

const (
	KindStructural Kind = iota + 1
	KindIllegalMove
	KindFinalizedBoard
)

func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "structural parse error"
	case KindIllegalMove:
		return "illegal move"
	case KindFinalizedBoard:
		return "finalized board"
	default:
		return "unknown"
	}
}

type Code int

const (
	CodeBadMarker Code = iota + 1
	CodeMarkerOrder
	CodeTooManySegments

	CodeBadNotation
	CodeSourceNotFound
	CodeAmbiguousSource
	CodeWrongSide
	CodeWrongPiece
	CodeGeometry
	CodeCastling
	CodeMissingTimeline
	CodeMissingBoard
	CodeNoPendingLine
	CodeOwnCapture
	CodeTimelineOrder

	CodeFinalized
)

func (c Code) Kind() Kind {
	switch {
	case c >= CodeBadMarker && c <= CodeTooManySegments:
		return KindStructural
	case c == CodeFinalized:
		return KindFinalizedBoard
	default:
		return KindIllegalMove
	}
}

// Error is the failure type returned by the parser and the state engine.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code.Kind(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code.Kind(), e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) Kind() Kind { return e.Code.Kind() }

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is checks.
var (
	ErrBadMarker       = &Error{Code: CodeBadMarker}
	ErrMarkerOrder     = &Error{Code: CodeMarkerOrder}
	ErrTooManySegments = &Error{Code: CodeTooManySegments}
	ErrBadNotation     = &Error{Code: CodeBadNotation}
	ErrSourceNotFound  = &Error{Code: CodeSourceNotFound}
	ErrAmbiguousSource = &Error{Code: CodeAmbiguousSource}
	ErrWrongSide       = &Error{Code: CodeWrongSide}
	ErrWrongPiece      = &Error{Code: CodeWrongPiece}
	ErrGeometry        = &Error{Code: CodeGeometry}
	ErrCastling        = &Error{Code: CodeCastling}
	ErrMissingTimeline = &Error{Code: CodeMissingTimeline}
	ErrMissingBoard    = &Error{Code: CodeMissingBoard}
	ErrNoPendingLine   = &Error{Code: CodeNoPendingLine}
	ErrOwnCapture      = &Error{Code: CodeOwnCapture}
	ErrTimelineOrder   = &Error{Code: CodeTimelineOrder}
	ErrFinalized       = &Error{Code: CodeFinalized}
)

// KindOf reports the failure class of err, or 0 when err is not a chess5d error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return 0
}

func IsStructural(err error) bool { return KindOf(err) == KindStructural }

func IsIllegalMove(err error) bool { return KindOf(err) == KindIllegalMove }

func IsFinalized(err error) bool { return KindOf(err) == KindFinalizedBoard }

// GeometryError is the detail attached to CodeGeometry failures.
type GeometryError struct {
	Kind  PieceKind
	Delta Delta
}

func (g *GeometryError) Error() string {
	return fmt.Sprintf("%s cannot move by %s", g.Kind, g.Delta)
}
