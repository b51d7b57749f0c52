package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax marks text the parser cannot accept.
	ErrSyntax = errors.New("syntax error")
	// ErrUndefined marks a read of a variable that was never assigned.
	ErrUndefined = errors.New("undefined variable")
	// ErrNotInteger marks a fraction operand where an integer is required.
	ErrNotInteger = errors.New("integer operand required")
	// ErrExponent marks a negative or oversized exponent.
	ErrExponent = errors.New("invalid exponent")
)

// Error is a positioned parse or evaluation failure. Err is one of the
// package sentinels or a bignum sentinel such as bignum.ErrDivisionByZero.
type Error struct {
	File string
	Pos  Position
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	loc := e.Pos.String()
	if e.File != "" {
		loc = e.File + ":" + loc
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", loc, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", loc, e.Msg, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(src *Source, off uint32, err error, format string, args ...any) *Error {
	return &Error{
		File: src.Name,
		Pos:  src.Position(off),
		Msg:  fmt.Sprintf(format, args...),
		Err:  err,
	}
}
