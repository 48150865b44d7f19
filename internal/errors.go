package internal

import (
	"errors"
	"fmt"
)

// ErrNoForm is wrapped by the SyntaxError returned when reading text which
// contains no forms at all, e.g. a blank or comment-only line.
var ErrNoForm = errors.New("no form to read")

// SyntaxError is an error in source text found while reading.
type SyntaxError struct {
	Line, Col int
	Msg       string
	Err       error
}

func (err *SyntaxError) Error() string {
	msg := err.Msg
	if msg == "" && err.Err != nil {
		msg = err.Err.Error()
	}
	if err.Line == 0 {
		return "syntax error: " + msg
	}
	return fmt.Sprintf("syntax error at line %d, column %d: %s", err.Line, err.Col, msg)
}

// Unwrap returns the underlying cause, if any.
func (err *SyntaxError) Unwrap() error {
	return err.Err
}

// ArityError is an incorrect number of arguments passed to a builtin.
type ArityError struct {
	Name string
	Want string
	Have int
}

func (err *ArityError) Error() string {
	return fmt.Sprintf("wrong number of arguments to %s: expected %s, got %d", err.Name, err.Want, err.Have)
}

// TypeError is an argument of the wrong variant passed to a builtin. N is the
// zero-based position of the argument.
type TypeError struct {
	Name string
	N    int
	Want string
	Have Value
}

func (err *TypeError) Error() string {
	return fmt.Sprintf("argument %d to %s must be %s, not %s", err.N, err.Name, err.Want, TypeName(err.Have))
}

// UnboundError is a lookup of a symbol with no binding. Only strict mode
// reports it; lenient evaluation yields the symbol itself.
type UnboundError struct {
	Name string
}

func (err *UnboundError) Error() string {
	return fmt.Sprintf("'%s' not found", err.Name)
}

// ApplyError is an attempt to call a value which is not a function.
type ApplyError struct {
	Have Value
}

func (err *ApplyError) Error() string {
	return fmt.Sprintf("cannot apply %s: %s is not a function", Print(err.Have, true), TypeName(err.Have))
}

// ArithmeticError is an arithmetic operation with no integer result.
type ArithmeticError struct {
	Name string
	Msg  string
}

func (err *ArithmeticError) Error() string {
	return err.Name + ": " + err.Msg
}

// FormError is a special form used with the wrong shape.
type FormError struct {
	Form string
	Msg  string
}

func (err *FormError) Error() string {
	return fmt.Sprintf("bad %s form: %s", err.Form, err.Msg)
}

// FileError is a failed file operation. Op is the operation, "read" if
// empty.
type FileError struct {
	Op   string
	Name string
	Err  error
}

func (err *FileError) Error() string {
	op := err.Op
	if op == "" {
		op = "read"
	}
	return fmt.Sprintf("cannot %s %q: %v", op, err.Name, err.Err)
}

// Unwrap returns the underlying error.
func (err *FileError) Unwrap() error {
	return err.Err
}
