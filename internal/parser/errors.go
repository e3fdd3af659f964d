package parser

import (
	"errors"
	"fmt"

	"github.com/roach88/gapp/internal/ir"
)

// Parse error codes (E200-E299).
const (
	ErrCodeBadArgument     = "E200" // visitor argument is not a string
	ErrCodeMissingEquals   = "E201" // equation without '='
	ErrCodeBadSelectorTerm = "E202" // expected name[...] term
	ErrCodeBadSelector     = "E203" // selector is not a (signed) integer
	ErrCodeBadDotProduct   = "E204" // right-hand side not bracketed by <...>
	ErrCodeBadCalculation  = "E205" // expected OP(...)
	ErrCodeUnknownOperator = "E206" // operator not a calculation type
	ErrCodeArity           = "E207" // calculation with other than 1 or 2 operands
	ErrCodeUnresolved      = "E208" // resolver rejected a name
	ErrCodeEmptyName       = "E209" // empty name or list element
	ErrCodeDestSelector    = "E210" // dotVectors needs exactly one destination selector
)

// ParseError describes why an instruction text could not be parsed.
type ParseError struct {
	Code        string
	Instruction ir.Kind // variant being parsed; KindInvalid outside Parse
	Text        string  // full instruction text
	Message     string
	Err         error // underlying error, e.g. from the resolver
}

func (e *ParseError) Error() string {
	var msg string
	if e.Instruction != ir.KindInvalid {
		msg = fmt.Sprintf("[%s] %s %q: %s", e.Code, e.Instruction, e.Text, e.Message)
	} else {
		msg = fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

func newError(code, format string, args ...any) *ParseError {
	return &ParseError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// annotate attaches the instruction kind and text to a parse error raised
// by a grammar helper.
func annotate(err error, kind ir.Kind, text string) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		if pe.Instruction == ir.KindInvalid {
			pe.Instruction = kind
			pe.Text = text
		}
		return pe
	}
	return &ParseError{Code: ErrCodeUnresolved, Instruction: kind, Text: text, Message: "parse failed", Err: err}
}
