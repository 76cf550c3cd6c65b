package ajex

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is wrapped by every error caused by structurally
	// invalid directive text.
	ErrMalformedInput = errors.New("malformed directive input")

	// ErrContractViolation is returned when the tree API is misused, e.g.
	// adding a container below a literal.
	ErrContractViolation = errors.New("contract violation")

	// ErrExhausted is returned by Tokenizer.Next once the input is consumed.
	ErrExhausted = errors.New("no more tokens")
)

// SyntaxError reports malformed input together with the line it was found on.
type SyntaxError struct {
	Line int
	Text string
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Msg, e.Text)
}

func (e *SyntaxError) Unwrap() error {
	return ErrMalformedInput
}

func syntaxErrorf(tok Token, format string, args ...any) error {
	return &SyntaxError{Line: tok.Line, Text: tok.Text, Msg: fmt.Sprintf(format, args...)}
}
