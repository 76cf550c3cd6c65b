package ajex

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	prefixMeta      = '@'
	prefixComment   = '#'
	prefixOpenClose = '~'
)

type blockState int

const (
	blockClosed blockState = iota
	blockOpen
)

// toggle flips the block state and reports the token kind of the "~" line
// that caused the transition.
func (s *blockState) toggle() TokenKind {
	if *s == blockClosed {
		*s = blockOpen
		return TokenOpen
	}
	*s = blockClosed
	return TokenClose
}

// Tokenizer turns directive text into tokens, one per non-empty line.
// A Tokenizer is single use: once the input is consumed it keeps returning
// ErrExhausted.
type Tokenizer struct {
	r     *bufio.Reader
	id    int
	line  int
	state blockState

	next *Token
	err  error
}

func NewTokenizer(r io.Reader) *Tokenizer {
	return &Tokenizer{r: bufio.NewReader(r)}
}

// More reports whether a call to Next would produce a token or a
// malformed-input error.
func (t *Tokenizer) More() bool {
	t.fill()
	return t.next != nil || !errors.Is(t.err, ErrExhausted)
}

func (t *Tokenizer) Next() (Token, error) {
	t.fill()
	if t.next != nil {
		tok := *t.next
		t.next = nil
		return tok, nil
	}
	err := t.err
	if !errors.Is(err, ErrExhausted) {
		// The offending line is consumed; scanning resumes after it.
		t.err = nil
	}
	return Token{}, err
}

func (t *Tokenizer) fill() {
	if t.next != nil || t.err != nil {
		return
	}
	tok, err := t.scan()
	if err != nil {
		t.err = err
		return
	}
	t.next = &tok
}

func (t *Tokenizer) scan() (Token, error) {
	for {
		text, ok, err := t.readLine()
		if err != nil {
			return Token{}, err
		}
		if !ok {
			return Token{}, ErrExhausted
		}
		if text == "" {
			continue
		}

		switch text[0] {
		case prefixMeta:
			return t.emit(TokenMeta, text[1:]), nil
		case prefixComment:
			return t.emit(TokenComment, text[1:]), nil
		case prefixOpenClose:
			return t.emit(t.state.toggle(), text[1:]), nil
		default:
			if t.state != blockOpen {
				return Token{}, &SyntaxError{
					Line: t.line,
					Text: text,
					Msg:  fmt.Sprintf("unexpected %q outside of a block", text[0]),
				}
			}
			return t.emit(TokenEntry, text), nil
		}
	}
}

func (t *Tokenizer) emit(kind TokenKind, text string) Token {
	tok := Token{ID: t.id, Kind: kind, Text: text, Line: t.line}
	t.id++
	return tok
}

// readLine returns the next line without its terminator and with every
// carriage return removed. ok is false once nothing is left to read.
func (t *Tokenizer) readLine() (string, bool, error) {
	line, err := t.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", false, fmt.Errorf("read directives: %w", err)
	}
	if err == io.EOF && line == "" {
		return "", false, nil
	}
	t.line++
	line = strings.TrimSuffix(line, "\n")
	return strings.ReplaceAll(line, "\r", ""), true, nil
}

// Tokenize drains a Tokenizer over r.
func Tokenize(r io.Reader) ([]Token, error) {
	tz := NewTokenizer(r)
	var tokens []Token
	for tz.More() {
		tok, err := tz.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
