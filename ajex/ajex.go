// Package ajex reads the artisan directive format.
//
// A directive file is line oriented. Lines starting with '@' are "key: value"
// metadata, lines starting with '#' are comments and lines starting with '~'
// alternately open and close a named block. Every other non-empty line is a
// directive and must appear inside a block:
//
//	@Version: 1.0
//	~AT
//	public a/B foo()V
//	@Reason: exposed for tests
//	private a/B bar
//	~end
//
// Metadata declared after the first block belongs to the next directive.
package ajex

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// FileExtension is the conventional suffix of directive files.
const FileExtension = ".ajex"

// Parse tokenizes r and builds its syntax tree.
func Parse(r io.Reader) (*Node, error) {
	tokens, err := Tokenize(r)
	if err != nil {
		return nil, err
	}
	return Build(tokens)
}

func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

func ParseFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open directives: %w", err)
	}
	defer f.Close()

	root, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return root, nil
}

// NewReaderFrom parses r and returns a Reader over the result.
func NewReaderFrom(r io.Reader) (*Reader, error) {
	root, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return NewReader(root)
}
