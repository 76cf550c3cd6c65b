package ajex

import (
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/exp/ebnf"
)

// GrammarStart is the start production of GrammarSource.
const GrammarStart = "Directives"

// GrammarSource describes the directive format line by line. Lines are
// classified by their first character alone; which lines are legal where
// is decided by the tokenizer and Build, not by the grammar.
//
//go:embed grammar.ebnf
var GrammarSource string

// Grammar parses and verifies GrammarSource.
func Grammar() (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse("grammar.ebnf", strings.NewReader(GrammarSource))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(grammar, GrammarStart); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return grammar, nil
}
