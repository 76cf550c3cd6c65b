package lsp

import (
	"errors"
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/VoidCRDev/Artisan/ajex"
	"github.com/VoidCRDev/Artisan/extension/access"
)

// Document is the analysis of one directive file.
type Document struct {
	URI         string
	Text        string
	Tokens      []ajex.Token
	Root        *ajex.Node
	Diagnostics []protocol.Diagnostic
	Symbols     []protocol.DocumentSymbol

	lines []string
}

// Analyze tokenizes and builds text, collecting every problem it finds.
// Root is nil when the text does not form a valid tree.
func Analyze(uri, text string) *Document {
	doc := &Document{
		URI:   uri,
		Text:  text,
		lines: strings.Split(text, "\n"),
	}

	tz := ajex.NewTokenizer(strings.NewReader(text))
	for tz.More() {
		tok, err := tz.Next()
		if err != nil {
			doc.addError(err, protocol.DiagnosticSeverityError)
			continue
		}
		doc.Tokens = append(doc.Tokens, tok)
	}

	if root, err := ajex.BuildStrict(doc.Tokens); err != nil {
		doc.addError(err, protocol.DiagnosticSeverityError)
	} else {
		doc.Root = root
	}

	doc.checkRules()
	doc.Symbols = doc.buildSymbols()
	return doc
}

func (d *Document) addError(err error, severity protocol.DiagnosticSeverity) {
	line := 0
	msg := err.Error()
	var syntaxErr *ajex.SyntaxError
	if errors.As(err, &syntaxErr) {
		line = syntaxErr.Line
		msg = syntaxErr.Msg
	}
	d.addDiagnostic(line, msg, severity)
}

func (d *Document) addDiagnostic(line int, msg string, severity protocol.DiagnosticSeverity) {
	source := lsName
	d.Diagnostics = append(d.Diagnostics, protocol.Diagnostic{
		Range:    d.lineRange(line, line),
		Severity: &severity,
		Source:   &source,
		Message:  msg,
	})
}

// checkRules validates the directives of the access block. A rejected
// directive does not stop a run, so these are warnings.
func (d *Document) checkRules() {
	block := ""
	for _, tok := range d.Tokens {
		switch tok.Kind {
		case ajex.TokenOpen:
			block = tok.Text
		case ajex.TokenClose:
			block = ""
		case ajex.TokenEntry:
			if block != access.ContainerName {
				continue
			}
			if _, err := access.ParseRule(tok.Text); err != nil {
				d.addDiagnostic(tok.Line, err.Error(), protocol.DiagnosticSeverityWarning)
			}
		}
	}
}

func (d *Document) buildSymbols() []protocol.DocumentSymbol {
	var symbols []protocol.DocumentSymbol
	var block *protocol.DocumentSymbol
	blockStart := 0

	closeBlock := func(endLine int) {
		block.Range = d.lineRange(blockStart, endLine)
		symbols = append(symbols, *block)
		block = nil
	}

	for _, tok := range d.Tokens {
		switch tok.Kind {
		case ajex.TokenOpen:
			name := strings.TrimSpace(tok.Text)
			if name == "" {
				name = "~"
			}
			blockStart = tok.Line
			block = &protocol.DocumentSymbol{
				Name:           name,
				Kind:           protocol.SymbolKindNamespace,
				SelectionRange: d.lineRange(tok.Line, tok.Line),
			}
		case ajex.TokenClose:
			if block != nil {
				closeBlock(tok.Line)
			}
		case ajex.TokenEntry:
			if block != nil {
				block.Children = append(block.Children, d.lineSymbol(tok, tok.Text, protocol.SymbolKindString))
			}
		case ajex.TokenMeta:
			key, _, _ := strings.Cut(tok.Text, ":")
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if block != nil {
				block.Children = append(block.Children, d.lineSymbol(tok, key, protocol.SymbolKindProperty))
			} else {
				symbols = append(symbols, d.lineSymbol(tok, key, protocol.SymbolKindKey))
			}
		}
	}
	if block != nil {
		closeBlock(len(d.lines))
	}
	return symbols
}

func (d *Document) lineSymbol(tok ajex.Token, name string, kind protocol.SymbolKind) protocol.DocumentSymbol {
	r := d.lineRange(tok.Line, tok.Line)
	return protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          r,
		SelectionRange: r,
	}
}

// lineRange spans 1-based lines from through to, inclusive. Line 0 maps to
// the start of the document.
func (d *Document) lineRange(from, to int) protocol.Range {
	if from < 1 {
		return protocol.Range{}
	}
	if to < from {
		to = from
	}
	end := 0
	if to <= len(d.lines) {
		end = utf8.RuneCountInString(strings.TrimSuffix(d.lines[to-1], "\r"))
	}
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(from - 1)},
		End:   protocol.Position{Line: protocol.UInteger(to - 1), Character: protocol.UInteger(end)},
	}
}
