package lsp

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const validDocument = "@Version: 1.0\n~AT\npublic a/B foo\n@Reason: test\nprivate a/B bar()V\n~\n"

func TestAnalyzeValidDocument(t *testing.T) {
	doc := Analyze("file:///w/access.ajex", validDocument)

	assert.Empty(t, doc.Diagnostics)
	require.NotNil(t, doc.Root)
	assert.Len(t, doc.Tokens, 6)

	require.Len(t, doc.Symbols, 2)
	version := doc.Symbols[0]
	assert.Equal(t, "Version", version.Name)
	assert.Equal(t, protocol.SymbolKindKey, version.Kind)

	block := doc.Symbols[1]
	assert.Equal(t, "AT", block.Name)
	assert.Equal(t, protocol.SymbolKindNamespace, block.Kind)
	assert.Equal(t, protocol.UInteger(1), block.Range.Start.Line)
	assert.Equal(t, protocol.UInteger(5), block.Range.End.Line)

	require.Len(t, block.Children, 3)
	assert.Equal(t, "public a/B foo", block.Children[0].Name)
	assert.Equal(t, protocol.SymbolKindString, block.Children[0].Kind)
	assert.Equal(t, "Reason", block.Children[1].Name)
	assert.Equal(t, protocol.SymbolKindProperty, block.Children[1].Kind)
	assert.Equal(t, protocol.UInteger(4), block.Children[2].Range.Start.Line)
	assert.Equal(t, protocol.UInteger(len("private a/B bar()V")), block.Children[2].Range.End.Character)
}

func TestAnalyzeReportsProblems(t *testing.T) {
	doc := Analyze("file:///w/broken.ajex", "stray\n~AT\nbogus a/B\n")

	assert.Nil(t, doc.Root)
	require.Len(t, doc.Diagnostics, 3)

	tests := []struct {
		line     protocol.UInteger
		severity protocol.DiagnosticSeverity
	}{
		{0, protocol.DiagnosticSeverityError},
		{1, protocol.DiagnosticSeverityError},
		{2, protocol.DiagnosticSeverityWarning},
	}
	byLine := make(map[protocol.UInteger]protocol.Diagnostic)
	for _, d := range doc.Diagnostics {
		byLine[d.Range.Start.Line] = d
	}
	for _, tt := range tests {
		d, ok := byLine[tt.line]
		require.True(t, ok, "no diagnostic on line %d", tt.line)
		assert.Equal(t, tt.severity, *d.Severity, "line %d", tt.line)
		assert.Equal(t, lsName, *d.Source)
	}
	assert.Contains(t, byLine[1].Message, "never closed")

	require.Len(t, doc.Symbols, 1)
	assert.Equal(t, "AT", doc.Symbols[0].Name)
}

func TestAnalyzeIgnoresOtherBlocks(t *testing.T) {
	doc := Analyze("file:///w/x.ajex", "~CUSTOM\nanything goes here\n~\n")
	assert.Empty(t, doc.Diagnostics)
}

func TestURIConversion(t *testing.T) {
	path, err := uriToPath("file:///tmp/a%20b/rules.ajex")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/tmp/a b/rules.ajex"), path)

	path, err = uriToPath("rules.ajex")
	require.NoError(t, err)
	assert.Equal(t, "rules.ajex", path)

	abs := filepath.Join(t.TempDir(), "rules.ajex")
	back, err := uriToPath(pathToURI(abs))
	require.NoError(t, err)
	assert.Equal(t, abs, back)
}

func TestServerPublishesDiagnostics(t *testing.T) {
	ls := NewLSPServer("test")

	var published []protocol.PublishDiagnosticsParams
	ctx := &glsp.Context{Notify: func(method string, params any) {
		assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, method)
		published = append(published, params.(protocol.PublishDiagnosticsParams))
	}}

	uri := "file:///w/access.ajex"
	require.NoError(t, ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "stray\n"},
	}))
	require.NoError(t, ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument:   protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri}},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: validDocument}},
	}))

	require.Len(t, published, 2)
	assert.Len(t, published[0].Diagnostics, 1)
	assert.NotNil(t, published[1].Diagnostics)
	assert.Empty(t, published[1].Diagnostics)

	symbols, err := ls.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.Len(t, symbols, 2)
}

func TestDocumentSymbolReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.ajex")
	require.NoError(t, os.WriteFile(path, []byte(validDocument), 0o644))

	ls := NewLSPServer("test")
	symbols, err := ls.textDocumentDocumentSymbol(&glsp.Context{}, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: pathToURI(path)},
	})
	require.NoError(t, err)
	assert.Len(t, symbols, 2)
}

func TestFileWatcherScan(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "rules.ajex")
	require.NoError(t, os.WriteFile(rules, []byte(validDocument), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "hidden.ajex"), []byte(""), 0o644))

	var changed, removed []string
	w := NewFileWatcher(dir,
		func(path string) { changed = append(changed, path) },
		func(path string) { removed = append(removed, path) },
	)

	w.scan()
	assert.Equal(t, []string{rules}, changed)

	w.scan()
	assert.Len(t, changed, 1, "unchanged files are not reported again")

	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(rules, later, later))
	w.scan()
	assert.Len(t, changed, 2)

	require.NoError(t, os.Remove(rules))
	w.scan()
	assert.Equal(t, []string{rules}, removed)
}
