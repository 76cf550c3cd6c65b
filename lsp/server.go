// Package lsp serves directive files over the Language Server Protocol:
// diagnostics on open, change and save, and an outline of blocks,
// directives and metadata.
package lsp

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const (
	lsName = "artisan"

	// cacheSize bounds the number of analysed documents kept in memory.
	cacheSize = 256
)

type LSPServer struct {
	handler protocol.Handler
	server  *server.Server
	version string
	log     commonlog.Logger

	documents *lru.Cache[string, *Document]
	watcher   *FileWatcher

	mu     sync.Mutex
	open   map[string]bool
	notify glsp.NotifyFunc
}

func NewLSPServer(version string) *LSPServer {
	documents, err := lru.New[string, *Document](cacheSize)
	if err != nil {
		// Only a non-positive size fails.
		panic(err)
	}

	ls := &LSPServer{
		version:   version,
		log:       commonlog.GetLogger("artisan.lsp"),
		documents: documents,
		open:      make(map[string]bool),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}
	ls.watcher = NewFileWatcher(rootDir, ls.fileChanged, ls.fileRemoved)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.mu.Lock()
	ls.notify = ctx.Notify
	ls.mu.Unlock()

	if ls.watcher != nil {
		ls.watcher.Start()
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.mu.Lock()
	ls.open[params.TextDocument.URI] = true
	ls.mu.Unlock()

	ls.update(ctx.Notify, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(ctx.Notify, params.TextDocument.URI, textChange.Text)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.open, params.TextDocument.URI)
	ls.mu.Unlock()
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI
	if params.Text != nil {
		ls.update(ctx.Notify, uri, *params.Text)
		return nil
	}
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	ls.updateFromDisk(ctx.Notify, uri, path)
	return nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, ok := ls.documents.Get(params.TextDocument.URI)
	if !ok {
		path, err := uriToPath(params.TextDocument.URI)
		if err != nil {
			return nil, nil
		}
		if doc = ls.updateFromDisk(nil, params.TextDocument.URI, path); doc == nil {
			return nil, nil
		}
	}
	return doc.Symbols, nil
}

// update re-analyses a document and publishes its diagnostics when notify
// is set.
func (ls *LSPServer) update(notify glsp.NotifyFunc, uri, text string) *Document {
	doc := Analyze(uri, text)
	ls.documents.Add(uri, doc)
	ls.log.Debug("analysed document", "uri", uri, "diagnostics", len(doc.Diagnostics))

	if notify != nil {
		diagnostics := doc.Diagnostics
		if diagnostics == nil {
			diagnostics = []protocol.Diagnostic{}
		}
		notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: diagnostics,
		})
	}
	return doc
}

func (ls *LSPServer) updateFromDisk(notify glsp.NotifyFunc, uri, path string) *Document {
	content, err := os.ReadFile(path)
	if err != nil {
		ls.log.Warning("unable to read document", "path", path, "error", err)
		return nil
	}
	return ls.update(notify, uri, string(content))
}

// fileChanged refreshes a directive file that changed on disk unless the
// client has it open, in which case the client's copy is authoritative.
func (ls *LSPServer) fileChanged(path string) {
	uri := pathToURI(path)
	ls.mu.Lock()
	notify, open := ls.notify, ls.open[uri]
	ls.mu.Unlock()
	if open {
		return
	}
	ls.updateFromDisk(notify, uri, path)
}

func (ls *LSPServer) fileRemoved(path string) {
	ls.documents.Remove(pathToURI(path))
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
