package codebase

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/leek/config"
	"github.com/dhamidi/leek/leekscript/parser"
	"github.com/tliron/commonlog"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "leek"

var lspLog = commonlog.GetLogger("leek.lsp")

type LSPServer struct {
	codebase *Codebase
	watcher  *FileWatcher
	handler  protocol.Handler
	server   *server.Server
	version  string
	notify   glsp.NotifyFunc
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version: version,
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
		WorkspaceSymbol:            ls.workspaceSymbol,
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

	cfg, cfgPath, err := config.FindAndLoad(rootDir)
	if err != nil {
		lspLog.Warningf("config: %s; using defaults", err)
		cfg = config.DefaultConfig()
	} else if cfgPath != "" {
		lspLog.Infof("loaded %s", cfgPath)
	}
	ls.codebase = New(rootDir, cfg)
	lspLog.Infof("initialize %s", rootDir)

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
	ls.notify = ctx.Notify
	if err := ls.codebase.ScanAll(); err != nil {
		lspLog.Warningf("scan: %s", err)
	}
	for _, path := range ls.codebase.Paths() {
		ls.publishDiagnostics(path)
	}

	ls.watcher = NewFileWatcher(ls.codebase)
	ls.watcher.OnChange(ls.publishDiagnostics)
	ls.watcher.Start()
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	lspLog.Info("shutdown")
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publishDiagnostics(path)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.codebase.UpdateFile(path, []byte(textChange.Text))
			ls.publishDiagnostics(path)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else if err := ls.codebase.ScanFile(path); err != nil {
		lspLog.Warningf("rescan %s: %s", path, err)
	}
	ls.publishDiagnostics(path)
	return nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	file := ls.codebase.GetFile(path)
	if file == nil {
		return nil, nil
	}
	return documentSymbols(string(file.Content), file.Symbols), nil
}

func (ls *LSPServer) workspaceSymbol(ctx *glsp.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	var out []protocol.SymbolInformation
	for _, sym := range ls.codebase.Symbols(params.Query) {
		file := ls.codebase.GetFile(sym.Path)
		if file == nil {
			continue
		}
		out = append(out, symbolInformation(string(file.Content), sym))
	}
	return out, nil
}

// publishDiagnostics sends the parse failure of path, or an empty list to
// clear earlier ones.
func (ls *LSPServer) publishDiagnostics(path string) {
	if ls.notify == nil {
		return
	}
	diagnostics := []protocol.Diagnostic{}
	if file := ls.codebase.GetFile(path); file != nil {
		diagnostics = fileDiagnostics(file)
	}
	ls.notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(path),
		Diagnostics: diagnostics,
	})
}

func fileDiagnostics(file *FileInfo) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	perr, ok := file.Diagnostic()
	if !ok {
		return diagnostics
	}
	pos := toProtocolPosition(string(file.Content), perr.Pos)
	severity := protocol.DiagnosticSeverityError
	source := lsName
	message := perr.Error()
	if prefix := perr.Pos.String() + ": "; strings.HasPrefix(message, prefix) {
		message = message[len(prefix):]
	}
	return append(diagnostics, protocol.Diagnostic{
		Range:    protocol.Range{Start: pos, End: pos},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	})
}

func documentSymbols(content string, symbols []Symbol) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, sym := range symbols {
		ds := protocol.DocumentSymbol{
			Name:           sym.Name,
			Kind:           toProtocolSymbolKind(sym.Kind),
			Range:          toProtocolRange(content, sym.Span),
			SelectionRange: toProtocolRange(content, sym.NameSpan),
		}
		if sym.Detail != "" {
			detail := sym.Detail
			ds.Detail = &detail
		}
		if len(sym.Children) > 0 {
			ds.Children = documentSymbols(content, sym.Children)
		}
		out = append(out, ds)
	}
	return out
}

func symbolInformation(content string, sym Symbol) protocol.SymbolInformation {
	info := protocol.SymbolInformation{
		Name: sym.Name,
		Kind: toProtocolSymbolKind(sym.Kind),
		Location: protocol.Location{
			URI:   pathToURI(sym.Path),
			Range: toProtocolRange(content, sym.NameSpan),
		},
	}
	if sym.Container != "" {
		container := sym.Container
		info.ContainerName = &container
	}
	return info
}

func toProtocolSymbolKind(kind SymbolKind) protocol.SymbolKind {
	switch kind {
	case SymbolClass:
		return protocol.SymbolKindClass
	case SymbolConstructor:
		return protocol.SymbolKindConstructor
	case SymbolMethod:
		return protocol.SymbolKindMethod
	case SymbolField:
		return protocol.SymbolKindField
	case SymbolFunction:
		return protocol.SymbolKindFunction
	default:
		return protocol.SymbolKindVariable
	}
}

func toProtocolRange(content string, span parser.Span) protocol.Range {
	return protocol.Range{
		Start: toProtocolPosition(content, span.Start),
		End:   toProtocolPosition(content, span.End),
	}
}

// toProtocolPosition converts a byte offset into a zero-based line and a
// UTF-16 column.
func toProtocolPosition(content string, p parser.Position) protocol.Position {
	offset := min(p.Offset, len(content))
	lineStart := strings.LastIndexByte(content[:offset], '\n') + 1
	var character int
	for _, r := range content[lineStart:offset] {
		if r >= 0x10000 && r != utf8.RuneError {
			character += 2
		} else {
			character++
		}
	}
	return protocol.Position{
		Line:      protocol.UInteger(max(p.Line-1, 0)),
		Character: protocol.UInteger(character),
	}
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

func pathToURI(path string) protocol.DocumentUri {
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
