// Package lsp serves document and range formatting to editors over the
// Language Server Protocol.
package lsp

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"swiftformat/internal/config"
	"swiftformat/internal/driver"
	"swiftformat/internal/format"
)

const lsName = "swiftformat"

// Keys of protocol.FormattingOptions read by the server.
const (
	optionTabSize      = "tabSize"
	optionInsertSpaces = "insertSpaces"
)

var log = commonlog.GetLogger("swiftformat.lsp")

// ErrNotOpen is returned when formatting is requested for a document the
// client never opened.
var ErrNotOpen = errors.New("document is not open")

// Server is a formatting-only language server.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	docs    *documents
	version string
	root    string
	// settings resolves configuration; its Mode and Sink are ignored.
	settings driver.Options
	run      format.RunOptions
}

// NewServer creates a server. settings supplies configuration the same way
// the command line does.
func NewServer(version string, settings driver.Options, run format.RunOptions) *Server {
	if settings.Configs == nil {
		settings.Configs = config.NewCache(settings.Base)
	}
	s := &Server{
		docs:     newDocuments(),
		version:  version,
		settings: settings,
		run:      run,
	}
	s.handler = protocol.Handler{
		Initialize:                  s.initialize,
		Initialized:                 s.initialized,
		Shutdown:                    s.shutdown,
		SetTrace:                    s.setTrace,
		TextDocumentDidOpen:         s.textDocumentDidOpen,
		TextDocumentDidChange:       s.textDocumentDidChange,
		TextDocumentDidClose:        s.textDocumentDidClose,
		TextDocumentFormatting:      s.textDocumentFormatting,
		TextDocumentRangeFormatting: s.textDocumentRangeFormatting,
	}
	s.server = server.NewServer(&s.handler, lsName, false)
	return s
}

// RunStdio serves requests on stdin/stdout until the client exits.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	switch {
	case params.RootURI != nil && *params.RootURI != "":
		s.root = uriToPath(*params.RootURI)
	case params.RootPath != nil:
		s.root = *params.RootPath
	}
	log.Info("initialize", "root", s.root)

	capabilities := s.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
	}
	capabilities.DocumentFormattingProvider = true
	capabilities.DocumentRangeFormattingProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	log.Info("shutdown", "open", s.docs.len())
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(_ *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.open(params.TextDocument.URI, params.TextDocument.Version, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(_ *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if !s.docs.change(params.TextDocument.URI, params.TextDocument.Version, params.ContentChanges) {
		log.Warning("change for unopened document", "uri", params.TextDocument.URI)
	}
	return nil
}

func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.close(params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	return s.format(params.TextDocument.URI, params.Options, 0, 0)
}

func (s *Server) textDocumentRangeFormatting(_ *glsp.Context, params *protocol.DocumentRangeFormattingParams) ([]protocol.TextEdit, error) {
	first, last := lineSpan(params.Range)
	return s.format(params.TextDocument.URI, params.Options, first, last)
}

// format answers a formatting request with a single whole-document edit.
// firstLine and lastLine are 1-based; zero formats everything.
func (s *Server) format(uri protocol.DocumentUri, fo protocol.FormattingOptions, firstLine, lastLine int) ([]protocol.TextEdit, error) {
	doc, ok := s.docs.get(uri)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotOpen, uri)
	}

	opts, rs, err := s.settings.Settings(documentDir(uri, s.root))
	if err != nil {
		return nil, err
	}
	applyEditorOptions(&opts, fo)
	opts.FileInfo = config.FileInfo{FilePath: uriToPath(uri)}

	out, err := driver.FormatSource(driver.Source{
		Text:      []byte(doc.text),
		Options:   opts,
		Rules:     rs,
		FirstLine: firstLine,
		LastLine:  lastLine,
	}, s.run)
	if err != nil {
		log.Warning("formatting failed", "uri", uri, "error", err)
		return nil, err
	}
	return wholeDocumentEdit(doc.text, string(out.Text)), nil
}

// lineSpan converts an LSP range into 1-based inclusive lines. A selection
// ending at the start of a line does not include that line.
func lineSpan(r protocol.Range) (first, last int) {
	first = toInt(r.Start.Line) + 1
	last = toInt(r.End.Line) + 1
	if r.End.Character == 0 && last > first {
		last--
	}
	return first, last
}

// applyEditorOptions lets the editor's tab settings win over configuration.
func applyEditorOptions(opts *config.Options, fo protocol.FormattingOptions) {
	size, hasSize := intOption(fo[optionTabSize])
	if hasSize && size > 0 {
		opts.TabWidth = size
	}
	insertSpaces, ok := fo[optionInsertSpaces].(bool)
	if !ok {
		return
	}
	if !insertSpaces {
		_ = opts.Set("indent", "tab")
		return
	}
	if hasSize && size > 0 {
		_ = opts.Set("indent", strconv.Itoa(size))
	}
}

func intOption(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case protocol.Integer:
		return int(n), true
	case protocol.UInteger:
		return toInt(n), true
	default:
		return 0, false
	}
}

func boolPtr(b bool) *bool {
	return &b
}
