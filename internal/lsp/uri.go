package lsp

import (
	"net/url"
	"path/filepath"
)

func uriToPath(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "" && parsed.Scheme != "file" {
		return ""
	}
	path := parsed.Path
	if parsed.Scheme == "" {
		path = uri
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	path = filepath.FromSlash(path)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}

// documentDir returns the directory whose configuration applies to uri.
// Documents without a file path (untitled buffers) use the workspace root.
func documentDir(uri, root string) string {
	if path := uriToPath(uri); path != "" {
		return filepath.Dir(path)
	}
	if root != "" {
		return root
	}
	return "."
}
