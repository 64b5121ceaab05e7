// Package config holds the named formatting options read by rules, the
// inference of unpinned options from existing code, and the loading of
// per-directory configuration files.
package config

import "time"

// Options is the bag of formatting preferences. Rules read it; nothing mutates
// it while a rule runs.
type Options struct {
	Indent                string
	Linebreak             string
	TabWidth              int
	TrimWhitespace        string // "always" or "nonblank-lines"
	FileHeader            string // "" leaves headers alone
	ImportGrouping        string // "alpha" or "length"
	MaxBlankLines         int
	FragmentMode          bool
	IgnoreConflictMarkers bool

	FileInfo FileInfo
}

// Default returns the documented defaults.
func Default() Options {
	return Options{
		Indent:         "    ",
		Linebreak:      "\n",
		TabWidth:       4,
		TrimWhitespace: "always",
		ImportGrouping: "alpha",
		MaxBlankLines:  1,
	}
}

// FileInfo carries metadata about the file being formatted. It is supplied by
// the caller (typically from version control) and read by the header rule.
type FileInfo struct {
	FilePath string
	Author   string
	Email    string
	Created  time.Time
}

// FileName returns the base name of FilePath.
func (fi FileInfo) FileName() string {
	for i := len(fi.FilePath) - 1; i >= 0; i-- {
		if fi.FilePath[i] == '/' || fi.FilePath[i] == '\\' {
			return fi.FilePath[i+1:]
		}
	}
	return fi.FilePath
}
