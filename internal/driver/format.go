package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/tliron/commonlog"

	"swiftformat/internal/buffer"
	"swiftformat/internal/config"
	"swiftformat/internal/format"
	"swiftformat/internal/lexer"
	"swiftformat/internal/rules"
	"swiftformat/internal/source"
)

var log = commonlog.GetLogger("swiftformat.driver")

// Extension is the suffix of files collected from directories.
const Extension = ".swift"

// ErrNoFiles is returned by FormatPaths when the paths contain no source files.
var ErrNoFiles = errors.New("no source files found")

// Mode selects what FormatPaths does with the formatted output.
type Mode uint8

const (
	// ModeWrite rewrites changed files in place.
	ModeWrite Mode = iota
	// ModeCheck reports which files would change.
	ModeCheck
	// ModeStdout returns the formatted content without touching files.
	ModeStdout
	// ModeLint reports the changes formatting would make.
	ModeLint
)

func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeCheck:
		return "check"
	case ModeStdout:
		return "stdout"
	case ModeLint:
		return "lint"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// Options configures FormatPaths.
type Options struct {
	Mode Mode
	Jobs int

	// Configs resolves per-directory configuration. When nil a fresh cache
	// layered over Base is used.
	Configs *config.Cache
	Base    *config.File
	// Overrides are option values that win over every configuration file.
	Overrides map[string]string

	// Rule selection applied after the configuration files' own selection.
	// A non-empty Rules replaces the configured rule list.
	Rules   []string
	Enable  []string
	Disable []string

	// FirstLine and LastLine restrict formatting to a line span. Zero means
	// the whole file.
	FirstLine, LastLine int

	Run      format.RunOptions
	Cache    *ResultCache
	Metadata MetadataProvider
	Sink     Sink
}

// FileResult captures the result of processing a single file.
type FileResult struct {
	Path    string
	Changed bool
	Cached  bool
	// FirstChangedLine is the first line of the input whose text differs
	// in the output, or zero.
	FirstChangedLine int
	Changes          []buffer.Change
	Formatted        []byte
	Err              error
}

// FormatPaths formats the provided files, and the *.swift files found under
// the provided directories, in parallel. Per-file failures are reported in
// the results; the returned error is reserved for collection failures and
// cancellation. Results are sorted by path.
func FormatPaths(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Configs == nil {
		opts.Configs = config.NewCache(opts.Base)
	}

	phase := opts.Run.Timer.Begin("collect files")
	files, err := collectSourceFiles(ctx, paths, opts.Configs)
	opts.Run.Timer.End(phase, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	log.Info("formatting", "files", len(files), "mode", opts.Mode.String())

	results := make([]FileResult, len(files))
	for i, path := range files {
		results[i].Path = path
		opts.Sink.Emit(Event{Path: path, Status: FileQueued, Index: i, Total: len(files)})
	}

	err = forEachFile(ctx, files, opts.Jobs, func(ctx context.Context, i int, path string) {
		start := time.Now()
		opts.Sink.Emit(Event{Path: path, Status: FileStarted, Index: i, Total: len(files)})
		res := processFile(ctx, path, opts)
		results[i] = res
		if res.Err != nil {
			log.Warning("file failed", "path", path, "error", res.Err)
		}
		opts.Sink.Emit(Event{
			Path:    path,
			Status:  FileDone,
			Index:   i,
			Total:   len(files),
			Changed: res.Changed,
			Cached:  res.Cached,
			Err:     res.Err,
			Elapsed: time.Since(start),
		})
	})
	return results, err
}

// Settings resolves the options and rules that apply to a file in dir.
func (o Options) Settings(dir string) (config.Options, []*rules.Rule, error) {
	configs := o.Configs
	if configs == nil {
		configs = config.NewCache(o.Base)
	}
	f, err := configs.Resolve(dir)
	if err != nil {
		return config.Options{}, nil, &format.ConfigError{Message: err.Error(), Err: err}
	}

	opts := config.Default()
	if err := opts.Apply(f.Options); err != nil {
		return config.Options{}, nil, &format.ConfigError{Message: fmt.Sprintf("%s: %v", strings.Join(f.Sources, ", "), err), Err: err}
	}
	if err := opts.Apply(o.Overrides); err != nil {
		return config.Options{}, nil, &format.ConfigError{Message: err.Error(), Err: err}
	}

	only := f.Rules
	if len(o.Rules) > 0 {
		only = o.Rules
	}
	rs, err := rules.All().Select(
		only,
		append(slices.Clone(f.Enable), o.Enable...),
		append(slices.Clone(f.Disable), o.Disable...),
	)
	if err != nil {
		return config.Options{}, nil, &format.ConfigError{Message: err.Error(), Err: err}
	}
	return opts, rs, nil
}

func processFile(ctx context.Context, path string, opts Options) FileResult {
	result := FileResult{Path: path}

	data, err := os.ReadFile(path) // #nosec G304 -- paths come from the command line
	if err != nil {
		result.Err = err
		return result
	}

	resolveStart := time.Now()
	fopts, rs, err := opts.Settings(filepath.Dir(path))
	opts.Run.Timer.Add("resolve settings", time.Since(resolveStart))
	if err != nil {
		result.Err = err
		return result
	}
	fopts.FileInfo = config.FileInfo{FilePath: path}
	if opts.Metadata != nil && needsMetadata(fopts, rs) {
		info, err := opts.Metadata.FileInfo(ctx, path)
		if err != nil {
			result.Err = err
			return result
		}
		fopts.FileInfo = info
	}

	cacheable := opts.Cache != nil && opts.FirstLine == 0 && opts.LastLine == 0
	if cacheable {
		hit, err := opts.Cache.Has(cacheKey(data, fopts, rs))
		if err != nil {
			log.Warning("result cache read failed", "path", path, "error", err)
		}
		if hit {
			result.Cached = true
			if opts.Mode == ModeStdout {
				result.Formatted = data
			}
			return result
		}
	}

	run := opts.Run
	if opts.Mode == ModeLint {
		run.TrackChanges = true
	}
	out, err := FormatSource(Source{
		Text:      data,
		Options:   fopts,
		Rules:     rs,
		FirstLine: opts.FirstLine,
		LastLine:  opts.LastLine,
	}, run)
	if err != nil {
		result.Err = err
		return result
	}
	changed := !bytes.Equal(data, out.Text)
	result.FirstChangedLine = out.FirstChangedLine

	switch opts.Mode {
	case ModeCheck:
		result.Changed = changed
	case ModeLint:
		result.Changes = out.Changes
		result.Changed = len(out.Changes) > 0
	case ModeStdout:
		result.Formatted = out.Text
		result.Changed = changed
	default:
		if changed {
			mode := os.FileMode(0o644)
			if info, statErr := os.Stat(path); statErr == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(path, out.Text, mode.Perm()); err != nil {
				result.Err = err
				return result
			}
			result.Changed = true
		}
	}

	if cacheable && (opts.Mode == ModeWrite || !changed) {
		if err := opts.Cache.Put(cacheKey(out.Text, fopts, rs), path, len(out.Text)); err != nil {
			log.Warning("result cache write failed", "path", path, "error", err)
		}
	}
	return result
}

// needsMetadata reports whether the header rule will expand a template.
func needsMetadata(opts config.Options, rs []*rules.Rule) bool {
	return strings.Contains(opts.FileHeader, "{") && slices.Contains(rules.Names(rs), "fileHeader")
}

// Source is one in-memory input.
type Source struct {
	Text    []byte
	Options config.Options
	Rules   []*rules.Rule
	// FirstLine and LastLine restrict formatting to a line span; zero
	// means the whole text.
	FirstLine, LastLine int
	// Cursor, when set, is remapped to the same token in the output.
	Cursor *source.Offset
}

// Output is the formatted form of a Source.
type Output struct {
	Text    []byte
	Changes []buffer.Change
	// FirstChangedLine is the first input line whose text differs in Text,
	// or zero when nothing changed.
	FirstChangedLine int
	Cursor           *source.Offset
	// Options is the configuration the rules saw, after inference.
	Options config.Options
}

// FormatSource tokenizes and formats one input.
func FormatSource(src Source, run format.RunOptions) (*Output, error) {
	tokens := lexer.Tokenize(string(src.Text))
	if src.FirstLine > 0 || src.LastLine > 0 {
		last := src.LastLine
		if last <= 0 {
			last = source.LineForToken(tokens, len(tokens))
		}
		first := max(src.FirstLine, 1)
		if first > last {
			return nil, &format.ConfigError{Message: fmt.Sprintf("invalid line range %d:%d", src.FirstLine, src.LastLine)}
		}
		rng := source.TokenRange(tokens, first, last)
		run.Range = &rng
	}

	res, err := format.Run(tokens, src.Rules, src.Options, run)
	if err != nil {
		return nil, err
	}
	out := &Output{
		Text:             []byte(source.Render(res.Tokens)),
		Changes:          res.Changes,
		FirstChangedLine: firstChangedLine(source.Lines(tokens), source.Lines(res.Tokens)),
		Options:          res.Options,
	}
	if src.Cursor != nil {
		c := source.RemapOffset(*src.Cursor, res.Tokens, res.Options.TabWidth)
		out.Cursor = &c
	}
	return out, nil
}

func firstChangedLine(before, after []string) int {
	for i := range min(len(before), len(after)) {
		if before[i] != after[i] {
			return i + 1
		}
	}
	if len(before) != len(after) {
		return min(len(before), len(after)) + 1
	}
	return 0
}

// collectSourceFiles expands directories into the *.swift files below them,
// skipping hidden directories and anything matched by a configured exclude
// pattern. Files named explicitly are always kept.
func collectSourceFiles(ctx context.Context, paths []string, configs *config.Cache) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}
	excluded := func(path string) (bool, error) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return false, err
		}
		f, err := configs.Resolve(filepath.Dir(abs))
		if err != nil {
			return false, err
		}
		return f.Excludes(abs), nil
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(filepath.Clean(p))
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				if skip, err := excluded(path); err != nil {
					return err
				} else if skip && path != p {
					log.Debug("excluded", "path", path)
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != Extension {
				return nil
			}
			skip, err := excluded(path)
			if err != nil {
				return err
			}
			if skip {
				log.Debug("excluded", "path", path)
				return nil
			}
			addFile(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
