package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"swiftformat/internal/config"
	"swiftformat/internal/driver"
	"swiftformat/internal/format"
	"swiftformat/internal/observ"
	"swiftformat/internal/source"
)

var (
	errFormattingRequired = errors.New("formatting changes required")
	errFilesFailed        = errors.New("failed to format some files")
)

var formatCmd = &cobra.Command{
	Use:   "format [flags] [path...]",
	Short: "Format Swift source files",
	Long: `Format rewrites the given files, and the *.swift files below the given
directories, in place. With --check nothing is written and the command fails
when a file would change; with --stdout the formatted code is printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFormat(cmd, args, driver.ModeWrite)
	},
}

var lintCmd = &cobra.Command{
	Use:   "lint [flags] [path...]",
	Short: "Report the changes formatting would make",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFormat(cmd, args, driver.ModeLint)
	},
}

func init() {
	addFormatFlags(formatCmd)
	addFormatFlags(lintCmd)
	formatCmd.Flags().Bool("check", false, "report files that would change without writing them")
	formatCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
}

func addFormatFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSlice("rules", nil, "apply only these rules")
	f.StringSlice("enable", nil, "enable additional rules")
	f.StringSlice("disable", nil, "disable rules")
	f.String("config", "", "configuration file layered beneath the ones found next to the sources")
	f.StringToString("option", nil, "set a formatting option (name=value, repeatable)")
	f.String("lines", "", "only format lines first:last")
	f.Bool("fragment", false, "treat the input as a code fragment")
	f.Bool("stdin", false, "read source code from stdin")
	f.String("stdin-path", "", "with --stdin, path used to resolve configuration and the file header")
	f.String("cursor", "", "with --stdin, report where line:column moves to")
	f.Bool("cache", false, "skip files already formatted with the same configuration")
	f.Bool("clear-cache", false, "drop cached results before running")
	f.Uint("jobs", 0, "number of files processed in parallel (0 = GOMAXPROCS)")
	f.String("ui", "auto", "show progress UI (auto|on|off)")
	f.String("report", "text", "report format (text|json)")
	f.Int("max-iterations", format.DefaultMaxIterations, "maximum number of formatting passes")
	f.Duration("timeout", format.DefaultBaseTimeout, "base time limit for one rule application")
}

type formatFlags struct {
	mode       driver.Mode
	report     string
	ui         uiMode
	quiet      bool
	timings    bool
	stdin      bool
	stdinPath  string
	cursor     *source.Offset
	cache      bool
	clearCache bool
	driverOpts driver.Options
}

func readFormatFlags(cmd *cobra.Command, mode driver.Mode) (*formatFlags, error) {
	f := cmd.Flags()
	ff := &formatFlags{mode: mode}
	var err error

	if mode == driver.ModeWrite {
		check, _ := f.GetBool("check")
		stdout, _ := f.GetBool("stdout")
		if check && stdout {
			return nil, errors.New("--stdout cannot be used with --check")
		}
		switch {
		case check:
			ff.mode = driver.ModeCheck
		case stdout:
			ff.mode = driver.ModeStdout
		}
	}

	if ff.report, err = f.GetString("report"); err != nil {
		return nil, err
	}
	ff.report = strings.ToLower(ff.report)
	if ff.report != "text" && ff.report != "json" {
		return nil, fmt.Errorf("unsupported report format %q (expected text|json)", ff.report)
	}
	if ff.mode == driver.ModeStdout && ff.report != "text" {
		return nil, errors.New("--stdout is only supported with text reports")
	}
	uiValue, _ := f.GetString("ui")
	if ff.ui, err = readUIMode(uiValue); err != nil {
		return nil, err
	}
	if ff.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return nil, err
	}
	if ff.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return nil, err
	}
	ff.stdin, _ = f.GetBool("stdin")
	ff.stdinPath, _ = f.GetString("stdin-path")
	cursor, _ := f.GetString("cursor")
	if ff.cursor, err = parseCursor(cursor); err != nil {
		return nil, err
	}
	ff.cache, _ = f.GetBool("cache")
	ff.clearCache, _ = f.GetBool("clear-cache")

	opts := &ff.driverOpts
	opts.Mode = ff.mode
	opts.Rules, _ = f.GetStringSlice("rules")
	opts.Enable, _ = f.GetStringSlice("enable")
	opts.Disable, _ = f.GetStringSlice("disable")
	if opts.Overrides, err = f.GetStringToString("option"); err != nil {
		return nil, err
	}
	if opts.Overrides == nil {
		opts.Overrides = map[string]string{}
	}
	if fragment, _ := f.GetBool("fragment"); fragment {
		opts.Overrides["fragment"] = "true"
	}
	lines, _ := f.GetString("lines")
	if opts.FirstLine, opts.LastLine, err = parseLineSpan(lines); err != nil {
		return nil, err
	}

	jobs, _ := f.GetUint("jobs")
	if opts.Jobs, err = safecast.Conv[int](jobs); err != nil {
		return nil, fmt.Errorf("--jobs: %w", err)
	}
	opts.Run.MaxIterations, _ = f.GetInt("max-iterations")
	opts.Run.BaseTimeout, _ = f.GetDuration("timeout")
	if ff.timings {
		opts.Run.Timer = observ.NewTimer()
	}

	if path, _ := f.GetString("config"); path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		if opts.Base, err = config.LoadFile(abs); err != nil {
			return nil, err
		}
	}
	opts.Configs = config.NewCache(opts.Base)
	opts.Metadata = driver.GitMetadata{}
	return ff, nil
}

func runFormat(cmd *cobra.Command, args []string, mode driver.Mode) error {
	ff, err := readFormatFlags(cmd, mode)
	if err != nil {
		return err
	}

	var results []driver.FileResult
	start := time.Now()
	if ff.stdin {
		res, err := formatStdin(cmd, ff)
		if err != nil {
			return err
		}
		results = []driver.FileResult{res}
	} else {
		if len(args) == 0 {
			return errors.New("no input paths (pass files or directories, or use --stdin)")
		}
		if ff.cache || ff.clearCache {
			cache, err := driver.OpenResultCache("swiftformat")
			if err != nil {
				return fmt.Errorf("result cache: %w", err)
			}
			if ff.clearCache {
				if err := cache.DropAll(); err != nil {
					return fmt.Errorf("result cache: %w", err)
				}
			}
			if ff.cache {
				ff.driverOpts.Cache = cache
			}
		}

		useUI, why := progressView(ff, detectTerminals())
		if !useUI {
			log.Debug("progress view off", "reason", why)
		}
		if useUI {
			results, err = runFormatWithUI(cmd.Context(), cmd.Name(), args, ff.driverOpts)
		} else {
			results, err = driver.FormatPaths(cmd.Context(), args, ff.driverOpts)
		}
		if err != nil {
			return err
		}
	}

	if ff.timings && ff.driverOpts.Run.Timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ff.driverOpts.Run.Timer.Summary())
	}

	sum := summarize(results)
	switch ff.report {
	case "json":
		if err := renderJSON(cmd.OutOrStdout(), results, ff.mode); err != nil {
			return err
		}
	default:
		renderText(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, ff.mode, ff.quiet)
		if !ff.quiet && !ff.stdin {
			renderSummary(cmd.ErrOrStderr(), sum, ff.mode, time.Since(start))
		}
	}
	return sum.err(ff.mode)
}

// formatStdin formats source read from stdin and reports it as a single
// result. The cursor, if any, is remapped and printed on stderr.
func formatStdin(cmd *cobra.Command, ff *formatFlags) (driver.FileResult, error) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return driver.FileResult{}, err
	}
	res := driver.FileResult{Path: "<stdin>"}

	dir := "."
	if ff.stdinPath != "" {
		dir = filepath.Dir(ff.stdinPath)
		res.Path = ff.stdinPath
	}
	opts, rs, err := ff.driverOpts.Settings(dir)
	if err != nil {
		return res, err
	}
	opts.FileInfo = config.FileInfo{FilePath: ff.stdinPath}
	if ff.stdinPath != "" {
		if info, err := ff.driverOpts.Metadata.FileInfo(cmd.Context(), ff.stdinPath); err == nil {
			opts.FileInfo = info
		}
	}

	run := ff.driverOpts.Run
	run.TrackChanges = ff.mode == driver.ModeLint
	out, err := driver.FormatSource(driver.Source{
		Text:      data,
		Options:   opts,
		Rules:     rs,
		FirstLine: ff.driverOpts.FirstLine,
		LastLine:  ff.driverOpts.LastLine,
		Cursor:    ff.cursor,
	}, run)
	if err != nil {
		res.Err = err
		return res, nil
	}

	res.Changed = string(out.Text) != string(data)
	res.FirstChangedLine = out.FirstChangedLine
	switch ff.mode {
	case driver.ModeLint:
		res.Changes = out.Changes
		res.Changed = len(out.Changes) > 0
	case driver.ModeWrite:
		// Source from stdin can only go back to stdout.
		ff.mode = driver.ModeStdout
		res.Formatted = out.Text
	case driver.ModeStdout:
		res.Formatted = out.Text
	}
	if out.Cursor != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "cursor: %d:%d\n", out.Cursor.Line, out.Cursor.Column+1)
	}
	return res, nil
}

type summary struct {
	files, changed, cached, failed, issues int
}

func summarize(results []driver.FileResult) summary {
	s := summary{files: len(results)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.failed++
		case r.Cached:
			s.cached++
		case r.Changed:
			s.changed++
		}
		s.issues += len(r.Changes)
	}
	return s
}

func (s summary) err(mode driver.Mode) error {
	switch {
	case s.failed > 0:
		return errFilesFailed
	case mode == driver.ModeCheck && s.changed > 0:
		return errFormattingRequired
	case mode == driver.ModeLint && s.issues > 0:
		return fmt.Errorf("lint found %s in %s", plural(s.issues, "issue"), plural(s.changed, "file"))
	default:
		return nil
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
