package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"swiftformat/internal/driver"
)

var (
	pathColor    = color.New(color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	okColor      = color.New(color.FgGreen)
)

func renderText(out, errOut io.Writer, results []driver.FileResult, mode driver.Mode, quiet bool) {
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(errOut, "%s %s: %v\n", errorColor.Sprint("error:"), pathColor.Sprint(res.Path), res.Err)
			continue
		}
		switch mode {
		case driver.ModeStdout:
			_, _ = out.Write(res.Formatted)
		case driver.ModeCheck:
			if !res.Changed || quiet {
				continue
			}
			if res.FirstChangedLine > 0 {
				fmt.Fprintf(out, "%s:%d\n", res.Path, res.FirstChangedLine)
			} else {
				fmt.Fprintln(out, res.Path)
			}
		case driver.ModeLint:
			for _, c := range res.Changes {
				fmt.Fprintf(out, "%s:%d:1: %s (%s) %s\n", pathColor.Sprint(res.Path), c.Line, warningColor.Sprint("warning:"), c.Rule, c.Help)
			}
		default:
			if res.Changed && !quiet {
				fmt.Fprintf(out, "reformatted %s\n", res.Path)
			}
		}
	}
}

func renderSummary(out io.Writer, s summary, mode driver.Mode, elapsed time.Duration) {
	var verb string
	switch mode {
	case driver.ModeCheck:
		verb = "would be reformatted"
	case driver.ModeLint:
		verb = "need formatting"
	case driver.ModeStdout:
		return
	default:
		verb = "reformatted"
	}
	line := fmt.Sprintf("%d/%d files %s", s.changed, s.files, verb)
	if s.cached > 0 {
		line += fmt.Sprintf(", %d cached", s.cached)
	}
	if s.failed > 0 {
		line += ", " + errorColor.Sprintf("%d failed", s.failed)
	}
	fmt.Fprintf(out, "%s (%.0f ms)\n", line, toMillis(elapsed))
	if s.failed == 0 && s.changed == 0 {
		fmt.Fprintln(out, okColor.Sprint("all files formatted"))
	}
}

type jsonChange struct {
	Line int    `json:"line"`
	Rule string `json:"rule"`
	Help string `json:"help"`
	Move bool   `json:"move,omitempty"`
}

type jsonResult struct {
	Path    string       `json:"path"`
	Changed bool         `json:"changed"`
	Cached  bool         `json:"cached,omitempty"`
	Error   string       `json:"error,omitempty"`
	Changes []jsonChange `json:"changes,omitempty"`
	Mode    string       `json:"mode"`
}

func renderJSON(out io.Writer, results []driver.FileResult, mode driver.Mode) error {
	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, Cached: res.Cached, Mode: mode.String()}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		for _, c := range res.Changes {
			jr.Changes = append(jr.Changes, jsonChange{Line: c.Line, Rule: c.Rule, Help: c.Help, Move: c.IsMove})
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
