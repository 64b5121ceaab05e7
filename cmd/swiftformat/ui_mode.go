package main

import (
	"fmt"
	"os"
	"strings"

	"swiftformat/internal/driver"
)

// uiMode is the --ui setting for the progress view.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

var uiModes = map[string]uiMode{"": uiModeAuto, "auto": uiModeAuto, "on": uiModeOn, "off": uiModeOff}

func readUIMode(value string) (uiMode, error) {
	if m, ok := uiModes[strings.ToLower(strings.TrimSpace(value))]; ok {
		return m, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// terminals records which standard streams are attached to a terminal.
type terminals struct{ stdout, stderr bool }

func detectTerminals() terminals {
	return terminals{stdout: isTerminal(os.Stdout), stderr: isTerminal(os.Stderr)}
}

// progressView decides whether a format or lint run draws the progress view
// on stderr, and names the reason when it does not. Runs that write formatted
// code or a JSON report to stdout never get the view, even with --ui on.
func progressView(ff *formatFlags, tty terminals) (bool, string) {
	switch {
	case ff.ui == uiModeOff:
		return false, "disabled by --ui"
	case ff.quiet:
		return false, "quiet output"
	case ff.stdin:
		return false, "single stdin input"
	case ff.mode == driver.ModeStdout:
		return false, "formatted code goes to stdout"
	case ff.report != "text":
		return false, ff.report + " report goes to stdout"
	case ff.ui == uiModeOn:
		return true, ""
	case !tty.stderr:
		return false, "stderr is not a terminal"
	case !tty.stdout:
		return false, "stdout is not a terminal"
	}
	return true, ""
}
