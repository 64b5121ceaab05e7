package main

import (
	"testing"

	"swiftformat/internal/driver"
	"swiftformat/internal/source"
)

func TestParseLineSpan(t *testing.T) {
	cases := []struct {
		input       string
		first, last int
		wantErr     bool
	}{
		{"", 0, 0, false},
		{"3", 3, 3, false},
		{"2:5", 2, 5, false},
		{" 4 : 4 ", 4, 4, false},
		{"7:", 7, 0, false},
		{"0:3", 0, 0, true},
		{"5:2", 0, 0, true},
		{"a:b", 0, 0, true},
	}
	for _, tc := range cases {
		first, last, err := parseLineSpan(tc.input)
		if (err != nil) != tc.wantErr {
			t.Fatalf("parseLineSpan(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
		}
		if first != tc.first || last != tc.last {
			t.Fatalf("parseLineSpan(%q) = %d:%d, want %d:%d", tc.input, first, last, tc.first, tc.last)
		}
	}
}

func TestParseCursor(t *testing.T) {
	got, err := parseCursor("3:5")
	if err != nil {
		t.Fatalf("parseCursor: %v", err)
	}
	if *got != (source.Offset{Line: 3, Column: 4}) {
		t.Fatalf("parseCursor = %+v", *got)
	}
	if got, err := parseCursor(""); got != nil || err != nil {
		t.Fatalf("empty cursor = %v, %v", got, err)
	}
	for _, bad := range []string{"3", "0:1", "1:0", "x:y"} {
		if _, err := parseCursor(bad); err == nil {
			t.Fatalf("parseCursor(%q) should fail", bad)
		}
	}
}

func TestReadUIMode(t *testing.T) {
	for input, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(input)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestProgressView(t *testing.T) {
	both := terminals{stdout: true, stderr: true}
	cases := []struct {
		name string
		ff   formatFlags
		tty  terminals
		want bool
	}{
		{"auto on terminals", formatFlags{ui: uiModeAuto, report: "text"}, both, true},
		{"auto with piped stdout", formatFlags{ui: uiModeAuto, report: "text"}, terminals{stderr: true}, false},
		{"forced without terminals", formatFlags{ui: uiModeOn, report: "text"}, terminals{}, true},
		{"forced with stdout output", formatFlags{ui: uiModeOn, report: "text", mode: driver.ModeStdout}, both, false},
		{"forced with stdin", formatFlags{ui: uiModeOn, report: "text", stdin: true}, both, false},
		{"json report", formatFlags{ui: uiModeAuto, report: "json"}, both, false},
		{"quiet", formatFlags{ui: uiModeAuto, report: "text", quiet: true}, both, false},
		{"off", formatFlags{ui: uiModeOff, report: "text"}, both, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, why := progressView(&tc.ff, tc.tty)
			if got != tc.want {
				t.Fatalf("progressView = %v (%s), want %v", got, why, tc.want)
			}
			if !got && why == "" {
				t.Fatal("a disabled view must name its reason")
			}
		})
	}
}
