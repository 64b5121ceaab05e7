package main

import (
	"fmt"
	"strconv"
	"strings"

	"swiftformat/internal/source"
)

// parseLineSpan parses "first:last", "first:" (to the end) or a single line.
func parseLineSpan(value string) (first, last int, err error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, 0, nil
	}
	lo, hi, hasColon := strings.Cut(value, ":")
	first, err = strconv.Atoi(strings.TrimSpace(lo))
	if err != nil || first < 1 {
		return 0, 0, fmt.Errorf("invalid --lines value %q (expected first:last)", value)
	}
	if !hasColon {
		return first, first, nil
	}
	if strings.TrimSpace(hi) == "" {
		return first, 0, nil
	}
	last, err = strconv.Atoi(strings.TrimSpace(hi))
	if err != nil || last < first {
		return 0, 0, fmt.Errorf("invalid --lines value %q (expected first:last)", value)
	}
	return first, last, nil
}

// parseCursor parses a 1-based "line:column" position.
func parseCursor(value string) (*source.Offset, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	l, c, ok := strings.Cut(value, ":")
	line, lerr := strconv.Atoi(strings.TrimSpace(l))
	col, cerr := strconv.Atoi(strings.TrimSpace(c))
	if !ok || lerr != nil || cerr != nil || line < 1 || col < 1 {
		return nil, fmt.Errorf("invalid --cursor value %q (expected line:column)", value)
	}
	return &source.Offset{Line: line, Column: col - 1}, nil
}
