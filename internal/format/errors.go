package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"swiftformat/internal/source"
)

// ErrTimeout is wrapped by the WriteError returned when a rule exceeds its
// deadline.
var ErrTimeout = errors.New("rule timed out")

// ParseError reports a disqualifying token in the input.
type ParseError struct {
	Message string
	Offset  source.Offset
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Offset)
}

// ConfigError reports a required input that is unavailable before any
// mutation happens.
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string { return e.Message }
func (e *ConfigError) Unwrap() error { return e.Err }

// WriteError reports a run that could not produce a result: a rule timed out,
// a rule failed, or the rules did not reach a fixed point.
type WriteError struct {
	Message string
	Rules   []string
	Lines   []int
	Err     error
}

func (e *WriteError) Error() string { return e.Message }
func (e *WriteError) Unwrap() error { return e.Err }

func nonTerminationError(ruleNames []string, lines []int) *WriteError {
	msg := "failed to terminate"
	switch len(ruleNames) {
	case 0:
		msg = "rules " + msg
	case 1:
		msg = fmt.Sprintf("the %s rule %s", ruleNames[0], msg)
	default:
		msg = fmt.Sprintf("the %s rules %s", joinWords(ruleNames), msg)
	}
	if len(lines) > 0 {
		nums := make([]string, len(lines))
		for i, l := range lines {
			nums[i] = strconv.Itoa(l)
		}
		noun := "line"
		if len(lines) > 1 {
			noun = "lines"
		}
		msg = fmt.Sprintf("%s at %s %s", msg, noun, joinWords(nums))
	}
	return &WriteError{Message: msg, Rules: ruleNames, Lines: lines}
}

// joinWords renders "a", "a and b", "a, b and c".
func joinWords(words []string) string {
	if len(words) < 2 {
		return strings.Join(words, "")
	}
	return strings.Join(words[:len(words)-1], ", ") + " and " + words[len(words)-1]
}
