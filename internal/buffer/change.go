package buffer

import "fmt"

// Change reports one effect of a mutation. Changes are descriptive only; they
// are never replayed.
type Change struct {
	Line   int // 1-based original source line
	Rule   string
	Help   string
	IsMove bool // content was reordered rather than edited
	Index  int  // buffer index of the edit when it was made, -1 for line-only records
}

func (c Change) String() string {
	return fmt.Sprintf("%d: %s (%s)", c.Line, c.Help, c.Rule)
}

// Begin attributes subsequent changes and errors to rule.
func (b *Buffer) Begin(rule, help string) {
	b.rule = rule
	b.help = help
}

// Rule returns the name of the rule currently running.
func (b *Buffer) Rule() string { return b.rule }

// RecordChange records a change at line with the current rule's help text.
func (b *Buffer) RecordChange(line int) {
	b.record(line, -1, b.moving)
}

// RecordMove records a structural move at line.
func (b *Buffer) RecordMove(line int) {
	b.record(line, -1, true)
}

// Moving runs fn with every change it makes flagged as a structural move.
func (b *Buffer) Moving(fn func()) {
	prev := b.moving
	b.moving = true
	defer func() { b.moving = prev }()
	fn()
}

func (b *Buffer) record(line, index int, move bool) {
	if !b.track {
		return
	}
	if b.lines != nil && (line < b.lines.first || line > b.lines.last) {
		return
	}
	b.changes = append(b.changes, Change{Line: line, Rule: b.rule, Help: b.help, IsMove: move, Index: index})
}

func (b *Buffer) trackChange(index int) {
	if !b.track {
		return
	}
	at := index
	if b.group >= 0 {
		at = b.group
	}
	b.record(b.OriginalLine(index), at, b.moving)
}

// Changes returns the changes recorded so far.
func (b *Buffer) Changes() []Change { return b.changes }

// Fail records a fatal error for the current rule. The engine aborts the run
// after the pass unless fragment mode is on.
func (b *Buffer) Fail(err error) {
	if b.rule != "" {
		err = fmt.Errorf("%s: %w", b.rule, err)
	}
	b.errs = append(b.errs, err)
}

// Failf is Fail with formatting.
func (b *Buffer) Failf(format string, args ...any) {
	b.Fail(fmt.Errorf(format, args...))
}

// Errors returns the fatal errors recorded so far.
func (b *Buffer) Errors() []error { return b.errs }
