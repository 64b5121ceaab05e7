package format_test

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftformat/internal/buffer"
	"swiftformat/internal/config"
	"swiftformat/internal/format"
	"swiftformat/internal/lexer"
	"swiftformat/internal/observ"
	"swiftformat/internal/rules"
	"swiftformat/internal/source"
	"swiftformat/internal/token"
)

func named(t *testing.T, names ...string) []*rules.Rule {
	t.Helper()
	rs, err := rules.All().Named(names...)
	require.NoError(t, err)
	return rs
}

func render(toks []token.Token) string { return token.Concat(toks) }

func TestBraceSpacingScenario(t *testing.T) {
	toks, changes, err := format.Format(lexer.Tokenize("if(x){y()}"), named(t, "spaceInsideBraces"),
		config.Default(), format.RunOptions{TrackChanges: true})
	require.NoError(t, err)
	assert.Equal(t, "if(x){ y() }", render(toks))
	require.Len(t, changes, 2, spew.Sdump(changes))
	for _, c := range changes {
		assert.Equal(t, 1, c.Line)
		assert.Equal(t, "spaceInsideBraces", c.Rule)
	}
}

func TestEmptyBracesReachFixedPointInOnePass(t *testing.T) {
	in := lexer.Tokenize("{}")
	res, err := format.Run(in, named(t, "spaceInsideBraces"), config.Default(), format.RunOptions{TrackChanges: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Passes)
	assert.Equal(t, in, res.Tokens)
	assert.Empty(t, res.Changes)
}

const messy = "import B\nimport A\n\n\n\nstruct Foo{\n    var x   = 1  \nfunc bar() {\nreturn x}\n}"

func TestDefaultRulesConvergeAndAreIdempotent(t *testing.T) {
	rs := rules.All().Default()
	first, changes, err := format.Format(lexer.Tokenize(messy), rs, config.Default(), format.RunOptions{TrackChanges: true})
	require.NoError(t, err)
	want := "import A\nimport B\n\nstruct Foo{\n    var x = 1\n    func bar() {\n        return x }\n}\n"
	require.Equal(t, want, render(first), spew.Sdump(first))
	assert.NotEmpty(t, changes)

	second, again, err := format.Format(lexer.Tokenize(render(first)), rs, config.Default(), format.RunOptions{TrackChanges: true})
	require.NoError(t, err)
	assert.Equal(t, want, render(second))
	assert.Empty(t, again)
}

func TestDeterministicOutput(t *testing.T) {
	rs := rules.All().Default()
	run := func() ([]token.Token, []buffer.Change) {
		toks, changes, err := format.Format(lexer.Tokenize(messy), rs, config.Default(), format.RunOptions{TrackChanges: true})
		require.NoError(t, err)
		return toks, changes
	}
	t1, c1 := run()
	t2, c2 := run()
	assert.Equal(t, t1, t2)
	assert.Equal(t, c1, c2)
}

func TestSortImportsReportsMoves(t *testing.T) {
	changes, err := format.Lint(lexer.Tokenize("import B\nimport A\n"), named(t, "sortImports"), config.Default(), format.RunOptions{})
	require.NoError(t, err)
	require.Len(t, changes, 2)
	for i, c := range changes {
		assert.Equal(t, i+1, c.Line)
		assert.True(t, c.IsMove)
	}
}

func TestNonTerminationNamesRulesAndLines(t *testing.T) {
	var calls atomic.Int32
	add := rules.New("addSpace", "Add a space.", func(b *buffer.Buffer) {
		calls.Add(1)
		if !b.At(b.Len() - 1).IsSpace() {
			b.Insert(b.Len(), token.NewSpace(" "))
		}
	})
	remove := rules.New("removeSpace", "Remove a space.", func(b *buffer.Buffer) {
		if b.At(b.Len() - 1).IsSpace() {
			b.Remove(b.Len() - 1)
		}
	})
	_, _, err := format.Format(lexer.Tokenize("a"), []*rules.Rule{remove, add}, config.Default(),
		format.RunOptions{MaxIterations: 5})

	var werr *format.WriteError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, []string{"addSpace", "removeSpace"}, werr.Rules)
	assert.Equal(t, []int{1}, werr.Lines)
	assert.Equal(t, "the addSpace and removeSpace rules failed to terminate at line 1", werr.Error())
	assert.EqualValues(t, 6, calls.Load(), "five passes plus one diagnostic pass")
}

func TestExactDuplicateChangesAreDropped(t *testing.T) {
	rename := rules.New("rename", "Rename a.", func(b *buffer.Buffer) {
		if b.At(0).Text != "a" {
			return
		}
		b.Replace(0, token.NewIdentifier("b"))
		b.RecordChange(1)
		b.RecordChange(1)
	})
	_, changes, err := format.Format(lexer.Tokenize("a"), []*rules.Rule{rename}, config.Default(),
		format.RunOptions{TrackChanges: true})
	require.NoError(t, err)
	require.Len(t, changes, 2, spew.Sdump(changes))
	assert.Equal(t, 0, changes[0].Index)
	assert.Equal(t, -1, changes[1].Index)
}

func TestChurnWithinOnePassIsNotAFixedPoint(t *testing.T) {
	var calls atomic.Int32
	churn := rules.New("churn", "Remove and restore b.", func(b *buffer.Buffer) {
		calls.Add(1)
		i := b.IndexAfter(-1, func(tok token.Token) bool { return tok.Text == "b" })
		b.Remove(i)
		b.Insert(i, token.NewIdentifier("b"))
	})
	_, _, err := format.Format(lexer.Tokenize("a b c"), []*rules.Rule{churn}, config.Default(),
		format.RunOptions{MaxIterations: 3})

	var werr *format.WriteError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, []string{"churn"}, werr.Rules)
	assert.Equal(t, []int{1}, werr.Lines)
	assert.Equal(t, "the churn rule failed to terminate at line 1", werr.Error())
	assert.EqualValues(t, 4, calls.Load())
}

func TestEditsOutsideRangeAgreeWithAndWithoutTracking(t *testing.T) {
	upper := rules.New("upper", "Uppercase a.", func(b *buffer.Buffer) {
		if b.At(0).Text == "a" {
			b.Replace(0, token.NewIdentifier("A"))
		}
	})
	in := lexer.Tokenize("a
b
c")
	rng := source.TokenRange(in, 2, 2)
	for _, track := range []bool{false, true} {
		toks, changes, err := format.Format(in, []*rules.Rule{upper}, config.Default(),
			format.RunOptions{TrackChanges: track, Range: &rng})
		require.NoError(t, err)
		assert.Equal(t, "A\nb\nc", render(toks), "tracking %v", track)
		assert.Empty(t, changes)
	}
}

func TestRangeRestrictsReportedLines(t *testing.T) {
	upper := rules.New("upper", "Uppercase identifiers.", func(b *buffer.Buffer) {
		for i := 0; i < b.Len(); i++ {
			if tok := b.At(i); tok.Kind == token.Identifier && tok.Text != strings.ToUpper(tok.Text) {
				b.Replace(i, token.NewIdentifier(strings.ToUpper(tok.Text)))
			}
		}
	})
	in := lexer.Tokenize("a  b\nc  d\ne  f")
	rng := source.TokenRange(in, 2, 2)
	toks, changes, err := format.Format(in, []*rules.Rule{upper, named(t, "consecutiveSpaces")[0]}, config.Default(),
		format.RunOptions{TrackChanges: true, Range: &rng})
	require.NoError(t, err)
	assert.Equal(t, "A  B\nC D\nE  F", render(toks))
	require.NotEmpty(t, changes)
	for _, c := range changes {
		assert.Equal(t, 2, c.Line, spew.Sdump(changes))
	}
}

func TestCancelledChangesAreDropped(t *testing.T) {
	inserted, seen := false, false
	insert := rules.New("aInsert", "Insert x.", func(b *buffer.Buffer) {
		if !inserted {
			inserted = true
			b.Insert(b.Len(), token.NewIdentifier("x"))
		}
	})
	remove := rules.New("bRemove", "Remove x.", func(b *buffer.Buffer) {
		last := b.Len() - 1
		if b.At(last).Text != "x" {
			return
		}
		if seen {
			b.Remove(last)
		}
		seen = true
	})
	in := "a\nb\nc\nd\ne"
	toks, changes, err := format.Format(lexer.Tokenize(in), []*rules.Rule{insert, remove}, config.Default(),
		format.RunOptions{TrackChanges: true})
	require.NoError(t, err)
	assert.Equal(t, in, render(toks))
	assert.Empty(t, changes)
}

func TestRunOnlyOnceRuleIsDropped(t *testing.T) {
	var onceCalls atomic.Int32
	once := rules.New("once", "Runs once.", func(*buffer.Buffer) { onceCalls.Add(1) }, rules.RunOnlyOnce())
	res, err := format.Run(lexer.Tokenize("a   b    c"), []*rules.Rule{once, named(t, "consecutiveSpaces")[0]},
		config.Default(), format.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, "a b c", render(res.Tokens))
	assert.Equal(t, 2, res.Passes)
	assert.EqualValues(t, 1, onceCalls.Load())
}

func TestTimeoutIsFatal(t *testing.T) {
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	stuck := rules.New("stuck", "Never returns.", func(*buffer.Buffer) { <-block })
	_, _, err := format.Format(lexer.Tokenize("a"), []*rules.Rule{stuck}, config.Default(),
		format.RunOptions{BaseTimeout: 20 * time.Millisecond, TimeoutPerToken: time.Nanosecond})

	require.ErrorIs(t, err, format.ErrTimeout)
	var werr *format.WriteError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, []string{"stuck"}, werr.Rules)
}

func TestRuleFailureAbortsUnlessFragment(t *testing.T) {
	failing := rules.New("failing", "Fails.", func(b *buffer.Buffer) { b.Failf("cannot handle %s", "this") })
	panicking := rules.New("panicking", "Panics.", func(*buffer.Buffer) { panic("boom") })

	_, _, err := format.Format(lexer.Tokenize("a"), []*rules.Rule{failing}, config.Default(), format.RunOptions{})
	var werr *format.WriteError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, []string{"failing"}, werr.Rules)
	assert.Equal(t, "failing: cannot handle this", werr.Error())

	_, _, err = format.Format(lexer.Tokenize("a"), []*rules.Rule{failing, panicking}, config.Default(), format.RunOptions{})
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, []string{"failing"}, werr.Rules)

	_, _, err = format.Format(lexer.Tokenize("a"), []*rules.Rule{panicking}, config.Default(), format.RunOptions{})
	require.ErrorAs(t, err, &werr)
	assert.Contains(t, werr.Error(), "panicking: panic: boom")

	opts := config.Default()
	opts.FragmentMode = true
	toks, _, err := format.Format(lexer.Tokenize("a"), []*rules.Rule{failing, panicking}, opts, format.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, "a", render(toks))
}

func TestParseErrors(t *testing.T) {
	_, _, err := format.Format(lexer.Tokenize(`let x = "abc`), nil, config.Default(), format.RunOptions{})
	var perr *format.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, source.Offset{Line: 1, Column: 8}, perr.Offset)
	assert.Equal(t, `unexpected token "\"abc" at 1:9`, perr.Error())

	conflict := lexer.Tokenize("a\n<<<<<<< HEAD\nb\n")
	_, _, err = format.Format(conflict, nil, config.Default(), format.RunOptions{})
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, source.Offset{Line: 2, Column: 0}, perr.Offset)

	opts := config.Default()
	opts.IgnoreConflictMarkers = true
	_, _, err = format.Format(conflict, nil, opts, format.RunOptions{})
	assert.NoError(t, err)

	opts = config.Default()
	opts.FragmentMode = true
	toks, _, err := format.Format(lexer.Tokenize("a) b"), named(t, "consecutiveSpaces"), opts, format.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, "a) b", render(toks))
}

func TestMissingHeaderMetadataIsConfigError(t *testing.T) {
	var calls atomic.Int32
	spy := rules.New("spy", "Spy.", func(*buffer.Buffer) { calls.Add(1) })
	opts := config.Default()
	require.NoError(t, opts.Set("header", "Created by {author} on {created}"))

	_, _, err := format.Format(lexer.Tokenize("import A\n"), append(named(t, "fileHeader"), spy), opts, format.RunOptions{})
	var cerr *format.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.ErrorIs(t, err, rules.ErrMissingFileInfo)
	assert.Contains(t, cerr.Error(), "{author}")
	assert.Contains(t, cerr.Error(), "{created}")
	assert.Zero(t, calls.Load(), "no rule may run after a configuration error")

	opts.FileInfo = config.FileInfo{Author: "Jo", Created: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	toks, _, err := format.Format(lexer.Tokenize("import A\n"), named(t, "fileHeader"), opts, format.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, "// Created by Jo on 2024-03-01\n\nimport A\n", render(toks))
}

func TestInferenceRespectsExistingIndent(t *testing.T) {
	res, err := format.Run(lexer.Tokenize("struct A {\n  var x: Int\nvar y: Int\n}\n"), named(t, "indent"),
		config.Default(), format.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, "  ", res.Options.Indent)
	assert.Equal(t, "struct A {\n  var x: Int\n  var y: Int\n}\n", render(res.Tokens))

	opts := config.Default()
	require.NoError(t, opts.Set("indent", "3"))
	res, err = format.Run(lexer.Tokenize("struct A {\n  var x: Int\n}\n"), named(t, "indent"), opts, format.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, "struct A {\n   var x: Int\n}\n", render(res.Tokens))
}

func TestLintMatchesTrackedFormat(t *testing.T) {
	rs := rules.All().Default()
	_, formatted, err := format.Format(lexer.Tokenize(messy), rs, config.Default(), format.RunOptions{TrackChanges: true})
	require.NoError(t, err)
	linted, err := format.Lint(lexer.Tokenize(messy), rs, config.Default(), format.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, formatted, linted)

	for i := 1; i < len(linted); i++ {
		prev, cur := linted[i-1], linted[i]
		assert.True(t, prev.Line < cur.Line || (prev.Line == cur.Line && prev.Rule <= cur.Rule), "changes not sorted")
	}
}

func TestTimerCollectsRuleDurations(t *testing.T) {
	timer := observ.NewTimer()
	_, _, err := format.Format(lexer.Tokenize("a   b"), named(t, "consecutiveSpaces", "trailingSpace"), config.Default(),
		format.RunOptions{Timer: timer})
	require.NoError(t, err)
	report := timer.Report()
	require.Len(t, report.Phases, 2)
	assert.Equal(t, "consecutiveSpaces", report.Phases[0].Name)
	assert.Equal(t, 2, report.Phases[0].Count)
}

func TestRemapCursorThroughRewrite(t *testing.T) {
	in := lexer.Tokenize("a\n\n\n\nb   c")
	out, _, err := format.Format(in, named(t, "consecutiveBlankLines", "consecutiveSpaces"), config.Default(), format.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, "a\n\nb c", render(out))
	assert.Equal(t, source.Offset{Line: 3, Column: 3}, source.RemapOffset(source.Offset{Line: 5, Column: 7}, out, 4))
}

func TestErrorsDiscriminate(t *testing.T) {
	_, _, err := format.Format(lexer.Tokenize(`"`), nil, config.Default(), format.RunOptions{})
	var cerr *format.ConfigError
	var werr *format.WriteError
	assert.False(t, errors.As(err, &cerr))
	assert.False(t, errors.As(err, &werr))
}
