package format

import (
	"fmt"
	"slices"
	"time"

	"github.com/tliron/commonlog"

	"swiftformat/internal/buffer"
	"swiftformat/internal/config"
	"swiftformat/internal/observ"
	"swiftformat/internal/rules"
	"swiftformat/internal/source"
	"swiftformat/internal/token"
)

var log = commonlog.GetLogger("swiftformat.format")

const (
	DefaultMaxIterations   = 10
	DefaultBaseTimeout     = time.Second
	DefaultTimeoutPerToken = time.Millisecond
)

// RunOptions controls one engine run.
type RunOptions struct {
	// MaxIterations bounds the number of passes. Values below 2 select
	// DefaultMaxIterations.
	MaxIterations int
	TrackChanges  bool
	// Range restricts which tokens rules enumerate and which lines changes
	// are reported for. Rules still see the whole buffer.
	Range           *source.Range
	BaseTimeout     time.Duration
	TimeoutPerToken time.Duration
	// Timer, when set, accumulates per-rule durations.
	Timer *observ.Timer
}

func (o RunOptions) withDefaults() RunOptions {
	if o.MaxIterations < 2 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.BaseTimeout <= 0 {
		o.BaseTimeout = DefaultBaseTimeout
	}
	if o.TimeoutPerToken <= 0 {
		o.TimeoutPerToken = DefaultTimeoutPerToken
	}
	return o
}

func (o RunOptions) timeout(tokens int) time.Duration {
	return o.BaseTimeout + time.Duration(tokens)*o.TimeoutPerToken
}

// Result is the outcome of a converged run.
type Result struct {
	Tokens  []token.Token
	Changes []buffer.Change
	// Options is the configuration the rules saw, after inference.
	Options config.Options
	Passes  int
}

// Format rewrites tokens until the rules reach a fixed point.
func Format(tokens []token.Token, rs []*rules.Rule, opts config.Options, run RunOptions) ([]token.Token, []buffer.Change, error) {
	res, err := Run(tokens, rs, opts, run)
	if err != nil {
		return nil, nil, err
	}
	return res.Tokens, res.Changes, nil
}

// Lint runs the same computation as Format with change tracking on and
// returns only the changes.
func Lint(tokens []token.Token, rs []*rules.Rule, opts config.Options, run RunOptions) ([]buffer.Change, error) {
	run.TrackChanges = true
	res, err := Run(tokens, rs, opts, run)
	if err != nil {
		return nil, err
	}
	return res.Changes, nil
}

// Run validates the input, infers unpinned options, checks rule
// preconditions and applies rs pass after pass. rs is used in name order
// whatever order it is given in.
func Run(tokens []token.Token, rs []*rules.Rule, opts config.Options, run RunOptions) (*Result, error) {
	run = run.withDefaults()
	if err := validate(tokens, opts); err != nil {
		return nil, err
	}
	opts = inferOptions(tokens, rs, opts)
	if err := preflight(rs, opts); err != nil {
		return nil, err
	}

	active := slices.Clone(rs)
	rules.Sort(active)

	var span *lineSpan
	if run.Range != nil {
		span = spanOf(tokens, *run.Range)
	}
	rng := run.Range
	current := tokens
	var changes []buffer.Change
	changed := false

	for pass := 1; pass <= run.MaxIterations; pass++ {
		log.Debug("pass", "n", pass, "rules", len(active), "tokens", len(current))
		b := buffer.New(current, opts, run.TrackChanges, rng)
		failed, err := runPass(b, active, run)
		if err != nil {
			return nil, err
		}
		if errs := b.Errors(); len(errs) > 0 {
			if !opts.FragmentMode {
				return nil, &WriteError{Message: errs[0].Error(), Rules: []string{failed}, Err: errs[0]}
			}
			for _, e := range errs {
				log.Warning("ignoring rule error in fragment mode", "error", e)
			}
		}
		// Edits that cancel out within one pass do not make a fixed point.
		// Edits outside a range still count even though they report nothing.
		if b.Edits() == 0 {
			if !changed {
				return &Result{Tokens: tokens, Options: opts, Passes: pass}, nil
			}
			return &Result{
				Tokens:  current,
				Changes: finalizeChanges(changes, tokens, current, span),
				Options: opts,
				Passes:  pass,
			}, nil
		}
		changed = true
		changes = append(changes, b.Changes()...)
		current = b.Tokens()
		if run.Range != nil {
			r, _ := b.Range()
			rng = &r
		}
		active = slices.DeleteFunc(active, (*rules.Rule).IsRunOnlyOnce)
	}

	return nil, diagnose(current, active, opts, rng, span, run)
}

// runPass applies every rule once, in order, and returns the name of the
// first rule that recorded an error. It stops at the first rule that misses
// its deadline.
func runPass(b *buffer.Buffer, active []*rules.Rule, run RunOptions) (string, error) {
	failed := ""
	for _, r := range active {
		before := len(b.Errors())
		if err := applyRule(b, r, run); err != nil {
			return r.Name(), err
		}
		if failed == "" && len(b.Errors()) > before {
			failed = r.Name()
		}
	}
	return failed, nil
}

// applyRule runs r on its own goroutine and waits for it up to the computed
// deadline. A panic becomes a fatal buffer error for that rule. A rule that
// overruns cannot be stopped; it is left running against a buffer nobody
// reads again.
func applyRule(b *buffer.Buffer, r *rules.Rule, run RunOptions) error {
	timeout := run.timeout(b.Len())
	done := make(chan any, 1)
	start := time.Now()
	go func() {
		defer func() { done <- recover() }()
		r.Apply(b)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case p := <-done:
		if run.Timer != nil {
			run.Timer.Add(r.Name(), time.Since(start))
		}
		if p != nil {
			log.Error("rule panicked", "rule", r.Name(), "panic", p)
			b.Failf("panic: %v", p)
		}
		return nil
	case <-timer.C:
		log.Error("rule timed out", "rule", r.Name(), "timeout", timeout)
		return &WriteError{
			Message: fmt.Sprintf("the %s rule timed out after %s", r.Name(), timeout),
			Rules:   []string{r.Name()},
			Err:     ErrTimeout,
		}
	}
}

// diagnose runs one extra pass with change tracking forced on and names the
// rules and lines it touched. Its output is discarded.
func diagnose(current []token.Token, active []*rules.Rule, opts config.Options, rng *source.Range, span *lineSpan, run RunOptions) error {
	b := buffer.New(current, opts, true, rng)
	if _, err := runPass(b, active, run); err != nil {
		return err
	}
	var names []string
	var lines []int
	for _, c := range b.Changes() {
		if span != nil && !span.contains(c.Line) {
			continue
		}
		names = append(names, c.Rule)
		lines = append(lines, c.Line)
	}
	slices.Sort(names)
	slices.Sort(lines)
	err := nonTerminationError(slices.Compact(names), slices.Compact(lines))
	log.Error("no fixed point", "passes", run.MaxIterations, "error", err.Message)
	return err
}
