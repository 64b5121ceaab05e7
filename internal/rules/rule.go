// Package rules defines the rewrite rule capability and the built-in rule
// set. A rule is a named mutation procedure over a token buffer; it talks to
// the engine only by mutating the buffer and recording errors on it.
package rules

import (
	"slices"
	"strings"

	"swiftformat/internal/buffer"
	"swiftformat/internal/config"
)

// ApplyFunc is the mutation procedure of a rule.
type ApplyFunc func(b *buffer.Buffer)

// Rule is an immutable rule descriptor. Build rules with New.
type Rule struct {
	name              string
	help              string
	options           []string
	disabledByDefault bool
	runOnlyOnce       bool
	preflight         func(opts config.Options) error
	apply             ApplyFunc
}

// Option configures a rule during construction.
type Option func(*Rule)

// WithOptions declares the configuration keys the rule reads.
func WithOptions(names ...string) Option {
	return func(r *Rule) {
		r.options = append(r.options, names...)
	}
}

// DisabledByDefault excludes the rule from the default selection.
func DisabledByDefault() Option {
	return func(r *Rule) {
		r.disabledByDefault = true
	}
}

// RunOnlyOnce drops the rule from the active set after its first pass.
func RunOnlyOnce() Option {
	return func(r *Rule) {
		r.runOnlyOnce = true
	}
}

// WithPreflight attaches a check run against the final configuration before
// any mutation happens.
func WithPreflight(fn func(opts config.Options) error) Option {
	return func(r *Rule) {
		r.preflight = fn
	}
}

// New creates a rule.
func New(name, help string, apply ApplyFunc, opts ...Option) *Rule {
	r := &Rule{name: name, help: help, apply: apply}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	slices.Sort(r.options)
	r.options = slices.Compact(r.options)
	return r
}

func (r *Rule) Name() string { return r.name }
func (r *Rule) Help() string { return r.help }

// Options returns the sorted configuration keys the rule reads.
func (r *Rule) Options() []string { return slices.Clone(r.options) }

func (r *Rule) IsDisabledByDefault() bool { return r.disabledByDefault }
func (r *Rule) IsRunOnlyOnce() bool       { return r.runOnlyOnce }

// Preflight validates that every input the rule needs is available.
func (r *Rule) Preflight(opts config.Options) error {
	if r.preflight == nil {
		return nil
	}
	return r.preflight(opts)
}

// Apply runs the rule against b, attributing changes and errors to it.
func (r *Rule) Apply(b *buffer.Buffer) {
	b.Begin(r.name, r.help)
	r.apply(b)
}

func (r *Rule) String() string { return r.name }

// Sort orders rules by name in place. Engine passes rely on this order.
func Sort(rs []*Rule) {
	slices.SortStableFunc(rs, func(a, b *Rule) int { return strings.Compare(a.name, b.name) })
}

// SharedOptions returns the sorted union of the options read by rs.
func SharedOptions(rs []*Rule) []string {
	var out []string
	for _, r := range rs {
		out = append(out, r.options...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Names returns the rule names in order.
func Names(rs []*Rule) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.name
	}
	return out
}
