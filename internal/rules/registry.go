package rules

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownRule is returned when a name does not resolve to a rule.
var ErrUnknownRule = errors.New("unknown rule")

// Registry is an immutable, name-sorted rule collection.
type Registry struct {
	rules  []*Rule
	byName map[string]*Rule
}

// NewRegistry builds a registry. Duplicate names are an error.
func NewRegistry(rs ...*Rule) (*Registry, error) {
	reg := &Registry{
		rules:  slices.Clone(rs),
		byName: make(map[string]*Rule, len(rs)),
	}
	for _, r := range rs {
		if r == nil {
			return nil, fmt.Errorf("rules: nil rule")
		}
		if _, dup := reg.byName[r.name]; dup {
			return nil, fmt.Errorf("rules: duplicate rule %q", r.name)
		}
		reg.byName[r.name] = r
	}
	Sort(reg.rules)
	return reg, nil
}

var builtin = sync.OnceValue(func() *Registry {
	reg, err := NewRegistry(
		consecutiveBlankLines,
		consecutiveSpaces,
		fileHeader,
		indent,
		linebreakAtEndOfFile,
		linebreaks,
		redundantExtensionACL,
		semicolons,
		sortImports,
		spaceInsideBraces,
		trailingSpace,
	)
	if err != nil {
		panic(err)
	}
	return reg
})

// All returns the registry of built-in rules.
func All() *Registry { return builtin() }

// Rules returns every rule, sorted by name.
func (r *Registry) Rules() []*Rule { return slices.Clone(r.rules) }

// Len returns the number of registered rules.
func (r *Registry) Len() int { return len(r.rules) }

// Lookup resolves a single name.
func (r *Registry) Lookup(name string) (*Rule, bool) {
	rule, ok := r.byName[name]
	return rule, ok
}

// Default returns the rules not disabled by default.
func (r *Registry) Default() []*Rule {
	out := make([]*Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		if !rule.disabledByDefault {
			out = append(out, rule)
		}
	}
	return out
}

// Named resolves names to rules, sorted by name. Unknown names are reported
// together.
func (r *Registry) Named(names ...string) ([]*Rule, error) {
	out := make([]*Rule, 0, len(names))
	var unknown []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		rule, ok := r.byName[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if !slices.Contains(out, rule) {
			out = append(out, rule)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRule, strings.Join(unknown, ", "))
	}
	Sort(out)
	return out, nil
}

// Select resolves a rule selection the way the command line and config files
// express it: an explicit list replaces the default set, then enable adds and
// disable removes.
func (r *Registry) Select(only, enable, disable []string) ([]*Rule, error) {
	base := r.Default()
	if len(only) > 0 {
		var err error
		if base, err = r.Named(only...); err != nil {
			return nil, err
		}
	}
	extra, err := r.Named(enable...)
	if err != nil {
		return nil, err
	}
	drop, err := r.Named(disable...)
	if err != nil {
		return nil, err
	}
	for _, rule := range extra {
		if !slices.Contains(base, rule) {
			base = append(base, rule)
		}
	}
	base = slices.DeleteFunc(base, func(rule *Rule) bool { return slices.Contains(drop, rule) })
	Sort(base)
	return base, nil
}
