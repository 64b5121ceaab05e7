package format

import (
	"fmt"

	"swiftformat/internal/config"
	"swiftformat/internal/rules"
	"swiftformat/internal/source"
	"swiftformat/internal/token"
)

// validate rejects error tokens and merge conflict markers before any rule
// runs. Fragment mode tolerates error tokens; conflict markers are tolerated
// only when explicitly ignored.
func validate(tokens []token.Token, opts config.Options) error {
	for i, tok := range tokens {
		switch {
		case tok.IsError() && !opts.FragmentMode:
			msg := "unexpected end of file"
			if tok.Text != "" {
				msg = fmt.Sprintf("unexpected token %q", tok.Text)
			}
			return &ParseError{Message: msg, Offset: source.OffsetForToken(tokens, i, opts.TabWidth)}
		case tok.IsConflictMarker() && !opts.IgnoreConflictMarkers:
			return &ParseError{
				Message: fmt.Sprintf("found conflict marker %s", tok.Text),
				Offset:  source.OffsetForToken(tokens, i, opts.TabWidth),
			}
		}
	}
	return nil
}

// inferOptions fills the options read by rs that the caller left at their
// default with values derived from the input.
func inferOptions(tokens []token.Token, rs []*rules.Rule, opts config.Options) config.Options {
	for _, name := range rules.SharedOptions(rs) {
		d, ok := config.Lookup(name)
		if !ok || d.Infer == nil || !opts.IsDefault(name) {
			continue
		}
		d.Infer(tokens, &opts)
		if !opts.IsDefault(name) {
			log.Debug("inferred option", "name", name, "value", d.Get(&opts))
		}
	}
	return opts
}

func preflight(rs []*rules.Rule, opts config.Options) error {
	for _, r := range rs {
		if err := r.Preflight(opts); err != nil {
			return &ConfigError{Message: fmt.Sprintf("%s: %v", r.Name(), err), Err: err}
		}
	}
	return nil
}
