package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"swiftformat/internal/token"
)

// Descriptor documents one named option and knows how to read, write and
// infer it.
type Descriptor struct {
	Name    string
	Help    string
	Default string
	Get     func(o *Options) string
	Set     func(o *Options, value string) error
	// Infer, when set, derives the value from existing code. It is only used
	// for options the caller left at their default.
	Infer func(tokens []token.Token, o *Options)
}

var descriptors = buildDescriptors()

func buildDescriptors() []Descriptor {
	ds := []Descriptor{
		{
			Name: "indent",
			Help: `Number of spaces to indent, or "tab" to use tabs`,
			Get: func(o *Options) string {
				if o.Indent == "\t" {
					return "tab"
				}
				return strconv.Itoa(len(o.Indent))
			},
			Set: func(o *Options, v string) error {
				v = strings.ToLower(strings.TrimSpace(v))
				if v == "tab" || v == "tabs" || v == "tabbed" {
					o.Indent = "\t"
					return nil
				}
				n, err := strconv.Atoi(v)
				if err != nil || n < 1 {
					return fmt.Errorf("indent: expected a positive number or \"tab\", got %q", v)
				}
				o.Indent = strings.Repeat(" ", n)
				return nil
			},
			Infer: func(tokens []token.Token, o *Options) {
				if indent, ok := InferIndent(tokens); ok {
					o.Indent = indent
				}
			},
		},
		{
			Name: "linebreaks",
			Help: `Linebreak character to use: "cr", "crlf" or "lf"`,
			Get: func(o *Options) string {
				switch o.Linebreak {
				case "\r":
					return "cr"
				case "\r\n":
					return "crlf"
				}
				return "lf"
			},
			Set: func(o *Options, v string) error {
				switch strings.ToLower(strings.TrimSpace(v)) {
				case "cr":
					o.Linebreak = "\r"
				case "crlf":
					o.Linebreak = "\r\n"
				case "lf":
					o.Linebreak = "\n"
				default:
					return fmt.Errorf("linebreaks: expected cr, crlf or lf, got %q", v)
				}
				return nil
			},
			Infer: func(tokens []token.Token, o *Options) {
				if lb, ok := InferLinebreak(tokens); ok {
					o.Linebreak = lb
				}
			},
		},
		{
			Name: "tabwidth",
			Help: "The width of a tab character, used for column arithmetic",
			Get:  func(o *Options) string { return strconv.Itoa(o.TabWidth) },
			Set: func(o *Options, v string) error {
				n, err := strconv.Atoi(strings.TrimSpace(v))
				if err != nil || n < 1 {
					return fmt.Errorf("tabwidth: expected a positive number, got %q", v)
				}
				o.TabWidth = n
				return nil
			},
		},
		{
			Name: "trimwhitespace",
			Help: `Trim trailing space: "always" or "nonblank-lines"`,
			Get:  func(o *Options) string { return o.TrimWhitespace },
			Set:  enumSetter("trimwhitespace", func(o *Options) *string { return &o.TrimWhitespace }, "always", "nonblank-lines"),
		},
		{
			Name: "header",
			Help: `Header comment template, "ignore" or "strip". Supports {file}, {year}, {created}, {author}, {author.name} and {author.email}`,
			Get: func(o *Options) string {
				if o.FileHeader == "" {
					return "ignore"
				}
				return o.FileHeader
			},
			Set: func(o *Options, v string) error {
				if strings.EqualFold(v, "ignore") {
					o.FileHeader = ""
					return nil
				}
				o.FileHeader = strings.ReplaceAll(v, `\n`, "\n")
				return nil
			},
		},
		{
			Name: "importgrouping",
			Help: `Sort order of imports: "alpha" or "length"`,
			Get:  func(o *Options) string { return o.ImportGrouping },
			Set:  enumSetter("importgrouping", func(o *Options) *string { return &o.ImportGrouping }, "alpha", "length"),
		},
		{
			Name: "maxblanklines",
			Help: "Maximum number of consecutive blank lines",
			Get:  func(o *Options) string { return strconv.Itoa(o.MaxBlankLines) },
			Set: func(o *Options, v string) error {
				n, err := strconv.Atoi(strings.TrimSpace(v))
				if err != nil || n < 0 {
					return fmt.Errorf("maxblanklines: expected a non-negative number, got %q", v)
				}
				o.MaxBlankLines = n
				return nil
			},
		},
		{
			Name: "fragment",
			Help: "Input is a code fragment: tolerate lexer errors and rule failures",
			Get:  func(o *Options) string { return strconv.FormatBool(o.FragmentMode) },
			Set:  boolSetter("fragment", func(o *Options) *bool { return &o.FragmentMode }),
		},
		{
			Name: "conflictmarkers",
			Help: `Merge conflict markers: "reject" or "ignore"`,
			Get: func(o *Options) string {
				if o.IgnoreConflictMarkers {
					return "ignore"
				}
				return "reject"
			},
			Set: func(o *Options, v string) error {
				switch strings.ToLower(strings.TrimSpace(v)) {
				case "reject":
					o.IgnoreConflictMarkers = false
				case "ignore":
					o.IgnoreConflictMarkers = true
				default:
					return fmt.Errorf("conflictmarkers: expected reject or ignore, got %q", v)
				}
				return nil
			},
		},
	}
	defaults := Default()
	for i := range ds {
		ds[i].Default = ds[i].Get(&defaults)
	}
	slices.SortFunc(ds, func(a, b Descriptor) int { return strings.Compare(a.Name, b.Name) })
	return ds
}

func enumSetter(name string, field func(*Options) *string, allowed ...string) func(*Options, string) error {
	return func(o *Options, v string) error {
		v = strings.ToLower(strings.TrimSpace(v))
		if !slices.Contains(allowed, v) {
			return fmt.Errorf("%s: expected one of %s, got %q", name, strings.Join(allowed, ", "), v)
		}
		*field(o) = v
		return nil
	}
}

func boolSetter(name string, field func(*Options) *bool) func(*Options, string) error {
	return func(o *Options, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: expected true or false, got %q", name, v)
		}
		*field(o) = b
		return nil
	}
}

// Descriptors returns every option, sorted by name. The slice must not be
// modified.
func Descriptors() []Descriptor {
	return descriptors
}

// Lookup finds the descriptor for name.
func Lookup(name string) (Descriptor, bool) {
	i := slices.IndexFunc(descriptors, func(d Descriptor) bool { return d.Name == name })
	if i < 0 {
		return Descriptor{}, false
	}
	return descriptors[i], true
}

// Set assigns a named option from its textual form.
func (o *Options) Set(name, value string) error {
	d, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("unknown option %q", name)
	}
	return d.Set(o, value)
}

// Get returns the textual form of a named option.
func (o *Options) Get(name string) (string, error) {
	d, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown option %q", name)
	}
	return d.Get(o), nil
}

// IsDefault reports whether the named option still has its default value.
// Unknown names report false.
func (o *Options) IsDefault(name string) bool {
	d, ok := Lookup(name)
	return ok && d.Get(o) == d.Default
}

// Apply sets every option in overrides. Keys are applied in sorted order so
// that errors are reported deterministically.
func (o *Options) Apply(overrides map[string]string) error {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := o.Set(k, overrides[k]); err != nil {
			return err
		}
	}
	return nil
}
