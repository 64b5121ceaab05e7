package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileNames lists the configuration file names looked up in each directory,
// in priority order.
var FileNames = []string{".swiftformat.toml", ".swiftformat.yaml", ".swiftformat.yml"}

// File is the content of one configuration file, or the merged result of
// several files along a directory chain.
type File struct {
	Options map[string]string
	Rules   []string // replaces the default rule set when non-empty
	Enable  []string
	Disable []string
	Exclude []string // glob patterns relative to the directory of the file
	Sources []string // paths of the files merged into this one
}

// LoadFile parses a TOML or YAML configuration file. The format is chosen by
// extension. Keys other than rules/enable/disable/exclude are option names.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is chosen by the caller
	if err != nil {
		return nil, err
	}
	raw := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported config format", path)
	}
	f, err := fromRaw(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i, pattern := range f.Exclude {
		if !filepath.IsAbs(pattern) {
			f.Exclude[i] = filepath.Join(dir, pattern)
		}
	}
	f.Sources = []string{path}
	return f, nil
}

func fromRaw(raw map[string]any) (*File, error) {
	f := &File{Options: make(map[string]string)}
	var errs []error
	for key, value := range raw {
		switch strings.ToLower(key) {
		case "rules":
			f.Rules, errs = appendList(f.Rules, key, value, errs)
		case "enable":
			f.Enable, errs = appendList(f.Enable, key, value, errs)
		case "disable":
			f.Disable, errs = appendList(f.Disable, key, value, errs)
		case "exclude":
			f.Exclude, errs = appendList(f.Exclude, key, value, errs)
		default:
			name := strings.ToLower(key)
			if _, ok := Lookup(name); !ok {
				errs = append(errs, fmt.Errorf("unknown option %q", key))
				continue
			}
			f.Options[name] = scalar(value)
		}
	}
	slices.Sort(f.Rules)
	slices.Sort(f.Enable)
	slices.Sort(f.Disable)
	slices.Sort(f.Exclude)
	return f, errors.Join(errs...)
}

func appendList(dst []string, key string, value any, errs []error) ([]string, []error) {
	switch v := value.(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				dst = append(dst, part)
			}
		}
	case []any:
		for _, item := range v {
			dst = append(dst, scalar(item))
		}
	default:
		errs = append(errs, fmt.Errorf("%s: expected a list or comma separated string", key))
	}
	return dst, errs
}

func scalar(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Merge layers child over parent. Options and the explicit rule list in child
// win; enable/disable/exclude accumulate.
func Merge(parent, child *File) *File {
	if parent == nil {
		return child
	}
	if child == nil {
		return parent
	}
	out := &File{
		Options: make(map[string]string, len(parent.Options)+len(child.Options)),
		Rules:   parent.Rules,
	}
	for k, v := range parent.Options {
		out.Options[k] = v
	}
	for k, v := range child.Options {
		out.Options[k] = v
	}
	if len(child.Rules) > 0 {
		out.Rules = child.Rules
	}
	out.Enable = append(slices.Clone(parent.Enable), child.Enable...)
	out.Disable = append(slices.Clone(parent.Disable), child.Disable...)
	out.Exclude = append(slices.Clone(parent.Exclude), child.Exclude...)
	out.Sources = append(slices.Clone(parent.Sources), child.Sources...)
	return out
}

// Excludes reports whether path matches one of the exclude patterns.
func (f *File) Excludes(path string) bool {
	if f == nil {
		return false
	}
	for _, pattern := range f.Exclude {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		if strings.HasPrefix(path, strings.TrimSuffix(pattern, string(filepath.Separator))+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
