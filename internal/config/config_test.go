package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftformat/internal/lexer"
)

func TestDescriptorsSortedWithDefaults(t *testing.T) {
	ds := Descriptors()
	require.NotEmpty(t, ds)
	for i := 1; i < len(ds); i++ {
		assert.Less(t, ds[i-1].Name, ds[i].Name)
	}
	opts := Default()
	for _, d := range ds {
		assert.True(t, opts.IsDefault(d.Name), "option %s should start at its default", d.Name)
	}
}

func TestSetAndGet(t *testing.T) {
	opts := Default()
	require.NoError(t, opts.Set("indent", "2"))
	assert.Equal(t, "  ", opts.Indent)
	assert.False(t, opts.IsDefault("indent"))

	require.NoError(t, opts.Set("indent", "tab"))
	got, err := opts.Get("indent")
	require.NoError(t, err)
	assert.Equal(t, "tab", got)

	require.NoError(t, opts.Set("linebreaks", "crlf"))
	assert.Equal(t, "\r\n", opts.Linebreak)

	require.NoError(t, opts.Set("conflictmarkers", "ignore"))
	assert.True(t, opts.IgnoreConflictMarkers)

	require.NoError(t, opts.Set("header", `// {file}\n// by {author}`))
	assert.Equal(t, "// {file}\n// by {author}", opts.FileHeader)

	assert.Error(t, opts.Set("indent", "zero"))
	assert.Error(t, opts.Set("trimwhitespace", "sometimes"))
	assert.Error(t, opts.Set("nope", "1"))
}

func TestApplyIsDeterministic(t *testing.T) {
	opts := Default()
	err := opts.Apply(map[string]string{"tabwidth": "x", "indent": "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "indent")
}

func TestInferIndent(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
		ok   bool
	}{
		{"two spaces", "struct A {\n  var x: Int\n  func f() {\n    g()\n  }\n}\n", "  ", true},
		{"tabs", "struct A {\n\tvar x: Int\n\tfunc f() {\n\t\tg()\n\t}\n}\n", "\t", true},
		{"flat", "let a = 1\nlet b = 2\n", "", false},
		{"comments ignored", "struct A {\n        // deep comment\n   var x = 1\n}\n", "   ", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := InferIndent(lexer.Tokenize(tc.src))
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestInferLinebreak(t *testing.T) {
	lb, ok := InferLinebreak(lexer.Tokenize("a\r\nb\r\nc\nd"))
	require.True(t, ok)
	assert.Equal(t, "\r\n", lb)
	_, ok = InferLinebreak(lexer.Tokenize("single line"))
	assert.False(t, ok)
}

func TestLoadFileFormats(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, ".swiftformat.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("indent = 2\nfragment = true\ndisable = [\"trailingSpace\"]\nexclude = \"Generated, Pods\"\n"), 0o644))
	f, err := LoadFile(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, "2", f.Options["indent"])
	assert.Equal(t, "true", f.Options["fragment"])
	assert.Equal(t, []string{"trailingSpace"}, f.Disable)
	assert.Equal(t, []string{filepath.Join(dir, "Generated"), filepath.Join(dir, "Pods")}, f.Exclude)
	assert.True(t, f.Excludes(filepath.Join(dir, "Pods", "x.swift")))

	yamlPath := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("linebreaks: crlf\nrules:\n  - indent\n  - linebreaks\n"), 0o644))
	f, err = LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "crlf", f.Options["linebreaks"])
	assert.Equal(t, []string{"indent", "linebreaks"}, f.Rules)

	badPath := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(badPath, []byte("colour = \"red\"\n"), 0o644))
	_, err = LoadFile(badPath)
	assert.ErrorContains(t, err, "unknown option")
}

func TestCacheMergesAncestors(t *testing.T) {
	root := t.TempDir()
	child := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(child, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".swiftformat.toml"), []byte("indent = 2\nmaxblanklines = 2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", ".swiftformat.yml"), []byte("indent: 3\n"), 0o644))

	cache := NewCache(nil)
	var wg sync.WaitGroup
	results := make([]*File, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := cache.Resolve(child)
			assert.NoError(t, err)
			results[i] = f
		}(i)
	}
	wg.Wait()

	for _, f := range results[1:] {
		assert.Same(t, results[0], f)
	}
	got := results[0]
	require.NotNil(t, got)
	assert.Equal(t, "3", got.Options["indent"])
	assert.Equal(t, "2", got.Options["maxblanklines"])
	assert.Len(t, got.Sources, 2)

	opts := Default()
	require.NoError(t, opts.Apply(got.Options))
	assert.Equal(t, "   ", opts.Indent)
	assert.Equal(t, 2, opts.MaxBlankLines)
}

func TestFileInfoFileName(t *testing.T) {
	assert.Equal(t, "Foo.swift", FileInfo{FilePath: "/src/app/Foo.swift"}.FileName())
	assert.Equal(t, "Foo.swift", FileInfo{FilePath: "Foo.swift"}.FileName())
}
