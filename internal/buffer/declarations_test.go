package buffer

import (
	"testing"
)

func TestDeclarationsNesting(t *testing.T) {
	src := `import Foundation
public extension Foo {
    private(set) var count: Int
    @objc public func bar() -> Int {
        let x = 1
        return x
    }
    struct Inner {
        public func baz() {}
    }
}
class func`
	b := newBuffer(src, false, nil)
	decls := b.Declarations()
	type want struct {
		keyword, name string
		parent        int
		body          bool
	}
	wants := []want{
		{"import", "Foundation", -1, false},
		{"extension", "Foo", -1, true},
		{"var", "count", 1, false},
		{"func", "bar", 1, true},
		{"let", "x", 3, false},
		{"struct", "Inner", 1, true},
		{"func", "baz", 5, true},
		{"func", "", -1, false},
	}
	if len(decls) != len(wants) {
		for _, d := range decls {
			t.Logf("%+v", d)
		}
		t.Fatalf("got %d declarations, want %d", len(decls), len(wants))
	}
	for i, w := range wants {
		d := decls[i]
		if d.Keyword != w.keyword || d.Name != w.name || d.Parent != w.parent || d.HasBody() != w.body {
			t.Errorf("decl %d = %+v, want %+v", i, d, w)
		}
	}
	ext := decls[1]
	if b.At(ext.Start).Text != "public" {
		t.Errorf("extension should start at its modifier, got %v", b.At(ext.Start))
	}
	bar := decls[3]
	mods := b.Modifiers(bar.KeywordIndex)
	if len(mods) != 2 || b.At(mods[0]).Text != "@objc" || b.At(mods[1]).Text != "public" {
		t.Errorf("bar modifiers = %v", mods)
	}
	count := decls[2]
	if mods := b.Modifiers(count.KeywordIndex); len(mods) != 1 || b.At(mods[0]).Text != "private" {
		t.Errorf("count modifiers = %v", mods)
	}
}
