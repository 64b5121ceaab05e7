package rules

import (
	"slices"

	"swiftformat/internal/buffer"
	"swiftformat/internal/token"
)

var redundantExtensionACL = New(
	"redundantExtensionACL",
	"Remove redundant access control modifiers.",
	func(b *buffer.Buffer) {
		decls := b.Declarations()
		var remove []int
		for k, ext := range decls {
			if ext.Keyword != "extension" || !ext.HasBody() {
				continue
			}
			acl := aclModifier(b, ext.KeywordIndex)
			if acl < 0 {
				continue
			}
			level := b.At(acl).Text
			if redundantExtensionLevel(b, decls, k, level) {
				if b.InRange(acl) {
					remove = append(remove, acl)
				}
				continue
			}
			if level == "private" {
				level = "fileprivate" // members of a private extension are file-visible
			}
			for _, member := range decls {
				if member.Parent != k {
					continue
				}
				m := aclModifier(b, member.KeywordIndex)
				if m >= 0 && b.At(m).Text == level && b.InRange(m) {
					remove = append(remove, m)
				}
			}
		}
		slices.Sort(remove)
		for k := len(remove) - 1; k >= 0; k-- {
			i := remove[k]
			end := i + 1
			if b.At(end).IsSpace() {
				end++
			}
			b.RemoveRange(i, end)
		}
	},
)

// aclModifier returns the index of the plain access control modifier of the
// declaration at keyword, or -1. Setter-only forms such as private(set) do
// not count.
func aclModifier(b *buffer.Buffer, keyword int) int {
	for _, i := range b.Modifiers(keyword) {
		tok := b.At(i)
		if tok.Kind != token.Keyword || !slices.Contains(buffer.ACLModifiers, tok.Text) {
			continue
		}
		if b.At(b.NextNonSpace(i)).IsStartOfScope("(") {
			continue
		}
		return i
	}
	return -1
}

// redundantExtensionLevel reports whether a private or fileprivate extension
// only has direct members that are themselves private, in which case the
// extension's own modifier restricts nothing further.
func redundantExtensionLevel(b *buffer.Buffer, decls []buffer.Declaration, ext int, level string) bool {
	if level != "private" && level != "fileprivate" {
		return false
	}
	members := 0
	for _, member := range decls {
		if member.Parent != ext {
			continue
		}
		m := aclModifier(b, member.KeywordIndex)
		if m < 0 || b.At(m).Text != "private" {
			return false
		}
		members++
	}
	return members > 0
}
