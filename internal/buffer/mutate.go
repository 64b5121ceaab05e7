package buffer

import (
	"slices"

	"swiftformat/internal/token"
)

// Insert inserts toks before index. All indices >= index shift up.
func (b *Buffer) Insert(index int, toks ...token.Token) {
	if len(toks) == 0 {
		return
	}
	index = min(max(index, 0), len(b.tokens))
	b.trackChange(index)
	b.edits++
	b.tokens = slices.Insert(b.tokens, index, toks...)
	n := len(toks)
	for k, c := range b.cursors {
		if index <= c {
			b.cursors[k] = c + n
		}
	}
	if b.rng != nil {
		r := b.rng.Inserted(index, n)
		b.rng = &r
	}
}

// Remove deletes the token at index.
func (b *Buffer) Remove(index int) {
	b.RemoveRange(index, index+1)
}

// RemoveRange deletes tokens in [start, end). Indices >= end shift down.
func (b *Buffer) RemoveRange(start, end int) {
	start = max(start, 0)
	end = min(end, len(b.tokens))
	if start >= end {
		return
	}
	b.trackChange(start)
	b.edits++
	b.tokens = slices.Delete(b.tokens, start, end)
	n := end - start
	for k, c := range b.cursors {
		switch {
		case c >= end:
			b.cursors[k] = c - n
		case c >= start:
			b.cursors[k] = start - 1
		}
	}
	if b.rng != nil {
		r := b.rng.Removed(start, end)
		b.rng = &r
	}
}

// Replace swaps the token at index. Replacing a token with an equal one is
// not a change.
func (b *Buffer) Replace(index int, tok token.Token) {
	if index < 0 || index >= len(b.tokens) || b.tokens[index] == tok {
		return
	}
	b.trackChange(index)
	b.edits++
	b.tokens[index] = tok
}

// ReplaceRange replaces [start, end) with toks. Only the differing middle part
// is touched, so a replacement with identical tokens records nothing. The
// whole replacement counts as one edit per original line.
func (b *Buffer) ReplaceRange(start, end int, toks ...token.Token) {
	start = max(start, 0)
	end = min(max(end, start), len(b.tokens))
	old := b.tokens[start:end]
	prefix := 0
	for prefix < len(old) && prefix < len(toks) && old[prefix] == toks[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(old)-prefix && suffix < len(toks)-prefix &&
		old[len(old)-1-suffix] == toks[len(toks)-1-suffix] {
		suffix++
	}
	oldMid := len(old) - prefix - suffix
	newMid := toks[prefix : len(toks)-suffix]
	at := start + prefix
	if b.group < 0 {
		b.group = at
		defer func() { b.group = -1 }()
	}
	overlap := min(oldMid, len(newMid))
	for k := range overlap {
		b.Replace(at+k, newMid[k])
	}
	switch {
	case len(newMid) > overlap:
		b.Insert(at+overlap, newMid[overlap:]...)
	case oldMid > overlap:
		b.RemoveRange(at+overlap, at+oldMid)
	}
}
