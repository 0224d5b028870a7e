package dict

import (
	"strings"
	"unicode/utf8"
)

// Matcher finds occurrences of substrings at aligned positions of a working text.
// A position is aligned when it starts a UTF-8 sequence, does not sit between a
// multi-character key prefix and its suffix, and does not split a doubled backslash.
type Matcher struct {
	prefix [256]bool
}

// NewMatcher returns a Matcher that keeps keys starting with one of prefixes intact.
func NewMatcher(prefixes string) Matcher {
	var m Matcher
	for i := 0; i < len(prefixes); i++ {
		m.prefix[prefixes[i]] = true
	}
	return m
}

// Aligned reports whether a substring may start or end at p.
func (m *Matcher) Aligned(s string, p int) bool {
	if p <= 0 || p >= len(s) {
		return true
	}
	if !utf8.RuneStart(s[p]) || m.prefix[s[p-1]] {
		return false
	}
	run := 0
	for q := p - 1; q >= 0 && s[q] == '\\'; q-- {
		run++
	}
	return run%2 == 0
}

// Count returns the number of non-overlapping aligned occurrences of sub in s,
// scanning left to right.
func (m *Matcher) Count(s, sub string) int {
	n := 0
	m.each(s, sub, func(int) { n++ })
	return n
}

// Replace substitutes key for every occurrence Count would count.
func (m *Matcher) Replace(s, sub, key string) string {
	var b strings.Builder
	last := 0
	m.each(s, sub, func(q int) {
		b.WriteString(s[last:q])
		b.WriteString(key)
		last = q + len(sub)
	})
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

func (m *Matcher) each(s, sub string, fn func(int)) {
	if len(sub) == 0 {
		return
	}
	from := 0
	for from <= len(s)-len(sub) {
		i := strings.Index(s[from:], sub)
		if i < 0 {
			return
		}
		q := from + i
		if m.Aligned(s, q) && m.Aligned(s, q+len(sub)) {
			fn(q)
			from = q + len(sub)
		} else {
			from = q + 1
		}
	}
}
