// Package keys finds the bytes usable as substitution keys and maps slot indices to
// key strings.
package keys

import "strings"

// FORBIDDEN are never used as keys or separators, they conflict with quoting.
const FORBIDDEN = "\\`'\""

// PREFERREDSEPARATOR is moved to the front of the alphabet when available.
const PREFERREDSEPARATOR = '|'

// MINPRINTABLE is the alphabet size below which control bytes are added.
const MINPRINTABLE = 5

const (
	NUMERICSUFFIXES      = "0123456789"
	ALPHANUMERICSUFFIXES = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// fallback control bytes tried, in order, when printable ASCII runs short.
// None of them is a line terminator inside a string literal.
const fallback = "\x1D\x1E\x1F\x01\x02\x03\x04\x05\x06\x07\x10\x11\x12\x13\x14\x1A"

// Suffixes returns the characters multi-character keys use as their second byte.
func Suffixes(alphanumeric bool) string {
	if alphanumeric {
		return ALPHANUMERICSUFFIXES
	}
	return NUMERICSUFFIXES
}

// FindUnused returns the bytes absent from s that may serve as separator and keys:
// printable ASCII outside FORBIDDEN and reserved, extended with control bytes when
// fewer than MINPRINTABLE were found. PREFERREDSEPARATOR comes first if present.
func FindUnused(s string, reserved string) []byte {
	var found []byte
	for c := byte(32); c < 127; c++ {
		if usable(s, c, reserved) {
			found = append(found, c)
		}
	}
	if len(found) < MINPRINTABLE {
		for i := 0; i < len(fallback); i++ {
			if strings.IndexByte(s, fallback[i]) < 0 {
				found = append(found, fallback[i])
			}
		}
	}
	for i, c := range found {
		if c == PREFERREDSEPARATOR {
			copy(found[1:i+1], found[:i])
			found[0] = PREFERREDSEPARATOR
			break
		}
	}
	return found
}

func usable(s string, c byte, reserved string) bool {
	return strings.IndexByte(s, c) < 0 &&
		strings.IndexByte(FORBIDDEN, c) < 0 &&
		strings.IndexByte(reserved, c) < 0
}
