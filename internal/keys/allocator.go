package keys

import "strconv"

// MAXKEYLEN is the longest key string handed out.
const MAXKEYLEN = 2

// Allocator maps slot indices to key strings. The first Single bytes of Alphabet are
// single-character keys; the rest are prefixes followed by one suffix digit.
type Allocator struct {
	Alphabet     []byte
	Single       int
	Alphanumeric bool
}

// NewAllocator splits alphabet so that floor(fraction*len(alphabet)) keys are single
// characters.
func NewAllocator(alphabet []byte, fraction float64, alphanumeric bool) Allocator {
	single := int(fraction * float64(len(alphabet)))
	if single > len(alphabet) {
		single = len(alphabet)
	}
	if single < 0 {
		single = 0
	}
	return Allocator{Alphabet: alphabet, Single: single, Alphanumeric: alphanumeric}
}

// SingleKeys returns the single-character key bytes in slot order.
func (a Allocator) SingleKeys() string {
	return string(a.Alphabet[:a.Single])
}

// Prefixes returns the multi-character key prefixes.
func (a Allocator) Prefixes() string {
	return string(a.Alphabet[a.Single:])
}

// Base is the radix of multi-character key suffixes.
func (a Allocator) Base() int {
	if a.Alphanumeric {
		return 36
	}
	return 10
}

// Capacity is the number of slots that receive a key.
func (a Allocator) Capacity() int {
	return a.Single + (len(a.Alphabet)-a.Single)*a.Base()
}

// Key returns the key of slot i, or false once the capacity is exhausted.
func (a Allocator) Key(i int) (string, bool) {
	if len(a.Alphabet) == 0 || i < 0 {
		return "", false
	}
	if i < a.Single {
		return string(a.Alphabet[i]), true
	}
	multi := len(a.Alphabet) - a.Single
	if multi <= 0 {
		return "", false
	}
	k := i - a.Single
	key := string(a.Alphabet[a.Single+k%multi]) + strconv.FormatInt(int64(k/multi), a.Base())
	if len(key) > MAXKEYLEN {
		return "", false
	}
	return key, true
}

// IsPrefix reports whether c starts a multi-character key.
func (a Allocator) IsPrefix(c byte) bool {
	for _, p := range a.Alphabet[a.Single:] {
		if p == c {
			return true
		}
	}
	return false
}
