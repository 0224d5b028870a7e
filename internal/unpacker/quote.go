package unpacker

import (
	"errors"
	"fmt"
	"strings"
)

// Quote returns the shortest string literal of s among double, single and backtick
// quoting. Ties keep that order.
func Quote(s string) string {
	alternatives := []string{
		`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`,
		`'` + strings.ReplaceAll(s, `'`, `\'`) + `'`,
		"`" + strings.ReplaceAll(strings.ReplaceAll(s, "${", "\\${"), "`", "\\`") + "`",
	}
	best := alternatives[0]
	for _, a := range alternatives[1:] {
		if len(a) < len(best) {
			best = a
		}
	}
	return best
}

var errUnterminated = errors.New("unterminated string literal")

// unquote parses the string literal at the start of s and returns its value and the
// remainder of s. It accepts only the escapes a JavaScript engine would resolve to a
// single literal character: \\ \" \' \` and \$.
func unquote(s string) (string, string, error) {
	if s == "" {
		return "", "", errUnterminated
	}
	q := s[0]
	if q != '"' && q != '\'' && q != '`' {
		return "", "", fmt.Errorf("expected string literal, got %q", s[0])
	}
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == q:
			return b.String(), s[i+1:], nil
		case c == '\\':
			if i+1 >= len(s) {
				return "", "", errUnterminated
			}
			i++
			switch s[i] {
			case '\\', '"', '\'', '`', '$':
				b.WriteByte(s[i])
			default:
				return "", "", fmt.Errorf("unsupported escape \\%c at offset %d", s[i], i)
			}
		case c == '\n' || c == '\r':
			if q != '`' {
				return "", "", fmt.Errorf("line terminator in string literal at offset %d", i)
			}
			b.WriteByte(c)
		case q == '`' && c == '$' && i+1 < len(s) && s[i+1] == '{':
			return "", "", fmt.Errorf("template substitution in literal at offset %d", i)
		default:
			b.WriteByte(c)
		}
	}
	return "", "", errUnterminated
}
