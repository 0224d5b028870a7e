package selfextractor

import (
	"regexp"
	"strings"
)

var (
	scriptBlock = regexp.MustCompile(`(?is)<script[^>]*>(.*?)</script>`)
	commentLine = regexp.MustCompile(`(?m)^[ \t]*//.*$`)
)

// Extract returns the content of the last <script> block of raw, or all of raw if it
// has none, with comment-only lines removed and surrounding whitespace trimmed.
func Extract(raw string) string {
	src := raw
	if blocks := scriptBlock.FindAllStringSubmatch(raw, -1); len(blocks) > 0 {
		src = blocks[len(blocks)-1][1]
	}
	src = commentLine.ReplaceAllString(src, "")
	return strings.TrimSpace(src)
}
