// Package unpacker renders the self-decoding JavaScript program of a substitution
// table, and parses such a program back to the source it decodes to.
package unpacker

import (
	"strconv"
	"strings"

	"github.com/fractalpixel/selfextractor-compressor/internal/keys"
)

// Program is everything the decode procedure needs: the rewritten text, the slot
// payloads in slot order, the separator and the key layout.
type Program struct {
	Text      string
	Payloads  []string
	Separator byte
	Keys      keys.Allocator
}

// Blob is the data string split by the decoder.
func (p Program) Blob() string {
	var b strings.Builder
	b.WriteString(p.Text)
	for _, s := range p.Payloads {
		b.WriteByte(p.Separator)
		b.WriteString(s)
	}
	return b.String()
}

// Source renders the program. Slots are expanded from the last to the first, and
// each one from its own field down to field 0, so keys nested in later payloads are
// resolved before those payloads are pasted into earlier fields:
//
//	d=BLOB.split(SEP);for(i=N;i;i--)for(j=i;j;)d[--j]=d[j].split(KEY(i)).join(d[i]);(1,eval)(d[0])
//
// KEY(i) recomputes keys.Allocator.Key(i-1).
func (p Program) Source() string {
	multi := len(p.Keys.Alphabet) - p.Keys.Single
	m := strconv.Itoa(multi)

	var b strings.Builder
	b.WriteString("d=")
	b.WriteString(Quote(p.Blob()))
	b.WriteString(".split(")
	b.WriteString(Quote(string(p.Separator)))
	b.WriteString(");for(i=")
	b.WriteString(strconv.Itoa(len(p.Payloads)))
	b.WriteString(";i;i--)for(j=i;j;)d[--j]=d[j].split((k=i-")
	b.WriteString(strconv.Itoa(p.Keys.Single + 1))
	b.WriteString(")<0?")
	b.WriteString(Quote(p.Keys.SingleKeys()))
	b.WriteString("[i-1]:")
	b.WriteString(Quote(p.Keys.Prefixes()))
	b.WriteString("[k%")
	b.WriteString(m)
	b.WriteString("]+")
	if p.Keys.Alphanumeric {
		b.WriteString("(~~(k/" + m + ")).toString(36)")
	} else {
		b.WriteString("~~(k/" + m + ")")
	}
	b.WriteString(").join(d[i]);")
	// Indirect eval runs noticeably faster than a direct one.
	b.WriteString("(1,eval)(d[0])")
	return b.String()
}
