package unpacker

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is wrapped by every Decode failure.
var ErrMalformed = errors.New("malformed program")

type parser struct {
	s   string
	off int
}

func (p *parser) fail(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrMalformed, p.off, fmt.Sprintf(format, args...))
}

func (p *parser) literal(want string) error {
	if !strings.HasPrefix(p.s[p.off:], want) {
		return p.fail("expected %q", want)
	}
	p.off += len(want)
	return nil
}

func (p *parser) str() (string, error) {
	v, rest, err := unquote(p.s[p.off:])
	if err != nil {
		return "", p.fail("%v", err)
	}
	p.off = len(p.s) - len(rest)
	return v, nil
}

func (p *parser) number() (int, error) {
	end := p.off
	for end < len(p.s) && p.s[end] >= '0' && p.s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(p.s[p.off:end])
	if err != nil {
		return 0, p.fail("expected integer")
	}
	p.off = end
	return n, nil
}

// Decode parses a program rendered by Program.Source and returns the text it would
// evaluate, computing keys with the arithmetic written in the program itself.
func Decode(program string) (string, error) {
	p := &parser{s: program}
	var (
		blob, sep, singles, prefixes string
		n, first, m                  int
		err                          error
	)
	steps := []func() error{
		func() error { return p.literal("d=") },
		func() (e error) { blob, e = p.str(); return },
		func() error { return p.literal(".split(") },
		func() (e error) { sep, e = p.str(); return },
		func() error { return p.literal(");for(i=") },
		func() (e error) { n, e = p.number(); return },
		func() error { return p.literal(";i;i--)for(j=i;j;)d[--j]=d[j].split((k=i-") },
		func() (e error) { first, e = p.number(); return },
		func() error { return p.literal(")<0?") },
		func() (e error) { singles, e = p.str(); return },
		func() error { return p.literal("[i-1]:") },
		func() (e error) { prefixes, e = p.str(); return },
		func() error { return p.literal("[k%") },
		func() (e error) { m, e = p.number(); return },
		func() error { return p.literal("]+") },
	}
	for _, step := range steps {
		if err = step(); err != nil {
			return "", err
		}
	}
	mm := strconv.Itoa(m)
	alphanumeric := false
	switch {
	case strings.HasPrefix(p.s[p.off:], "(~~(k/"+mm+")).toString(36)"):
		alphanumeric = true
		p.off += len("(~~(k/" + mm + ")).toString(36)")
	case strings.HasPrefix(p.s[p.off:], "~~(k/"+mm+")"):
		p.off += len("~~(k/" + mm + ")")
	default:
		return "", p.fail("expected key suffix")
	}
	if err = p.literal(").join(d[i]);(1,eval)(d[0])"); err != nil {
		return "", err
	}
	if p.off != len(p.s) {
		return "", p.fail("trailing data")
	}
	if sep == "" {
		return "", fmt.Errorf("%w: empty separator", ErrMalformed)
	}

	key := func(i int) (string, error) {
		k := i - first
		if k < 0 {
			if i-1 >= len(singles) {
				return "", fmt.Errorf("%w: no single key for slot %d", ErrMalformed, i)
			}
			return singles[i-1 : i], nil
		}
		if m <= 0 || m > len(prefixes) {
			return "", fmt.Errorf("%w: no key prefix for slot %d", ErrMalformed, i)
		}
		if alphanumeric {
			return prefixes[k%m:k%m+1] + strconv.FormatInt(int64(k/m), 36), nil
		}
		return prefixes[k%m:k%m+1] + strconv.Itoa(k/m), nil
	}

	d := strings.Split(blob, sep)
	if len(d) != n+1 {
		return "", fmt.Errorf("%w: %d fields for %d slots", ErrMalformed, len(d), n)
	}
	for i := n; i > 0; i-- {
		k, err := key(i)
		if err != nil {
			return "", err
		}
		for j := i; j > 0; {
			j--
			d[j] = strings.ReplaceAll(d[j], k, d[i])
		}
	}
	return d[0], nil
}
