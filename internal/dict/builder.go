// Package dict greedily builds the substitution table of one encoding attempt.
package dict

import (
	"context"
	"math"

	"github.com/fractalpixel/selfextractor-compressor/internal/keys"
	"github.com/fractalpixel/selfextractor-compressor/internal/rng"
)

// Slot binds one key to its payload. Payload is kept current with every later
// substitution, so it may contain keys of later slots.
type Slot struct {
	Index   int
	Key     string
	Payload string
	Count   int
	Value   int
}

// Result is the rewritten text and the table that produced it.
type Result struct {
	Text  string
	Slots []Slot
	// Value is the bytes saved in the text minus the bytes spent storing each
	// payload and its separator.
	Value int
}

// Payloads returns the slot payloads in slot order.
func (r Result) Payloads() []string {
	out := make([]string, len(r.Slots))
	for i, s := range r.Slots {
		out[i] = s.Payload
	}
	return out
}

// Builder holds the per-attempt parameters of the greedy search.
type Builder struct {
	Keys            keys.Allocator
	TopReplacements int
	SelectionFocus  float64
	Workers         int
}

// Build substitutes one substring per slot until keys run out or no substring has a
// positive value. On cancellation it returns the table built so far with ctx.Err().
func (b Builder) Build(ctx context.Context, text string, r *rng.Rand) (Result, error) {
	matcher := NewMatcher(b.Keys.Prefixes())
	working := text
	var slots []Slot
	var err error

	for slot := 0; ; slot++ {
		if err = ctx.Err(); err != nil {
			break
		}
		key, ok := b.Keys.Key(slot)
		if !ok {
			break
		}
		sc := &scanner{matcher: &matcher, idLength: len(key), workers: b.Workers}
		chosen, ok := b.choose(sc, working, b.rank(r))
		if !ok {
			break
		}
		working = matcher.Replace(working, chosen.Substring, key)
		for i := range slots {
			slots[i].Payload = matcher.Replace(slots[i].Payload, chosen.Substring, key)
		}
		slots = append(slots, Slot{
			Index:   slot,
			Key:     key,
			Payload: chosen.Substring,
			Count:   chosen.Count,
			Value:   chosen.Value,
		})
	}

	res := Result{Text: working, Slots: slots, Value: len(text) - len(working)}
	for _, s := range slots {
		res.Value -= len(s.Payload) + 1
	}
	return res, err
}

// rank draws which of the top candidates to commit, skewed towards the best one as
// SelectionFocus approaches 1.
func (b Builder) rank(r *rng.Rand) int {
	focus := math.Min(1, math.Max(0, b.SelectionFocus))
	plain := r.Float64()
	skewed := r.Float64() * r.Float64() * r.Float64()
	return int(rng.Mix(focus, plain, skewed) * float64(b.TopReplacements))
}

// choose walks the candidates from best through rank and keeps the last one seen.
// With fewer than rank+1 candidates the lowest ranked available one is kept.
func (b Builder) choose(sc *scanner, text string, rank int) (Candidate, bool) {
	skip := make(map[string]bool)
	var chosen Candidate
	found := false
	for i := 0; i <= rank; i++ {
		c, ok := sc.best(text, skip)
		if !ok {
			break
		}
		skip[c.Substring] = true
		chosen = c
		found = true
	}
	return chosen, found
}
