package dict

import (
	"runtime"
	"sync"
)

const (
	MINLENGTH = 2
	MAXLENGTH = 20
)

// Candidate is a substring under consideration for one slot.
type Candidate struct {
	Substring string
	Count     int
	Value     int
}

// Value is the net byte saving of replacing count occurrences of a substring of the
// given length by a key of idLength bytes, after storing the substring once.
func Value(length, count, idLength int) int {
	return length*count - length - idLength*count
}

type scanner struct {
	matcher  *Matcher
	idLength int
	workers  int
}

type lengthResult struct {
	length int
	best   Candidate
	found  bool
}

// best returns the most valuable aligned substring of text not in skip, or false if
// none has a positive value. Lengths are scanned from MAXLENGTH down to MINLENGTH;
// among equal values the longer substring, then the earlier one, wins.
func (sc *scanner) best(text string, skip map[string]bool) (Candidate, bool) {
	numWorkers := sc.workers
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	jobs := make(chan int, MAXLENGTH)
	results := make(chan lengthResult, MAXLENGTH)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for length := range jobs {
				c, ok := sc.scanLength(text, length, skip)
				results <- lengthResult{length: length, best: c, found: ok}
			}
		}()
	}

	var winner lengthResult
	var collectorWg sync.WaitGroup
	collectorWg.Add(1)
	go func() {
		defer collectorWg.Done()
		for r := range results {
			if !r.found {
				continue
			}
			if !winner.found || r.best.Value > winner.best.Value ||
				(r.best.Value == winner.best.Value && r.length > winner.length) {
				winner = r
			}
		}
	}()

	for length := MAXLENGTH; length >= MINLENGTH; length-- {
		jobs <- length
	}
	close(jobs)
	wg.Wait()
	close(results)
	collectorWg.Wait()

	return winner.best, winner.found
}

type tally struct {
	count int
	end   int
}

// scanLength evaluates every distinct aligned substring of one length once.
func (sc *scanner) scanLength(text string, length int, skip map[string]bool) (Candidate, bool) {
	if len(text) < length {
		return Candidate{}, false
	}
	tallies := make(map[string]*tally)
	var order []string
	for p := 0; p+length <= len(text); p++ {
		if !sc.matcher.Aligned(text, p) || !sc.matcher.Aligned(text, p+length) {
			continue
		}
		sub := text[p : p+length]
		if skip[sub] {
			continue
		}
		t, ok := tallies[sub]
		if !ok {
			t = &tally{}
			tallies[sub] = t
			order = append(order, sub)
		}
		if p >= t.end {
			t.count++
			t.end = p + length
		}
	}

	var best Candidate
	found := false
	for _, sub := range order {
		v := Value(length, tallies[sub].count, sc.idLength)
		if v > 0 && (!found || v > best.Value) {
			best = Candidate{Substring: sub, Count: tallies[sub].count, Value: v}
			found = true
		}
	}
	return best, found
}
