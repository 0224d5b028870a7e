package selfextractor

import (
	"bytes"
	"fmt"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Stats compares the packed program with its input.
type Stats struct {
	Input      int
	Source     int
	Output     int
	GzipSource int
	GzipOutput int
	Elapsed    time.Duration
}

// Ratio is the output size in percent of the normalized source.
func (s Stats) Ratio() float64 {
	if s.Source == 0 {
		return 100
	}
	return float64(s.Output) * 100 / float64(s.Source)
}

// Stats measures the run. Gzip sizes are what a zip-packed release would weigh.
func (p *Packer) Stats() (Stats, error) {
	gs, err := gzipSize(p.result.Source)
	if err != nil {
		return Stats{}, err
	}
	gp, err := gzipSize(p.result.Program)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Input:      p.input,
		Source:     len(p.result.Source),
		Output:     len(p.result.Program),
		GzipSource: gs,
		GzipOutput: gp,
		Elapsed:    p.elapsed,
	}, nil
}

func gzipSize(s string) (int, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return 0, fmt.Errorf("gzip: %w", err)
	}
	if _, err := w.Write([]byte(s)); err != nil {
		return 0, fmt.Errorf("gzip: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("gzip: %w", err)
	}
	return buf.Len(), nil
}
