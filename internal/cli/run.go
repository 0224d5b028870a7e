package cli

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	selfextractor "github.com/fractalpixel/selfextractor-compressor"
	"github.com/fractalpixel/selfextractor-compressor/internal/diag"
)

// Options resolves the packer options and a logger from the command line.
func (f *Flags) Options(cmd *cobra.Command) (selfextractor.Options, *zap.Logger, error) {
	cfg, err := f.Config(cmd)
	if err != nil {
		return selfextractor.Options{}, nil, err
	}
	logger, err := diag.NewLogger(f.Verbose, f.Quiet)
	if err != nil {
		return selfextractor.Options{}, nil, err
	}
	return selfextractor.Options{
		Config:  cfg,
		QUIET:   f.Quiet,
		Extract: !f.NoExtract,
		Verify:  f.Verify,
		Workers: f.Workers,
		Logger:  logger,
	}, logger, nil
}

// StartProfile starts a cpu profile when a file was given. The returned stop
// function is always safe to call.
func (f *Flags) StartProfile() (func(), error) {
	if f.CPUProfile == "" {
		return func() {}, nil
	}
	out, err := os.Create(f.CPUProfile)
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile %q: %w", f.CPUProfile, err)
	}
	if err := pprof.StartCPUProfile(out); err != nil {
		out.Close()
		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}
	return func() {
		pprof.StopCPUProfile()
		out.Close()
	}, nil
}

// Summary logs the outcome of one packed file.
func Summary(logger *zap.Logger, name string, p *selfextractor.Packer) error {
	st, err := p.Stats()
	if err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("%s: %s -> %s (%.1f%%), gzip %s -> %s",
		name,
		humanize.Bytes(uint64(st.Source)),
		humanize.Bytes(uint64(st.Output)),
		st.Ratio(),
		humanize.Bytes(uint64(st.GzipSource)),
		humanize.Bytes(uint64(st.GzipOutput)),
	), zap.Duration("elapsed", st.Elapsed))
	return nil
}
