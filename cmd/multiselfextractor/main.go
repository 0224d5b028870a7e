/*
Multiselfextractor packs several JavaScript sources at once, writing file.sfx.js
next to every input.
*/
package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	selfextractor "github.com/fractalpixel/selfextractor-compressor"
	"github.com/fractalpixel/selfextractor-compressor/internal/cli"
)

const suffix = ".sfx.js"

func main() {
	if err := newCommand().Execute(); err != nil {
		log.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var jobs int
	cmd := &cobra.Command{
		Use:           "multiselfextractor [flags] file...",
		Short:         "Pack several JavaScript sources in parallel",
		Version:       selfextractor.Version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cli.Bind(cmd)
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "files packed at the same time")

	cmd.RunE = func(cmd *cobra.Command, files []string) error {
		t0 := time.Now()
		stop, err := flags.StartProfile()
		if err != nil {
			return err
		}
		defer stop()

		opt, logger, err := flags.Options(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()
		// Interleaved round progress of parallel files is unreadable.
		opt.Config = opt.Config.WithVerbose(false)

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer cancel()
		if err := packFiles(ctx, opt, logger, jobs, files); err != nil {
			return err
		}
		if !opt.QUIET {
			logger.Info(fmt.Sprintf("packed %d files", len(files)), zap.Duration("elapsed", time.Since(t0)))
		}
		return nil
	}
	return cmd
}

func packFiles(ctx context.Context, opt selfextractor.Options, logger *zap.Logger, jobs int, files []string) error {
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for _, file := range files {
		g.Go(func() error {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			p, err := selfextractor.NewContext(ctx, opt, bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("packing %q failed: %w", file, err)
			}
			if err := os.WriteFile(file+suffix, p.Bytes(), 0o644); err != nil {
				return err
			}
			if opt.QUIET {
				return nil
			}
			return cli.Summary(logger, file+suffix, p)
		})
	}
	return g.Wait()
}
