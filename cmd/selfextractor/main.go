/*
Selfextractor packs a JavaScript production into a self-extracting program.
*/
package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	selfextractor "github.com/fractalpixel/selfextractor-compressor"
	"github.com/fractalpixel/selfextractor-compressor/internal/cli"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		log.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var in, out string
	var watch bool
	cmd := &cobra.Command{
		Use:           "selfextractor -i in.js -o out.js",
		Short:         "Pack a JavaScript source into a self-extracting program",
		Version:       selfextractor.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cli.Bind(cmd)
	cmd.Flags().StringVarP(&in, "in", "i", "", "input `file`, javascript or an html wrapper")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output `file`")
	cmd.Flags().BoolVar(&watch, "watch", false, "pack again whenever the input changes")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("out")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
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

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer cancel()
		if err := pack(ctx, opt, logger, in, out); err != nil {
			return err
		}
		if !watch {
			return nil
		}
		return watchFile(ctx, logger, in, func() error {
			return pack(ctx, opt, logger, in, out)
		})
	}
	return cmd
}

func pack(ctx context.Context, opt selfextractor.Options, logger *zap.Logger, in, out string) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	p, err := selfextractor.NewContext(ctx, opt, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("packing %q failed: %w", in, err)
	}
	if err := os.WriteFile(out, p.Bytes(), 0o644); err != nil {
		return err
	}
	if opt.QUIET {
		return nil
	}
	return cli.Summary(logger, filepath.Base(out), p)
}

// watchFile calls fn after every write to path until ctx is done. Editors tend to
// save in bursts, so events are collected for a short while before packing.
func watchFile(ctx context.Context, logger *zap.Logger, path string, fn func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not start watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("could not watch %q: %w", path, err)
	}
	logger.Info("watching " + path)

	target := filepath.Clean(path)
	const settle = 100 * time.Millisecond
	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(settle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher", zap.Error(err))
		case <-timer.C:
			if err := fn(); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Error("pack", zap.Error(err))
			}
		}
	}
}
