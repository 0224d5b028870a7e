package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fractalpixel/selfextractor-compressor/internal/config"
)

func parse(t *testing.T, args ...string) (*cobra.Command, *Flags) {
	t.Helper()
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	f := Bind(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, f
}

func TestConfigDefaults(t *testing.T) {
	cmd, f := parse(t)
	cfg, err := f.Config(cmd)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestConfigFlagsOverride(t *testing.T) {
	cmd, f := parse(t, "--rounds", "7", "--seed", "demo", "--top", "5", "--numeric-keys", "-q")
	cfg, err := f.Config(cmd)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Rounds)
	assert.Equal(t, "demo", cfg.RandomSeed)
	assert.Equal(t, 5, cfg.TopReplacementsToSelectFrom)
	assert.False(t, cfg.UseAlphanumericMultiCharacterKeys)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, config.Default().SelectionFocus, cfg.SelectionFocus)
}

func TestConfigFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sfx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rounds: 12\nselection_focus: 0.2\n"), 0o644))

	cmd, f := parse(t, "--config", path, "--focus", "0.9")
	cfg, err := f.Config(cmd)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Rounds)
	assert.Equal(t, 0.9, cfg.SelectionFocus)
}

func TestConfigInvalidFlag(t *testing.T) {
	cmd, f := parse(t, "--top", "31")
	_, err := f.Config(cmd)
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestConfigMissingFile(t *testing.T) {
	cmd, f := parse(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := f.Config(cmd)
	require.Error(t, err)
}

func TestOptions(t *testing.T) {
	cmd, f := parse(t, "--no-extract", "--verify", "--workers", "3", "-q")
	opt, logger, err := f.Options(cmd)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.False(t, opt.Extract)
	assert.True(t, opt.Verify)
	assert.True(t, opt.QUIET)
	assert.Equal(t, 3, opt.Workers)
}

func TestStartProfileWithoutFile(t *testing.T) {
	_, f := parse(t)
	stop, err := f.StartProfile()
	require.NoError(t, err)
	stop()
}
