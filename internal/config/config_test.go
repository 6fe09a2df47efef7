package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 0.3, cfg.Watermark.Opacity)
	assert.Equal(t, "c", cfg.Watermark.Position)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
default_output_dir: /data/pdfs
quiet: true
watermark:
  opacity: 0.5
  position: tl
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/pdfs", cfg.DefaultOutputDir)
	assert.True(t, cfg.Quiet)
	assert.Equal(t, 0.5, cfg.Watermark.Opacity)
	assert.Equal(t, "tl", cfg.Watermark.Position)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, 50, cfg.Watermark.FontSize)
	assert.Equal(t, 45, cfg.Watermark.Rotation)
}

func TestLoadRejectsInvalidOpacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("watermark:\n  opacity: 1.5\n"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opacity must be between 0.0 and 1.0")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quiet: [unterminated"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadHonoursEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quiet: true\n"), 0600))
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Quiet)
}

func TestStateRoundTrip(t *testing.T) {
	t.Setenv(StatePathEnvVar, filepath.Join(t.TempDir(), "state.json"))

	state := LoadState()
	assert.Empty(t, state.Recent())

	require.NoError(t, state.AddRecent("/docs/a.pdf"))
	require.NoError(t, state.AddRecent("/docs/b.pdf"))
	require.NoError(t, state.SetLastOutputDir("/docs/out"))

	loaded := LoadState()
	assert.Equal(t, []string{"/docs/b.pdf", "/docs/a.pdf"}, loaded.Recent())
	assert.Equal(t, "/docs/out", loaded.LastOutputDir)
}

func TestAddRecentDeduplicates(t *testing.T) {
	t.Setenv(StatePathEnvVar, filepath.Join(t.TempDir(), "state.json"))

	state := &State{}
	require.NoError(t, state.AddRecent("/docs/a.pdf"))
	require.NoError(t, state.AddRecent("/docs/b.pdf"))
	require.NoError(t, state.AddRecent("/docs/a.pdf"))

	// Re-adding moves the file to the head instead of duplicating it.
	assert.Equal(t, []string{"/docs/a.pdf", "/docs/b.pdf"}, state.Recent())
}

func TestAddRecentCapsList(t *testing.T) {
	t.Setenv(StatePathEnvVar, filepath.Join(t.TempDir(), "state.json"))

	state := &State{}
	for i := range maxRecentFiles + 5 {
		require.NoError(t, state.AddRecent(fmt.Sprintf("/docs/file%d.pdf", i)))
	}

	recent := state.Recent()
	assert.Len(t, recent, maxRecentFiles)
	assert.Equal(t, fmt.Sprintf("/docs/file%d.pdf", maxRecentFiles+4), recent[0])
}

func TestLoadStateIgnoresCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))
	t.Setenv(StatePathEnvVar, path)

	state := LoadState()
	assert.Empty(t, state.Recent())
	assert.Empty(t, state.LastOutputDir)
}
