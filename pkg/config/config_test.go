package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := `default_target: vercel
manifest: api/requirements.txt
freeze_path: output/installed.txt
skip_os: true
verbose: true
`
	err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "vercel", cfg.DefaultTarget)
	assert.Equal(t, "api/requirements.txt", cfg.Manifest)
	assert.Equal(t, "output/installed.txt", cfg.FreezePath)
	assert.True(t, cfg.SkipOS)
	assert.True(t, cfg.Verbose)
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, FileName), []byte("default_target: [oops"), 0644)
	require.NoError(t, err)

	_, err = Load(dir)
	require.Error(t, err)
}
