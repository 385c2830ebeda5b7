package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err, "a missing config file falls back to defaults")

	assert.Equal(t, "My Quill Site", cfg.Title)
	assert.Equal(t, "public", cfg.OutputDir)
	assert.Empty(t, cfg.BaseURL)
	assert.Equal(t, 4, cfg.Workers)
	assert.False(t, cfg.Sanitize)
}

func TestLoadFromFile(t *testing.T) {
	root := t.TempDir()
	yaml := `title: Gatkin's Site
description: notes on software engineering
author: Greg
baseURL: https://example.com
outputDir: dist
sanitize: true
workers: 8
menus:
  main:
    - name: About
      url: /about/
      weight: 2
    - name: Home
      url: /
      weight: 1
      children:
        - name: Archive
          url: /archive/
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(root, "")
	require.NoError(t, err)

	assert.Equal(t, "Gatkin's Site", cfg.Title)
	assert.Equal(t, "notes on software engineering", cfg.Description)
	assert.Equal(t, "Greg", cfg.Author)
	assert.Equal(t, "https://example.com", cfg.BaseURL)
	assert.Equal(t, "dist", cfg.OutputDir)
	assert.True(t, cfg.Sanitize)
	assert.Equal(t, 8, cfg.Workers)

	main := cfg.Menus["main"]
	require.Len(t, main, 2)
	assert.Equal(t, "Home", main[0].Name, "menu items sort by weight")
	assert.Equal(t, "About", main[1].Name)
	require.Len(t, main[0].Children, 1)
	assert.Equal(t, "/archive/", main[0].Children[0].URL)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("QUILL_OUTPUTDIR", "out")
	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestLoadClampsWorkers(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.yaml"), []byte("workers: 0\n"), 0o644))

	cfg, err := Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Workers)
}
