package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bitlatte/quill/internal/config"
	"github.com/Bitlatte/quill/internal/scaffold"
)

// A freshly scaffolded site must build cleanly end to end.
func TestBuildScaffoldedSite(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })
	require.NoError(t, scaffold.Create("demo-site"))

	cfg, err := config.Load("demo-site", "")
	require.NoError(t, err)
	assert.Equal(t, "Demo Site", cfg.Title)

	sum, err := New("demo-site", cfg, nil).Build()
	require.NoError(t, err)
	assert.Zero(t, sum.Skipped)
	assert.Greater(t, sum.Static, 0)

	for _, rel := range []string{
		"index.html",
		"about/index.html",
		"posts/index.html",
		"posts/hello-world/index.html",
		"css/style.css",
	} {
		assert.FileExists(t, filepath.Join("demo-site", "public", rel))
	}

	home := readOutput(t, "demo-site", "index.html")
	assert.Contains(t, home, "Demo Site")
	assert.Contains(t, home, "/posts/hello-world/")
}
