package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsbyte/newsbyte/pkg/config"
	"github.com/newsbyte/newsbyte/pkg/domain"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  listen: \":9090\"\n"), 0o600))

	cfg, err := loadConfig(Opts{Config: path})
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Listen)

	// CLI listen overrides the config file
	cfg, err = loadConfig(Opts{Config: path, Listen: ":7070"})
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Listen)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(Opts{Config: filepath.Join(t.TempDir(), "absent.yml")})
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Listen)
}

func TestFeedSources(t *testing.T) {
	cfg := &config.Config{}
	cfg.Feeds.Sources = map[string][]config.Source{
		"technology": {{Name: "Example Tech", URL: "https://example.com/tech.xml"}},
		"general":    {{URL: "https://example.com/news.xml"}},
	}

	sources := feedSources(cfg)
	require.Len(t, sources, 2)
	require.Len(t, sources[domain.CategoryTechnology], 1)
	assert.Equal(t, "Example Tech", sources[domain.CategoryTechnology][0].Name)
	assert.Equal(t, "https://example.com/news.xml", sources[domain.CategoryGeneral][0].URL)
}

func TestSetupLog(t *testing.T) {
	// just verify both modes don't panic
	setupLog(false)
	setupLog(true)
	setupLog(true, "secret")
}
