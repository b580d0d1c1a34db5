package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "file:newsbyte.db?cache=shared&mode=rwc&_txlock=immediate", cfg.Database.DSN)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.Feeds.RefreshInterval)
	assert.Equal(t, "Newsbyte/1.0", cfg.Feeds.UserAgent)
	assert.Equal(t, 30*time.Second, cfg.Extraction.Timeout)

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":8080", listen)
	assert.Equal(t, 30*time.Second, timeout)
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 10s
database:
  dsn: "file:test.db"
  max_open_conns: 3
feeds:
  refresh_interval: 5m
  timeout: 5s
  user_agent: "custom/1.0"
  sources:
    technology:
      - name: Example Tech
        url: https://example.com/tech.xml
    general:
      - url: https://example.com/news.xml
extraction:
  timeout: 20s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, 10*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "file:test.db", cfg.Database.DSN)
	assert.Equal(t, 3, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns, "unset field gets default")
	assert.Equal(t, 5*time.Minute, cfg.Feeds.RefreshInterval)
	assert.Equal(t, "custom/1.0", cfg.Feeds.UserAgent)
	assert.Equal(t, 20*time.Second, cfg.Extraction.Timeout)

	require.Len(t, cfg.Feeds.Sources["technology"], 1)
	assert.Equal(t, "Example Tech", cfg.Feeds.Sources["technology"][0].Name)
	assert.Equal(t, "https://example.com/tech.xml", cfg.Feeds.Sources["technology"][0].URL)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_LISTEN_ADDR", ":7070")
	path := writeConfig(t, "server:\n  listen: \"${TEST_LISTEN_ADDR}\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Listen)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"unknown category", "feeds:\n  sources:\n    weather:\n      - url: https://example.com/x.xml\n", "unknown feed category"},
		{"source without url", "feeds:\n  sources:\n    general:\n      - name: broken\n", "has no url"},
		{"tiny server timeout", "server:\n  timeout: 100ms\n", "server timeout"},
		{"tiny refresh interval", "feeds:\n  refresh_interval: 5s\n", "refresh_interval"},
		{"bad yaml", "server: [\n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}
