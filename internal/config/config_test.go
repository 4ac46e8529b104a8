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
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `{"base_url": "http://localhost:8000"}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultRefreshSeconds, cfg.RefreshSeconds)
	assert.Equal(t, "CNY", cfg.BaseCurrency)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout())
}

func TestRefreshIntervalFloor(t *testing.T) {
	cfg := &Config{RefreshSeconds: 2}
	assert.Equal(t, 5*time.Second, cfg.RefreshInterval())

	cfg.RefreshSeconds = 60
	assert.Equal(t, 60*time.Second, cfg.RefreshInterval())
}

func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing base_url", `{}`},
		{"bad scheme", `{"base_url": "ftp://example.com"}`},
		{"zero refresh", `{"base_url": "http://localhost", "refresh_seconds": 0}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}
