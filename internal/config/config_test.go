package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test,
// like t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func writeTestConfig(t *testing.T, env, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config", env+".yaml"), []byte(content), 0o644))
	chdir(t, dir)
}

func TestLoad(t *testing.T) {
	writeTestConfig(t, "test", `
http:
  port: 8080
upstream:
  base_url: https://places.example.com
  api_key: test-key
database:
  addrs:
    - localhost:6379
auth:
  api_keys:
    - client-key
`)

	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "https://places.example.com", cfg.Upstream.BaseURL)
	assert.Equal(t, "test-key", cfg.Upstream.APIKey)
	assert.Equal(t, []string{"localhost:6379"}, cfg.Database.Addrs)
	assert.Equal(t, []string{"client-key"}, cfg.Auth.APIKeys)

	// Defaults fill in the rest.
	assert.Equal(t, 10, cfg.HTTP.ReadTimeoutSec)
	assert.Equal(t, 5, cfg.Upstream.TimeoutSec)
	assert.Equal(t, 300, cfg.Cache.SuggestTTLSec)
	assert.Equal(t, 86400, cfg.Cache.DetailTTLSec)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_PLACES_URL", "https://env.example.com")
	t.Setenv("TEST_PLACES_KEY", "")
	writeTestConfig(t, "test", `
http:
  port: ${TEST_HTTP_PORT:-9090}
upstream:
  base_url: ${TEST_PLACES_URL}
  api_key: ${TEST_PLACES_KEY:-fallback-key}
`)

	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "https://env.example.com", cfg.Upstream.BaseURL)
	assert.Equal(t, "fallback-key", cfg.Upstream.APIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("nope")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Upstream: UpstreamConfig{BaseURL: "https://places.example.com"},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"port too high", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"missing base url", func(c *Config) { c.Upstream.BaseURL = "" }, "base_url is required"},
		{"bad scheme", func(c *Config) { c.Upstream.BaseURL = "ftp://x" }, "http(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	assert.Equal(t, "local", GetEnv())

	t.Setenv("ENV", "prod")
	assert.Equal(t, "prod", GetEnv())
}
