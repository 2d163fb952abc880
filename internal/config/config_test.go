package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with the conncheck variables unset.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{EnvAPIURL, EnvViteAPIURL, EnvDebug} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.False(t, cfg.Debug)
	assert.True(t, cfg.Validate)
	assert.Equal(t, ":5000", cfg.Stub.Addr)
	assert.Equal(t, "conncheck:", cfg.Stub.RedisPrefix)
	assert.Zero(t, cfg.Stub.RateLimit)
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, DefaultFile, `
api_url: http://backend:8080/
stub:
  addr: ":9000"
  rate_limit: 5
  burst: 10
`)

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, "http://backend:8080", cfg.APIURL)
	assert.Equal(t, ":9000", cfg.Stub.Addr)
	assert.Equal(t, 5.0, cfg.Stub.RateLimit)
	assert.Equal(t, 10, cfg.Stub.Burst)
	assert.Equal(t, "conncheck:", cfg.Stub.RedisPrefix, "unset nested keys keep their defaults")
}

func TestLoad_JSONFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "settings.json", `{"api_url": "https://api.example.com", "validate": false}`)

	cfg, err := Load(Options{File: path})
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.False(t, cfg.Validate)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	isolate(t)

	_, err := Load(Options{File: "nope.yaml"})
	assert.Error(t, err)
}

func TestLoad_UnknownKey(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, DefaultFile, "api_ulr: http://typo:1\n")

	_, err := Load(Options{})
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, DefaultFile, "api_url: http://from-file:1\n")
	writeFile(t, dir, ".env", "VITE_API_URL=http://from-dotenv:2\nCONNCHECK_DEBUG=true\n")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv:2", cfg.APIURL)
	assert.True(t, cfg.Debug)

	t.Setenv(EnvAPIURL, "http://from-env:3")
	cfg, err = Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:3", cfg.APIURL)

	cfg, err = Load(Options{Overrides: map[string]any{"api_url": "http://from-flag:4", "stub.addr": ":7000"}})
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag:4", cfg.APIURL)
	assert.Equal(t, ":7000", cfg.Stub.Addr)
}

func TestLoad_InvalidURL(t *testing.T) {
	isolate(t)

	tests := []string{"localhost:5000", "ftp://host", "/api", "http://"}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			_, err := Load(Options{Overrides: map[string]any{"api_url": raw}})
			assert.ErrorContains(t, err, "invalid api_url")
		})
	}
}

func TestLoad_NegativeRateLimit(t *testing.T) {
	isolate(t)

	_, err := Load(Options{Overrides: map[string]any{"stub.rate_limit": -1}})
	assert.Error(t, err)
}
