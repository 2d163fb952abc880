// Package config resolves the conncheck settings from defaults, an optional
// YAML or JSON file, a .env file, the environment and command-line flags.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no file is given.
const DefaultFile = "conncheck.yaml"

// Environment variables consulted by Load. CONNCHECK_API_URL wins over VITE_API_URL.
const (
	EnvAPIURL     = "CONNCHECK_API_URL"
	EnvViteAPIURL = "VITE_API_URL"
	EnvDebug      = "CONNCHECK_DEBUG"
)

// Config is the resolved application configuration.
type Config struct {
	APIURL   string     `mapstructure:"api_url"`
	Debug    bool       `mapstructure:"debug"`
	Validate bool       `mapstructure:"validate"`
	Stub     StubConfig `mapstructure:"stub"`
}

// StubConfig configures the reference backend.
type StubConfig struct {
	Addr        string  `mapstructure:"addr"`
	RedisAddr   string  `mapstructure:"redis_addr"`
	RedisPrefix string  `mapstructure:"redis_prefix"`
	RateLimit   float64 `mapstructure:"rate_limit"`
	Burst       int     `mapstructure:"burst"`
	Metrics     bool    `mapstructure:"metrics"`
}

// Defaults returns the built-in settings.
func Defaults() map[string]any {
	return map[string]any{
		"api_url":  "http://localhost:5000",
		"debug":    false,
		"validate": true,
		"stub": map[string]any{
			"addr":         ":5000",
			"redis_addr":   "",
			"redis_prefix": "conncheck:",
			"rate_limit":   0,
			"burst":        0,
			"metrics":      true,
		},
	}
}

// Options locate the sources consulted by Load.
type Options struct {
	// File is an explicit config path. A missing explicit file is an error.
	File string
	// EnvFile is the dotenv file. A missing file is ignored.
	EnvFile string
	// Overrides are applied last, keyed like the file (e.g. "api_url", "stub.addr").
	Overrides map[string]any
}

// Load resolves the configuration. Later sources override earlier ones.
func Load(opts Options) (*Config, error) {
	settings := Defaults()

	path := opts.File
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	fileSettings, err := readFile(path, explicit)
	if err != nil {
		return nil, err
	}
	merge(settings, fileSettings)

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}
	merge(settings, fromEnv())

	for key, value := range opts.Overrides {
		set(settings, key, value)
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_url %q: must be an absolute http(s) URL", c.APIURL)
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.Stub.RateLimit < 0 || c.Stub.Burst < 0 {
		return fmt.Errorf("invalid stub rate limit: rate_limit and burst must not be negative")
	}
	return nil
}

// readFile loads a YAML or JSON file into a generic map.
func readFile(path string, required bool) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	out := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	return out, nil
}

func fromEnv() map[string]any {
	out := map[string]any{}
	if v := os.Getenv(EnvViteAPIURL); v != "" {
		out["api_url"] = v
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		out["api_url"] = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		out["debug"] = v
	}
	return out
}

// merge copies src into dst, descending into nested maps.
func merge(dst, src map[string]any) {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				merge(existing, sub)
				continue
			}
		}
		dst[k] = v
	}
}

// set assigns a dotted key such as "stub.addr".
func set(dst map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		sub, ok := dst[p].(map[string]any)
		if !ok {
			sub = map[string]any{}
			dst[p] = sub
		}
		dst = sub
	}
	dst[parts[len(parts)-1]] = value
}
