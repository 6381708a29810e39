// Package config loads the shopcanvas project configuration. A
// shopcanvas.yml (or shopcanvas.toml) is discovered by walking up from the
// working directory; environment variables referenced as ${VAR} are expanded
// before parsing, and SHOPCANVAS_* variables override the backend settings.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/shopcanvas/shopcanvas/errors"
	"github.com/shopcanvas/shopcanvas/logging"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// Config is the root of the shopcanvas project configuration.
type Config struct {
	// Backend configures the BaaS the builder persists to.
	Backend BackendConfig `yaml:"backend" toml:"backend"`

	// StoreID selects the store record the editor opens by default. Empty
	// means a fresh, not-yet-created store.
	StoreID string `yaml:"store_id" toml:"store_id"`

	// Editor tunes the editing session.
	Editor EditorConfig `yaml:"editor" toml:"editor"`

	// Serve configures the public storefront HTTP server.
	Serve ServeConfig `yaml:"serve" toml:"serve"`

	// Logging configures log output.
	Logging logging.Config `yaml:"logging" toml:"logging"`
}

// BackendConfig points at a Supabase-compatible backend.
type BackendConfig struct {
	URL    string `yaml:"url" toml:"url"`
	APIKey string `yaml:"api_key" toml:"api_key"`
	// Bucket is the object storage bucket for store assets.
	Bucket string `yaml:"bucket" toml:"bucket"`
}

// EditorConfig tunes the editing session.
type EditorConfig struct {
	// AutosaveDelayMs is the debounce quiet period before autosave, in
	// milliseconds. Zero uses the default of 2000.
	AutosaveDelayMs int `yaml:"autosave_delay_ms" toml:"autosave_delay_ms"`
	// HistoryLimit caps undo history snapshots. Zero uses the default of 100;
	// negative disables the cap.
	HistoryLimit int `yaml:"history_limit" toml:"history_limit"`
	// Autosave disables background saving entirely when false. Defaults on.
	Autosave *bool `yaml:"autosave" toml:"autosave"`
}

// ServeConfig configures the public storefront server.
type ServeConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
	// BaseDomain is stripped from request hosts to extract the store
	// subdomain, e.g. "shopcanvas.local" turns "acme.shopcanvas.local" into
	// "acme".
	BaseDomain string `yaml:"base_domain" toml:"base_domain"`
}

// ConfigFileNames are recognized configuration file names, in priority order.
var ConfigFileNames = []string{"shopcanvas.yml", "shopcanvas.yaml", "shopcanvas.toml"}

func init() {
	logging.SetConfigProvider(func() (logging.Config, bool) {
		cfg, err := LoadDefault()
		if err != nil {
			return logging.Config{}, false
		}
		return cfg.Logging, true
	})
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	return LoadFromBytes(data, filepath.Ext(path))
}

// LoadFromBytes parses configuration data. The ext argument selects the
// format (".toml" or anything else for YAML).
func LoadFromBytes(data []byte, ext string) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	var err error
	if ext == ".toml" {
		err = toml.Unmarshal([]byte(expanded), &cfg)
	} else {
		err = yaml.Unmarshal([]byte(expanded), &cfg)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config file")
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadDefault finds and loads the configuration starting from the current
// working directory. A missing config file yields a usable default config
// with env-provided backend settings rather than an error.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}
	return LoadFrom(cwd)
}

// LoadFrom loads configuration starting from the given directory.
func LoadFrom(startDir string) (*Config, error) {
	path, err := FindConfigFile(startDir)
	if err != nil {
		cfg := &Config{}
		cfg.applyEnvOverrides()
		cfg.applyDefaults()
		return cfg, nil
	}
	return Load(path)
}

// FindConfigFile walks up from startDir looking for a recognized config file.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.ConfigNotFound(filepath.Join(startDir, ConfigFileNames[0]))
		}
		dir = parent
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SHOPCANVAS_SUPABASE_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("SHOPCANVAS_SUPABASE_KEY"); v != "" {
		c.Backend.APIKey = v
	}
	if v := os.Getenv("SHOPCANVAS_BUCKET"); v != "" {
		c.Backend.Bucket = v
	}
	if v := os.Getenv("SHOPCANVAS_STORE_ID"); v != "" {
		c.StoreID = v
	}
}

func (c *Config) applyDefaults() {
	if c.Backend.Bucket == "" {
		c.Backend.Bucket = "store-assets"
	}
	if c.Editor.AutosaveDelayMs == 0 {
		c.Editor.AutosaveDelayMs = 2000
	}
	if c.Editor.HistoryLimit == 0 {
		c.Editor.HistoryLimit = 100
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = ":8427"
	}
	if c.Serve.BaseDomain == "" {
		c.Serve.BaseDomain = "localhost"
	}
}

// AutosaveEnabled reports whether background saving is on.
func (c *Config) AutosaveEnabled() bool {
	if c.Editor.Autosave == nil {
		return true
	}
	return *c.Editor.Autosave
}

// expandEnvVars replaces ${VAR} references with environment values. Unknown
// variables expand to the empty string.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(name)
	})
}
