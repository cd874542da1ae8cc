package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	mdwerror "github.com/msto63/radscene/foundation/core/error"
	mdwlog "github.com/msto63/radscene/foundation/core/log"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "RADSCENE_CONFIG"

// Output formats known to the renderers
var KnownFormats = []string{"json", "jsonl", "yaml", "text"}

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	Input   InputConfig   `toml:"input"`
	Output  OutputConfig  `toml:"output"`
	Store   StoreConfig   `toml:"store"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// InputConfig controls how scene sources are read and watched
type InputConfig struct {
	Extensions     []string `toml:"extensions"`
	MaxConcurrency int      `toml:"max_concurrency"`
	WatchDebounce  Duration `toml:"watch_debounce"`
}

// OutputConfig controls record rendering
type OutputConfig struct {
	Format string `toml:"format"`
	Pretty *bool  `toml:"pretty"`
	Indent *int   `toml:"indent"`
}

// StoreConfig holds scene store settings
type StoreConfig struct {
	Path string `toml:"path"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, mdwerror.Newf("config file not found: %s", path).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("config.Load")
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", path).
			WithOperation("config.Load")
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from RADSCENE_CONFIG or the first file
// found in the default locations
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, mdwerror.New("no config file found, set RADSCENE_CONFIG or create configs/radscene.toml").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("config.LoadFromEnv")
	}

	return Load(path)
}

// DefaultPaths returns the config file locations searched by LoadFromEnv
func DefaultPaths() []string {
	return []string{
		"./configs/radscene.toml",
		"./radscene.toml",
		filepath.Join(os.Getenv("HOME"), ".config/radscene/config.toml"),
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Names are matched in lower case everywhere
	c.General.LogLevel = normalizeName(c.General.LogLevel)
	c.General.LogFormat = normalizeName(c.General.LogFormat)
	c.Output.Format = normalizeName(c.Output.Format)

	// General
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Input
	if len(c.Input.Extensions) == 0 {
		c.Input.Extensions = []string{".rad", ".mat", ".sky", ".geo", ".oct.rad"}
	}
	if c.Input.MaxConcurrency == 0 {
		c.Input.MaxConcurrency = 4
	}
	if c.Input.WatchDebounce.Duration == 0 {
		c.Input.WatchDebounce.Duration = 300 * time.Millisecond
	}

	// Output
	if c.Output.Format == "" {
		c.Output.Format = "json"
	}
	if c.Output.Pretty == nil {
		pretty := true
		c.Output.Pretty = &pretty
	}
	if c.Output.Indent == nil {
		indent := 2
		c.Output.Indent = &indent
	}

	// Store
	if c.Store.Path == "" {
		c.Store.Path = "$HOME/.local/share/radscene/scenes.db"
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.Store.Path = os.ExpandEnv(c.Store.Path)
}

// Validate checks value ranges and names
func (c *Config) Validate() error {
	invalid := func(field string, value interface{}, msg string) error {
		return mdwerror.New(msg).
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("field", field).
			WithDetail("value", value).
			WithOperation("config.Validate")
	}

	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel, err.Error())
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat, err.Error())
	}
	if !IsKnownFormat(c.Output.Format) {
		return invalid("output.format", c.Output.Format, "unknown output format, expected one of "+strings.Join(KnownFormats, ", "))
	}
	if indent := c.Indent(); indent < 0 || indent > 8 {
		return invalid("output.indent", indent, "indent must be between 0 and 8")
	}
	if c.Input.MaxConcurrency < 1 {
		return invalid("input.max_concurrency", c.Input.MaxConcurrency, "max_concurrency must be at least 1")
	}
	if c.Input.WatchDebounce.Duration < 0 {
		return invalid("input.watch_debounce", c.Input.WatchDebounce.String(), "watch_debounce must not be negative")
	}
	for _, ext := range c.Input.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return invalid("input.extensions", ext, "extensions must start with a dot")
		}
	}
	return nil
}

// IsPretty reports whether JSON output is indented
func (c *Config) IsPretty() bool {
	return c.Output.Pretty == nil || *c.Output.Pretty
}

// Indent returns the JSON indent width
func (c *Config) Indent() int {
	if c.Output.Indent == nil {
		return 2
	}
	return *c.Output.Indent
}

// IsKnownFormat reports whether name is a supported output format, in any case
func IsKnownFormat(name string) bool {
	name = normalizeName(name)
	for _, f := range KnownFormats {
		if f == name {
			return true
		}
	}
	return false
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
