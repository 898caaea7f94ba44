// Package config loads streamtable settings from YAML files and the environment.
//
// Precedence, lowest to highest: built-in defaults, the global config file,
// the project-local overlay, environment variables, and finally CLI flags
// (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvConfigPath = "STREAMTABLE_CONFIG"
	EnvHome       = "STREAMTABLE_HOME"
	EnvPageSize   = "STREAMTABLE_PAGE_SIZE"
	EnvStyle      = "STREAMTABLE_STYLE"
	EnvLogLevel   = "STREAMTABLE_LOG_LEVEL"
	EnvLogFormat  = "STREAMTABLE_LOG_FORMAT"
	EnvLogFile    = "STREAMTABLE_LOG_FILE"
)

// Defaults.
const (
	DefaultPageSize    = 100
	DefaultStyle       = "rounded"
	DefaultInputFormat = "ndjson"
	DefaultPrecision   = -1
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "console"

	dirName        = ".streamtable"
	configFileName = "config.yaml"
	logFileName    = "streamtable.log"
	outputTypeFile = "file"
)

// ErrInvalidPageSize is returned for a page size outside 1..10000.
var ErrInvalidPageSize = errors.New("table.page_size must be between 1 and 10000")

// Config is the full streamtable configuration.
type Config struct {
	Table   TableConfig   `yaml:"table"`
	Logging LoggingConfig `yaml:"logging"`
}

// TableConfig controls paging and rendering.
type TableConfig struct {
	PageSize    int    `yaml:"page_size"`
	Style       string `yaml:"style"`
	Width       int    `yaml:"width"`
	GroupDigits bool   `yaml:"group_digits"`
	Precision   int    `yaml:"precision"`
	InputFormat string `yaml:"input_format"`
}

// LoggingConfig controls diagnostic logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Table: TableConfig{
			PageSize:    DefaultPageSize,
			Style:       DefaultStyle,
			Precision:   DefaultPrecision,
			InputFormat: DefaultInputFormat,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	if c.Table.PageSize < 1 || c.Table.PageSize > 10000 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.Table.PageSize)
	}
	if c.Table.Width < 0 {
		return fmt.Errorf("table.width must be >= 0, got %d", c.Table.Width)
	}
	return nil
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := New()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("checking config file %s: %w", path, err)
	}

	if err := ShallowMergeYAML(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv(EnvPageSize); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvPageSize, err)
		}
		c.Table.PageSize = n
	}
	if v, ok := lookupEnv(EnvStyle); ok && v != "" {
		c.Table.Style = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvLogFile); ok {
		c.Logging.File = v
	}
	return nil
}

// HomeDir returns the streamtable state directory, $STREAMTABLE_HOME or ~/.streamtable.
func HomeDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// ResolvePath picks the global config file: the explicit flag value, then
// $STREAMTABLE_CONFIG, then the default under HomeDir.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	dir, err := HomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configFileName)
}

var (
	globalConfig   *Config      //nolint:gochecknoglobals // Set once per invocation by the CLI
	globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Guards globalConfig
)

// SetGlobalConfig installs cfg as the configuration for this invocation.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the configuration for this invocation, or defaults.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	if globalConfig == nil {
		return New()
	}
	return globalConfig
}
