// Package config provides configuration loading and validation for hostq.
// It handles reading configuration from files, providing defaults, and
// ensuring all required settings are properly set.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lc/hostq/internal/filesys"
)

var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrNoConfig is returned when the configuration file is not found.
	ErrNoConfig = errors.New("configuration file not found")
)

const (
	// DefaultConfigPath is the default path for the configuration file,
	// relative to the user's home directory.
	DefaultConfigPath = ".hostq/config.yaml"
	// DefaultHistoryPath is the default path for the history file,
	// relative to the user's home directory.
	DefaultHistoryPath = ".hostq/history.yaml"
	// DefaultQueryTimeout is the default per-query timeout for lookups.
	DefaultQueryTimeout = 5 * time.Second
	// DefaultHistoryLimit is the default number of retained history entries.
	DefaultHistoryLimit = 100
)

// DefaultResolvers is the resolver pool used when none is configured.
var DefaultResolvers = []string{"1.1.1.1:53"}

// Config holds the application configuration.
type Config struct {
	Resolver ResolverConfig `yaml:"resolver"`
	History  HistoryConfig  `yaml:"history"`
}

// ResolverConfig holds lookup-related configuration.
type ResolverConfig struct {
	// Addresses are host:port DNS servers, picked at random per query.
	Addresses []string `yaml:"addresses"`
	// Timeout bounds each query. It is the only timeout in the system.
	Timeout time.Duration `yaml:"timeout"`
}

// HistoryConfig holds history-related configuration.
type HistoryConfig struct {
	// Path of the history file; empty means DefaultHistoryPath under
	// the user's home directory.
	Path string `yaml:"path"`
	// Limit caps retained entries; oldest are evicted past it.
	Limit int `yaml:"limit"`
}

// Provider defines the interface for loading configuration.
type Provider interface {
	Load() (*Config, error)
}

// FSProvider implements Provider using the local filesystem.
type FSProvider struct {
	fs   filesys.ReadWriteFS
	path string
}

// Verify FSProvider implements Provider interface.
var _ Provider = (*FSProvider)(nil)

// New creates a new configuration provider using the default configuration path.
// It uses the OS filesystem and the user's home directory to locate the
// configuration file. If the home directory cannot be determined, it falls
// back to the current directory.
func New() Provider {
	return NewWithPath(filesys.OS(), filepath.Join(homeDir(), DefaultConfigPath))
}

// NewWithPath creates a new provider with a specific config path.
// It allows specifying both the filesystem implementation and the path to use.
func NewWithPath(fs filesys.ReadWriteFS, path string) Provider {
	return &FSProvider{
		fs:   fs,
		path: path,
	}
}

// Default returns a default configuration with preset values.
// This is used when no configuration file exists.
func Default() *Config {
	return &Config{
		Resolver: ResolverConfig{
			Addresses: DefaultResolvers,
			Timeout:   DefaultQueryTimeout,
		},
		History: HistoryConfig{
			Limit: DefaultHistoryLimit,
		},
	}
}

// Load loads the configuration from the specified path.
func (p *FSProvider) Load() (*Config, error) {
	_ = p.ensureConfigDir()

	cfg, err := p.loadAndParse()
	if err != nil {
		if errors.Is(err, ErrNoConfig) {
			return Default(), nil
		}
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}

// Validate checks the configuration to ensure all required fields are set.
func (c *Config) Validate() error {
	if len(c.Resolver.Addresses) == 0 {
		return errors.New("at least one resolver address is required")
	}
	for _, addr := range c.Resolver.Addresses {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("resolver address %q must be host:port", addr)
		}
	}
	if c.Resolver.Timeout < time.Second {
		return errors.New("query timeout must be at least 1 second")
	}
	if c.History.Limit < 1 {
		return errors.New("history limit must be at least 1")
	}
	return nil
}

// HistoryPath resolves the configured history path, falling back to
// DefaultHistoryPath under the user's home directory.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return filepath.Join(homeDir(), DefaultHistoryPath)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Resolve relative to the current directory instead.
		fmt.Fprintf(os.Stderr, "Warning: could not determine home directory: %v\n", err)
		return ""
	}
	return home
}

func (p *FSProvider) ensureConfigDir() error {
	dir := filepath.Dir(p.path)
	if _, err := p.fs.Stat(dir); os.IsNotExist(err) {
		if err := p.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	return nil
}

func (p *FSProvider) loadAndParse() (*Config, error) {
	f, err := p.fs.Open(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoConfig
		}
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config file: %w", err)
	}

	return &cfg, nil
}
