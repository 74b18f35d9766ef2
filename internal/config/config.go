package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/appsweep/internal/remover"
	"github.com/fenilsonani/appsweep/pkg/utils"
)

// Config represents the application configuration
type Config struct {
	Scan     ScanConfig     `yaml:"scan"`
	Removal  RemovalConfig  `yaml:"removal"`
	Security SecurityConfig `yaml:"security"`
	Daemon   *DaemonConfig  `yaml:"daemon,omitempty"`
	Verbose  bool           `yaml:"verbose"`
}

// ScanConfig controls artifact discovery and the orphan scan
type ScanConfig struct {
	OrphanMinSize   string   `yaml:"orphan_min_size"` // e.g., "1KB"
	VendorAllowlist []string `yaml:"vendor_allowlist"`
	ExcludePatterns []string `yaml:"exclude_patterns"` // glob or substring
}

// RemovalConfig controls how selected artifacts are removed
type RemovalConfig struct {
	Mode             string `yaml:"mode"` // "trash" or "permanent"
	DryRun           bool   `yaml:"dry_run"`
	ConfirmProtected bool   `yaml:"confirm_protected"`
}

// SecurityConfig holds security-check tuning
type SecurityConfig struct {
	ProbeCacheTTL string `yaml:"probe_cache_ttl"` // e.g., "5m"
}

// DaemonConfig holds daemon mode configuration
type DaemonConfig struct {
	Enabled  bool         `yaml:"enabled"`
	Schedule string       `yaml:"schedule"` // Cron expression
	PidFile  string       `yaml:"pid_file"`
	LogFile  string       `yaml:"log_file"`
	LogLevel string       `yaml:"log_level"`
	Notify   NotifyConfig `yaml:"notify"`
}

// NotifyConfig holds webhook notification settings
type NotifyConfig struct {
	Webhook       string `yaml:"webhook"`
	MinOrphanSize string `yaml:"min_orphan_size"` // only notify above this total
}

// Load loads configuration from a file
func Load(configPath string) (*Config, error) {
	// If config doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal over the defaults so partial files keep default values
	config := GetDefault()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := remover.ParseMode(c.Removal.Mode); err != nil {
		return err
	}

	if c.Scan.OrphanMinSize != "" {
		size, err := utils.ParseSize(c.Scan.OrphanMinSize)
		if err != nil {
			return fmt.Errorf("invalid scan.orphan_min_size: %w", err)
		}
		if size < 0 {
			return fmt.Errorf("scan.orphan_min_size must be >= 0")
		}
	}

	for _, prefix := range c.Scan.VendorAllowlist {
		trimmed := strings.TrimSpace(prefix)
		if trimmed == "" {
			return fmt.Errorf("vendor allowlist entries cannot be empty")
		}
		if strings.ContainsAny(trimmed, " /\\") {
			return fmt.Errorf("invalid vendor allowlist prefix: %q", prefix)
		}
	}

	for _, pattern := range c.Scan.ExcludePatterns {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("exclude patterns cannot be empty")
		}
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}

	if c.Security.ProbeCacheTTL != "" {
		ttl, err := time.ParseDuration(c.Security.ProbeCacheTTL)
		if err != nil {
			return fmt.Errorf("invalid security.probe_cache_ttl: %w", err)
		}
		if ttl <= 0 {
			return fmt.Errorf("security.probe_cache_ttl must be positive")
		}
	}

	if c.Daemon != nil {
		if err := c.Daemon.validate(); err != nil {
			return err
		}
	}

	return nil
}

func (d *DaemonConfig) validate() error {
	if d.Enabled && d.Schedule == "" {
		return fmt.Errorf("daemon.schedule is required when the daemon is enabled")
	}
	if d.Schedule != "" {
		if _, err := cron.ParseStandard(d.Schedule); err != nil {
			return fmt.Errorf("invalid daemon.schedule %q: %w", d.Schedule, err)
		}
	}
	if d.LogLevel != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(d.LogLevel)); err != nil {
			return fmt.Errorf("invalid daemon.log_level %q: %w", d.LogLevel, err)
		}
	}
	for name, path := range map[string]string{
		"daemon.pid_file": d.PidFile,
		"daemon.log_file": d.LogFile,
	} {
		if path != "" && !filepath.IsAbs(path) {
			return fmt.Errorf("%s must be absolute: %s", name, path)
		}
	}
	if d.Notify.Webhook != "" {
		u, err := url.Parse(d.Notify.Webhook)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("daemon.notify.webhook must be an http(s) URL: %s", d.Notify.Webhook)
		}
	}
	if d.Notify.MinOrphanSize != "" {
		size, err := utils.ParseSize(d.Notify.MinOrphanSize)
		if err != nil {
			return fmt.Errorf("invalid daemon.notify.min_orphan_size: %w", err)
		}
		if size < 0 {
			return fmt.Errorf("daemon.notify.min_orphan_size must be >= 0")
		}
	}
	return nil
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(homeDir, ".config", "appsweep")
	return filepath.Join(configDir, "config.yaml"), nil
}

// EnsureConfigExists creates a default config file if it doesn't exist
func EnsureConfigExists() (string, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		defaultConfig := GetDefault()
		if err := Save(defaultConfig, configPath); err != nil {
			return "", err
		}
	}

	return configPath, nil
}
