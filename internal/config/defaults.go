package config

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		Scan: ScanConfig{
			OrphanMinSize:   "1KB",
			VendorAllowlist: []string{},
			ExcludePatterns: []string{},
		},
		Removal: RemovalConfig{
			Mode:             "trash", // Recoverable by default
			DryRun:           false,
			ConfirmProtected: true, // Protected artifacts need an explicit opt-in
		},
		Security: SecurityConfig{
			ProbeCacheTTL: "5m",
		},
		Verbose: false,
	}
}

// DefaultDaemon returns the daemon section used when the config file has none
func DefaultDaemon() *DaemonConfig {
	return &DaemonConfig{
		Enabled:  false,
		Schedule: "@daily",
		LogLevel: "info",
	}
}

// GetExampleConfig returns an example configuration with comments
func GetExampleConfig() string {
	return `# AppSweep Configuration File
# This file controls how applications and their leftovers are found and removed
# Location: ~/.config/appsweep/config.yaml

# Orphan scan settings
scan:
  # Ignore orphaned artifacts smaller than this (they are rarely worth surfacing)
  orphan_min_size: "1KB"

  # Identifier prefixes to treat as shared vendor data, never orphans
  # Built-in vendors (com.apple, com.microsoft, ...) are always exempt
  vendor_allowlist: []
  #  - "com.mycorp"

  # Entries both scans leave alone: glob patterns matched against the
  # entry name and full path, or plain substrings of the path
  exclude_patterns: []
  #  - "com.mycorp.*"
  #  - "KeepMe"

# Removal settings
removal:
  # "trash" moves artifacts to the trash (recoverable)
  # "permanent" deletes them outright
  mode: "trash"

  # When true, shows what would be removed without touching anything
  dry_run: false

  # Require explicit confirmation before removing protected artifacts
  # (app containers and other data that may hold user documents)
  confirm_protected: true

# Security settings
security:
  # How long the System Integrity Protection probe result is cached
  probe_cache_ttl: "5m"

# Verbose output - Show detailed information during execution
verbose: false

# Daemon mode - scheduled orphan scanning
# Uncomment to enable; see "appsweep-daemon"
#daemon:
#  enabled: true
#  schedule: "@daily"        # Cron expression or @hourly/@daily/@weekly
#  pid_file: ""              # Defaults to /tmp/appsweep-daemon.pid
#  log_file: ""              # Empty logs to stdout
#  log_level: "info"         # trace, debug, info, warn, error
#  notify:
#    webhook: ""             # POST a JSON report here after each scan
#    min_orphan_size: "10MB" # Only notify when orphans exceed this total
`
}
