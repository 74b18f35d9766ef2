package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/fenilsonani/appsweep/internal/config"
	"github.com/fenilsonani/appsweep/internal/daemon"
)

// Overridden at build time via -ldflags.
var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

const systemConfigPath = "/etc/appsweep/config.yaml"

const enableHint = `daemon not enabled in configuration
Add the following to your config file:
daemon:
  enabled: true
  schedule: "0 3 * * *"`

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	testConfig := flag.Bool("test-config", false, "Validate configuration and exit")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("appsweep daemon v%s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
		return
	}

	if err := run(*configPath, *testConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, testConfig bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if cfg.Daemon == nil || !cfg.Daemon.Enabled {
		return errors.New(enableHint)
	}

	if testConfig {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("configuration is invalid: %w", err)
		}
		fmt.Println("Configuration is valid")
		fmt.Printf("Daemon enabled: %v\n", cfg.Daemon.Enabled)
		fmt.Printf("Schedule: %s\n", cfg.Daemon.Schedule)
		if cfg.Daemon.Notify.Webhook != "" {
			fmt.Printf("Webhook: %s\n", cfg.Daemon.Notify.Webhook)
		}
		return nil
	}

	if alreadyRunning(pidFilePath(cfg)) {
		return errors.New("daemon is already running")
	}

	d, err := daemon.New(cfg)
	if err != nil {
		return fmt.Errorf("creating daemon: %w", err)
	}
	defer d.Close()

	fmt.Println("Starting appsweep daemon...")
	return d.Start()
}

// loadConfig resolves the effective configuration: an explicit -config flag
// wins, then the system-wide file, then the per-user one.
func loadConfig(explicit string) (*config.Config, error) {
	if explicit != "" {
		return config.Load(explicit)
	}

	if _, err := os.Stat(systemConfigPath); err == nil {
		return config.Load(systemConfigPath)
	}

	path, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

func pidFilePath(cfg *config.Config) string {
	if cfg.Daemon.PidFile != "" {
		return cfg.Daemon.PidFile
	}
	return "/tmp/appsweep-daemon.pid"
}

// alreadyRunning reports whether a live process still holds the pid file.
func alreadyRunning(pidFile string) bool {
	data, err := os.ReadFile(pidFile)
	if err != nil {
		return false
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// Signal 0 probes for liveness without touching the process.
	return proc.Signal(syscall.Signal(0)) == nil
}
