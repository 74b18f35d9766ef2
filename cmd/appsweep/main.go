package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/appsweep/internal/apps"
	"github.com/fenilsonani/appsweep/internal/config"
	"github.com/fenilsonani/appsweep/internal/discovery"
	"github.com/fenilsonani/appsweep/internal/platform"
	"github.com/fenilsonani/appsweep/internal/progress"
	"github.com/fenilsonani/appsweep/internal/remover"
	"github.com/fenilsonani/appsweep/internal/reporter"
	"github.com/fenilsonani/appsweep/internal/security"
	"github.com/fenilsonani/appsweep/internal/trash"
	"github.com/fenilsonani/appsweep/internal/ui"
	"github.com/fenilsonani/appsweep/pkg/utils"
)

var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath       string
	verbose          bool
	outputFmt        string
	outputFile       string
	removeOutputFmt  string
	removeMode       string
	dryRun           bool
	assumeYes        bool
	includeProtected bool
	minSize          string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "appsweep",
	Short: "Application uninstaller that sweeps up leftover data",
	Long: `AppSweep removes applications together with the data they scatter across
the system: preferences, caches, application support, containers, saved
state, and launch agents.

Running appsweep without a subcommand opens the interactive interface.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return ui.RunInteractive(cfg)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed applications",
	Long:  `Lists the applications found in the configured application directories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		platformInfo, err := platform.GetInfo()
		if err != nil {
			return fmt.Errorf("failed to get platform info: %w", err)
		}

		applications, err := apps.List(platformInfo)
		if err != nil {
			return fmt.Errorf("failed to list applications: %w", err)
		}

		format, err := reporter.ParseFormat(outputFmt)
		if err != nil {
			return err
		}

		if outputFile != "" {
			if err := reporter.SaveToFile(outputFile, format, func(r *reporter.Reporter) error {
				return r.ReportApps(applications)
			}); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			fmt.Printf("Report saved to: %s\n", outputFile)
			return nil
		}

		return reporter.New(os.Stdout, format).ReportApps(applications)
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan <app>",
	Short: "Discover the artifacts belonging to an application",
	Long: `Scans the system library locations for artifacts belonging to the named
application: the bundle itself, preferences, caches, application support,
containers, saved state, and launch agents. Nothing is removed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		platformInfo, err := platform.GetInfo()
		if err != nil {
			return fmt.Errorf("failed to get platform info: %w", err)
		}

		app, err := apps.Find(platformInfo, args[0])
		if err != nil {
			return err
		}

		engine, err := newDiscoveryEngine(cfg, platformInfo)
		if err != nil {
			return err
		}

		pr := progress.NewProgressReporter()
		live := ui.NewLiveProgress(pr)
		live.Start()

		start := time.Now()
		pr.UpdateDiscovery(&progress.DiscoveryProgress{
			Phase:     progress.PhaseDiscovering,
			App:       app.Name,
			StartTime: start,
		})

		artifacts := engine.Discover(app)

		var totalSize int64
		for _, a := range artifacts {
			totalSize += a.Size
		}
		pr.UpdateDiscovery(&progress.DiscoveryProgress{
			Phase:          progress.PhaseComplete,
			App:            app.Name,
			ArtifactsFound: len(artifacts),
			TotalSize:      totalSize,
			StartTime:      start,
		})
		live.Finish()

		format, err := reporter.ParseFormat(outputFmt)
		if err != nil {
			return err
		}

		if outputFile != "" {
			if err := reporter.SaveToFile(outputFile, format, func(r *reporter.Reporter) error {
				return r.ReportArtifacts(app, artifacts)
			}); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			fmt.Printf("Report saved to: %s\n", outputFile)
			return nil
		}

		return reporter.New(os.Stdout, format).ReportArtifacts(app, artifacts)
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <app>",
	Short: "Remove an application and its artifacts",
	Long: `Discovers the artifacts belonging to the named application and removes
them. Unprotected artifacts are selected automatically; artifacts holding
sandboxed container data need --include-protected.

By default everything is moved to the trash and can be restored. Use
--mode permanent to delete outright.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Override config with flags
		if cmd.Flags().Changed("mode") {
			cfg.Removal.Mode = removeMode
		}
		if cmd.Flags().Changed("dry-run") {
			cfg.Removal.DryRun = dryRun
		}

		mode, err := remover.ParseMode(cfg.Removal.Mode)
		if err != nil {
			return err
		}

		platformInfo, err := platform.GetInfo()
		if err != nil {
			return fmt.Errorf("failed to get platform info: %w", err)
		}

		app, err := apps.Find(platformInfo, args[0])
		if err != nil {
			return err
		}

		engine, err := newDiscoveryEngine(cfg, platformInfo)
		if err != nil {
			return err
		}

		fmt.Printf("Discovering artifacts for %s...\n\n", app.Name)
		artifacts := engine.Discover(app)

		if includeProtected {
			for i := range artifacts {
				artifacts[i].Selected = true
			}
		}

		request := &reporter.RemovalRequest{
			App:       app.Name,
			Artifacts: artifacts,
			Mode:      mode,
			DryRun:    cfg.Removal.DryRun,
		}
		selected := request.Selected()
		if len(selected) == 0 {
			fmt.Println("Nothing to remove.")
			return nil
		}

		if err := reporter.New(os.Stdout, reporter.FormatTable).ReportArtifacts(app, selected); err != nil {
			return fmt.Errorf("failed to list artifacts: %w", err)
		}

		if skipped := len(artifacts) - len(selected); skipped > 0 {
			fmt.Printf("\n%d protected artifacts skipped (use --include-protected to remove them)\n", skipped)
		}

		if !assumeYes && !cfg.Removal.DryRun {
			if protected := countProtected(selected); protected > 0 && cfg.Removal.ConfirmProtected {
				fmt.Printf("\n⚠️  %d of these hold sandboxed container data\n", protected)
			}
			fmt.Printf("\nRemove %d artifacts (%s)? (y/N): ",
				len(selected), utils.FormatBytes(request.SelectedSize()))
			var response string
			fmt.Scanln(&response)
			if response != "y" && response != "Y" {
				fmt.Println("Removal cancelled")
				return nil
			}
		}

		if cfg.Removal.DryRun {
			fmt.Println("\n[DRY RUN MODE] No files will be removed.")
		}

		engine := newRemovalEngine(cfg, platformInfo)

		pr := progress.NewProgressReporter()
		live := ui.NewLiveProgress(pr)
		live.Start()

		start := time.Now()
		var processedSize int64
		outcomes := engine.Remove(selected, mode, func(completed, total int) {
			processedSize += selected[completed-1].Size
			pr.UpdateRemoval(&progress.RemovalProgress{
				Phase:       progress.PhaseRemoving,
				CurrentPath: selected[completed-1].Path,
				Completed:   completed,
				Total:       total,
				FreedSize:   processedSize,
				StartTime:   start,
			})
		})
		live.Finish()

		if cfg.Verbose {
			for _, outcome := range outcomes {
				if outcome.Success {
					fmt.Printf("  removed %s\n", outcome.Path)
				} else {
					fmt.Printf("  %s\n", outcome.Err.UserMessage())
				}
			}
			fmt.Println()
		}

		format, err := reporter.ParseFormat(removeOutputFmt)
		if err != nil {
			return err
		}

		return reporter.New(os.Stdout, format).ReportRemoval(reporter.Summarize(request, outcomes))
	},
}

var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "Find artifacts whose application is no longer installed",
	Long: `Scans the library locations for artifacts whose owning application is not
installed anymore, grouped by identifier. Vendor-shared identifiers and
artifacts below the minimum size are ignored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cmd.Flags().Changed("min-size") {
			cfg.Scan.OrphanMinSize = minSize
		}

		platformInfo, err := platform.GetInfo()
		if err != nil {
			return fmt.Errorf("failed to get platform info: %w", err)
		}

		applications, err := apps.List(platformInfo)
		if err != nil {
			return fmt.Errorf("failed to list applications: %w", err)
		}

		engine, err := newDiscoveryEngine(cfg, platformInfo)
		if err != nil {
			return err
		}

		fmt.Println("Scanning for orphaned artifacts...")
		groups := engine.DiscoverOrphans(discovery.InstalledIndex(applications))

		if len(groups) == 0 {
			fmt.Println("\n✨ No orphaned artifacts found.")
			return nil
		}

		format, err := reporter.ParseFormat(outputFmt)
		if err != nil {
			return err
		}

		if outputFile != "" {
			if err := reporter.SaveToFile(outputFile, format, func(r *reporter.Reporter) error {
				return r.ReportOrphans(groups)
			}); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			fmt.Printf("Report saved to: %s\n", outputFile)
			return nil
		}

		return reporter.New(os.Stdout, format).ReportOrphans(groups)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		if _, err := os.Stat(cfgPath); err == nil {
			fmt.Printf("Config file already exists: %s\n", cfgPath)
			return nil
		}

		if err := os.MkdirAll(filepath.Dir(cfgPath), 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := os.WriteFile(cfgPath, []byte(config.GetExampleConfig()), 0644); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		fmt.Printf("Config file created: %s\n", cfgPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}

		fmt.Print(string(data))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		fmt.Println(cfgPath)
		return nil
	},
}

// newDiscoveryEngine applies the scan section of the config to a fresh
// discovery engine.
func newDiscoveryEngine(cfg *config.Config, platformInfo *platform.Info) (*discovery.Engine, error) {
	engine := discovery.NewEngine(platformInfo)
	engine.ExtraVendorPrefixes = cfg.Scan.VendorAllowlist
	engine.ExcludePatterns = cfg.Scan.ExcludePatterns
	if cfg.Scan.OrphanMinSize != "" {
		size, err := utils.ParseSize(cfg.Scan.OrphanMinSize)
		if err != nil {
			return nil, fmt.Errorf("invalid minimum size: %w", err)
		}
		engine.OrphanMinSize = size
	}
	return engine, nil
}

// newRemovalEngine wires the removal engine the same way the interactive
// interface does: classifier, trash bin, and admin session.
func newRemovalEngine(cfg *config.Config, platformInfo *platform.Info) *remover.Engine {
	var ttl time.Duration
	if cfg.Security.ProbeCacheTTL != "" {
		// Validated at config load time
		ttl, _ = time.ParseDuration(cfg.Security.ProbeCacheTTL)
	}

	probe := security.NewSIPProbe(nil, ttl)
	classifier := security.NewClassifier(platformInfo, probe)
	engine := remover.NewEngine(classifier, trash.NewBin(platformInfo), remover.NewAdminSession())
	engine.SetDryRun(cfg.Removal.DryRun)
	return engine
}

func countProtected(artifacts []discovery.CandidateArtifact) int {
	n := 0
	for _, a := range artifacts {
		if a.Protected {
			n++
		}
	}
	return n
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")

	// List command flags
	listCmd.Flags().StringVar(&outputFmt, "output", "table", "output format (table, json, yaml)")
	listCmd.Flags().StringVar(&outputFile, "file", "", "save report to file")

	// Scan command flags
	scanCmd.Flags().StringVar(&outputFmt, "output", "table", "output format (table, json, yaml, summary)")
	scanCmd.Flags().StringVar(&outputFile, "file", "", "save report to file")

	// Remove command flags
	removeCmd.Flags().StringVar(&removeMode, "mode", "trash", "removal mode (trash, permanent)")
	removeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be removed without removing anything")
	removeCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompts")
	removeCmd.Flags().BoolVar(&includeProtected, "include-protected", false, "also remove artifacts holding sandboxed container data")
	removeCmd.Flags().StringVar(&removeOutputFmt, "output", "summary", "output format (summary, table, json, yaml)")

	// Orphans command flags
	orphansCmd.Flags().StringVar(&minSize, "min-size", "", "ignore orphans smaller than this (e.g., 1KB, 10MB)")
	orphansCmd.Flags().StringVar(&outputFmt, "output", "table", "output format (table, json, yaml)")
	orphansCmd.Flags().StringVar(&outputFile, "file", "", "save report to file")

	// Config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)

	// Add commands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(orphansCmd)
	rootCmd.AddCommand(configCmd)
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		cfgPath, err := config.GetConfigPath()
		if err != nil {
			return nil, err
		}
		path = cfgPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}
