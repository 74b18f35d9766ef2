package discovery

import (
	"path/filepath"

	"github.com/fenilsonani/appsweep/internal/match"
	"github.com/fenilsonani/appsweep/internal/platform"
)

// rule describes one library location to scan: its root directory, the
// category its matches belong to, and the matching mode for entry names.
// Protected rules produce artifacts that need individual confirmation;
// system rules cover machine-wide locations whose matches are never
// pre-selected.
type rule struct {
	root      string
	category  Category
	mode      match.Mode
	protected bool
	system    bool
}

// rulesFor builds the fixed, ordered rule table for the platform. Order is
// part of the discovery contract: per-user locations first, then machine
// locations, stable across runs.
func rulesFor(info *platform.Info) []rule {
	switch info.OS {
	case platform.MacOS:
		return macOSRules(info)
	case platform.Linux:
		return linuxRules(info)
	default:
		return nil
	}
}

func macOSRules(info *platform.Info) []rule {
	lib := info.UserLibraryDir

	rules := []rule{
		{root: filepath.Join(lib, "Preferences"), category: CategoryPreferences, mode: match.ModeIdentifierFile},
		{root: filepath.Join(lib, "Application Support"), category: CategoryAppSupport, mode: match.ModeDirectoryName},
		{root: filepath.Join(lib, "Caches"), category: CategoryCaches, mode: match.ModeDirectoryName},
		{root: filepath.Join(lib, "Logs"), category: CategoryLogs, mode: match.ModeDirectoryName},
		{root: filepath.Join(lib, "Containers"), category: CategoryContainers, mode: match.ModeIdentifierFile, protected: true},
		{root: filepath.Join(lib, "Group Containers"), category: CategoryContainers, mode: match.ModeIdentifierFile, protected: true},
		{root: filepath.Join(lib, "Saved Application State"), category: CategorySavedState, mode: match.ModeIdentifierFile},
		{root: filepath.Join(lib, "WebKit"), category: CategoryWebStorage, mode: match.ModeIdentifierFile},
		{root: filepath.Join(lib, "HTTPStorages"), category: CategoryWebStorage, mode: match.ModeIdentifierFile},
		{root: filepath.Join(lib, "Cookies"), category: CategoryCookies, mode: match.ModeIdentifierFile},
		{root: filepath.Join(lib, "LaunchAgents"), category: CategoryLaunchAgents, mode: match.ModeIdentifierFile},
	}

	for _, sysLib := range info.SystemLibraryDirs {
		rules = append(rules,
			rule{root: filepath.Join(sysLib, "LaunchAgents"), category: CategoryLaunchAgents, mode: match.ModeIdentifierFile, system: true},
			rule{root: filepath.Join(sysLib, "LaunchDaemons"), category: CategoryLaunchDaemons, mode: match.ModeIdentifierFile, system: true},
			rule{root: filepath.Join(sysLib, "PrivilegedHelperTools"), category: CategoryOther, mode: match.ModeIdentifierFile, system: true},
			rule{root: filepath.Join(sysLib, "Preferences"), category: CategoryPreferences, mode: match.ModeIdentifierFile, system: true},
			rule{root: filepath.Join(sysLib, "Application Support"), category: CategoryAppSupport, mode: match.ModeDirectoryName, system: true},
			rule{root: filepath.Join(sysLib, "Caches"), category: CategoryCaches, mode: match.ModeDirectoryName, system: true},
			rule{root: filepath.Join(sysLib, "Logs"), category: CategoryLogs, mode: match.ModeDirectoryName, system: true},
		)
	}

	return rules
}

func linuxRules(info *platform.Info) []rule {
	home := info.HomeDir

	rules := []rule{
		{root: filepath.Join(home, ".config"), category: CategoryPreferences, mode: match.ModeDirectoryName},
		{root: filepath.Join(home, ".cache"), category: CategoryCaches, mode: match.ModeDirectoryName},
		{root: filepath.Join(home, ".local", "state"), category: CategorySavedState, mode: match.ModeDirectoryName},
		{root: info.UserLibraryDir, category: CategoryAppSupport, mode: match.ModeDirectoryName},
	}

	for _, sysLib := range info.SystemLibraryDirs {
		rules = append(rules, rule{root: sysLib, category: CategoryAppSupport, mode: match.ModeDirectoryName, system: true})
	}

	return rules
}
