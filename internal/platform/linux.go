package platform

import (
	"os"
	"path/filepath"
)

// getLinuxInfo returns platform-specific information for Linux
func getLinuxInfo(homeDir, username string) *Info {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local/share")
	}

	return &Info{
		OS:       Linux,
		HomeDir:  homeDir,
		Username: username,
		// Linux has no bundle directories; app enumeration yields nothing here.
		ApplicationsDirs: []string{},
		UserLibraryDir:   dataDir,
		SystemLibraryDirs: []string{
			"/usr/share",
			"/usr/local/share",
		},
		TrashDir: filepath.Join(dataDir, "Trash"),
	}
}
