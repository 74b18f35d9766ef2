package platform

import "path/filepath"

// getMacOSInfo returns platform-specific information for macOS
func getMacOSInfo(homeDir, username string) *Info {
	return &Info{
		OS:       MacOS,
		HomeDir:  homeDir,
		Username: username,
		ApplicationsDirs: []string{
			"/Applications",
			filepath.Join(homeDir, "Applications"),
		},
		UserLibraryDir: filepath.Join(homeDir, "Library"),
		SystemLibraryDirs: []string{
			"/Library",
		},
		TrashDir: filepath.Join(homeDir, ".Trash"),
	}
}
