// Package testutil provides test helpers and fixtures for appsweep tests.
// All file operations use t.TempDir() for safe, isolated testing.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fenilsonani/appsweep/internal/platform"
)

// TestFixture holds a fake user home with the library layout the discovery
// rules scan, plus a fake applications directory.
type TestFixture struct {
	T       *testing.T
	HomeDir string // fake home, symlink-resolved (auto-cleaned)

	AppsDir    string // fake /Applications
	LibraryDir string // HomeDir/Library

	PreferencesDir     string
	AppSupportDir      string
	CachesDir          string
	LogsDir            string
	ContainersDir      string
	GroupContainersDir string
	SavedStateDir      string
	WebKitDir          string
	HTTPStoragesDir    string
	CookiesDir         string
	LaunchAgentsDir    string
}

// NewFixture creates a fixture with the standard library tree
func NewFixture(t *testing.T) *TestFixture {
	t.Helper()

	root := t.TempDir()
	// Temp dirs sit behind symlinks on some systems; resolve once so path
	// comparisons in the code under test are stable.
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatalf("failed to resolve temp dir %s: %v", root, err)
	}

	home := filepath.Join(resolved, "home")
	library := filepath.Join(home, "Library")

	f := &TestFixture{
		T:                  t,
		HomeDir:            home,
		AppsDir:            filepath.Join(resolved, "Applications"),
		LibraryDir:         library,
		PreferencesDir:     filepath.Join(library, "Preferences"),
		AppSupportDir:      filepath.Join(library, "Application Support"),
		CachesDir:          filepath.Join(library, "Caches"),
		LogsDir:            filepath.Join(library, "Logs"),
		ContainersDir:      filepath.Join(library, "Containers"),
		GroupContainersDir: filepath.Join(library, "Group Containers"),
		SavedStateDir:      filepath.Join(library, "Saved Application State"),
		WebKitDir:          filepath.Join(library, "WebKit"),
		HTTPStoragesDir:    filepath.Join(library, "HTTPStorages"),
		CookiesDir:         filepath.Join(library, "Cookies"),
		LaunchAgentsDir:    filepath.Join(library, "LaunchAgents"),
	}

	dirs := []string{
		f.AppsDir,
		f.PreferencesDir,
		f.AppSupportDir,
		f.CachesDir,
		f.LogsDir,
		f.ContainersDir,
		f.GroupContainersDir,
		f.SavedStateDir,
		f.WebKitDir,
		f.HTTPStoragesDir,
		f.CookiesDir,
		f.LaunchAgentsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	return f
}

// PlatformInfo returns a darwin-shaped platform.Info rooted at the fixture,
// so discovery and classification behave identically on any host OS.
func (f *TestFixture) PlatformInfo() *platform.Info {
	return &platform.Info{
		OS:                platform.MacOS,
		HomeDir:           f.HomeDir,
		Username:          "fixture",
		ApplicationsDirs:  []string{f.AppsDir},
		UserLibraryDir:    f.LibraryDir,
		SystemLibraryDirs: []string{},
		TrashDir:          filepath.Join(f.HomeDir, ".Trash"),
	}
}

// =============================================================================
// File Creation Helpers
// =============================================================================

// CreateFile creates a file with specified content and returns its path
func (f *TestFixture) CreateFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := f.Path(relPath)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateFileSized creates a file with the given number of zero bytes
func (f *TestFixture) CreateFileSized(relPath string, size int) string {
	f.T.Helper()
	return f.CreateFile(relPath, make([]byte, size))
}

// CreateFileWithAge creates a file and pushes both timestamps into the past
func (f *TestFixture) CreateFileWithAge(relPath string, content []byte, age time.Duration) string {
	f.T.Helper()

	fullPath := f.CreateFile(relPath, content)
	oldTime := time.Now().Add(-age)

	if err := os.Chtimes(fullPath, oldTime, oldTime); err != nil {
		f.T.Fatalf("failed to set file time for %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateDir creates a directory and returns its path
func (f *TestFixture) CreateDir(relPath string) string {
	f.T.Helper()

	fullPath := f.Path(relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}

	return fullPath
}

// =============================================================================
// Symlink Helpers
// =============================================================================

// CreateSymlink creates a symbolic link
func (f *TestFixture) CreateSymlink(target, linkPath string) string {
	f.T.Helper()

	fullLinkPath := f.Path(linkPath)
	dir := filepath.Dir(fullLinkPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.Symlink(target, fullLinkPath); err != nil {
		f.T.Fatalf("failed to create symlink %s -> %s: %v", fullLinkPath, target, err)
	}

	return fullLinkPath
}

// CreateBrokenSymlink creates a symlink pointing to a non-existent target
func (f *TestFixture) CreateBrokenSymlink(linkPath string) string {
	f.T.Helper()
	return f.CreateSymlink("/nonexistent/target/appsweep-test", linkPath)
}

// =============================================================================
// Bundle Helpers
// =============================================================================

// CreateAppBundle creates a minimal application bundle under AppsDir and
// returns its path.
func (f *TestFixture) CreateAppBundle(name, identifier string) string {
	f.T.Helper()

	bundle := filepath.Join(f.AppsDir, name+".app")
	contents := filepath.Join(bundle, "Contents")

	if err := os.MkdirAll(filepath.Join(contents, "MacOS"), 0755); err != nil {
		f.T.Fatalf("failed to create bundle %s: %v", bundle, err)
	}

	plist := InfoPlist(name, identifier)
	if err := os.WriteFile(filepath.Join(contents, "Info.plist"), plist, 0644); err != nil {
		f.T.Fatalf("failed to write Info.plist for %s: %v", bundle, err)
	}

	binary := filepath.Join(contents, "MacOS", name)
	if err := os.WriteFile(binary, []byte("#!/bin/sh\n"), 0755); err != nil {
		f.T.Fatalf("failed to write bundle binary for %s: %v", bundle, err)
	}

	return bundle
}

// InfoPlist renders a minimal XML property list for a bundle. An empty
// identifier omits the CFBundleIdentifier key.
func InfoPlist(name, identifier string) []byte {
	idEntry := ""
	if identifier != "" {
		idEntry = fmt.Sprintf("\t<key>CFBundleIdentifier</key>\n\t<string>%s</string>\n", identifier)
	}

	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleName</key>
	<string>%s</string>
%s	<key>CFBundleShortVersionString</key>
	<string>1.2.3</string>
</dict>
</plist>
`, name, idEntry))
}

// =============================================================================
// Path and Assertion Helpers
// =============================================================================

// Path returns the full path for a relative path within the fixture
func (f *TestFixture) Path(relPath string) string {
	if filepath.IsAbs(relPath) {
		return relPath
	}
	return filepath.Join(f.HomeDir, relPath)
}

// FileExists checks if a path exists
func (f *TestFixture) FileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// AssertFileExists fails the test if the path doesn't exist
func (f *TestFixture) AssertFileExists(path string) {
	f.T.Helper()
	if !f.FileExists(path) {
		f.T.Errorf("expected file to exist: %s", path)
	}
}

// AssertFileNotExists fails the test if the path exists
func (f *TestFixture) AssertFileNotExists(path string) {
	f.T.Helper()
	if f.FileExists(path) {
		f.T.Errorf("expected file to not exist: %s", path)
	}
}

// IsRoot returns true if running as root/admin
func IsRoot() bool {
	return os.Geteuid() == 0
}

// SkipIfRoot skips the test if running as root
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if IsRoot() {
		t.Skip("skipping test when running as root")
	}
}
