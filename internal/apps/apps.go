// Package apps enumerates installed application bundles and extracts their
// identity from bundle metadata.
package apps

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"howett.net/plist"

	"github.com/fenilsonani/appsweep/internal/platform"
)

// Application identifies one installed application bundle. Values are
// immutable once produced by List or FromBundle.
type Application struct {
	Name       string
	BundleID   string
	Version    string
	BundlePath string
}

// bundleInfo mirrors the Info.plist keys we read.
type bundleInfo struct {
	CFBundleName               string `plist:"CFBundleName"`
	CFBundleDisplayName        string `plist:"CFBundleDisplayName"`
	CFBundleIdentifier         string `plist:"CFBundleIdentifier"`
	CFBundleShortVersionString string `plist:"CFBundleShortVersionString"`
}

// List returns the applications found in the platform's application
// directories, sorted by name. Bundles without a readable identifier are
// skipped; a missing applications directory is not an error.
func List(info *platform.Info) ([]Application, error) {
	var apps []Application

	for _, dir := range info.ApplicationsDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.Type()&fs.ModeSymlink != 0 {
				continue
			}
			if !entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".app") {
				continue
			}

			app, err := FromBundle(filepath.Join(dir, entry.Name()))
			if err != nil {
				continue
			}
			apps = append(apps, app)
		}
	}

	sort.Slice(apps, func(i, j int) bool {
		ni, nj := strings.ToLower(apps[i].Name), strings.ToLower(apps[j].Name)
		if ni != nj {
			return ni < nj
		}
		return apps[i].BundlePath < apps[j].BundlePath
	})

	return apps, nil
}

// FromBundle reads the identity of a single application bundle from its
// Info.plist. Bundles without a CFBundleIdentifier are rejected since every
// downstream match depends on it.
func FromBundle(bundlePath string) (Application, error) {
	plistPath := filepath.Join(bundlePath, "Contents", "Info.plist")

	f, err := os.Open(plistPath)
	if err != nil {
		return Application{}, fmt.Errorf("failed to open bundle metadata: %w", err)
	}
	defer f.Close()

	var info bundleInfo
	if err := plist.NewDecoder(f).Decode(&info); err != nil {
		return Application{}, fmt.Errorf("failed to parse bundle metadata for %s: %w", bundlePath, err)
	}

	if info.CFBundleIdentifier == "" {
		return Application{}, fmt.Errorf("bundle %s has no identifier", bundlePath)
	}

	name := info.CFBundleDisplayName
	if name == "" {
		name = info.CFBundleName
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(bundlePath), filepath.Ext(bundlePath))
	}

	return Application{
		Name:       name,
		BundleID:   info.CFBundleIdentifier,
		Version:    info.CFBundleShortVersionString,
		BundlePath: filepath.Clean(bundlePath),
	}, nil
}

// Find resolves a user-supplied query to an installed application. The query
// may be a bundle path, a bundle identifier, or a case-insensitive name.
func Find(info *platform.Info, query string) (Application, error) {
	if strings.HasSuffix(strings.ToLower(query), ".app") {
		if _, err := os.Stat(query); err == nil {
			return FromBundle(query)
		}
	}

	apps, err := List(info)
	if err != nil {
		return Application{}, err
	}

	lower := strings.ToLower(query)
	for _, app := range apps {
		if strings.ToLower(app.BundleID) == lower || strings.ToLower(app.Name) == lower {
			return app, nil
		}
	}

	return Application{}, fmt.Errorf("no installed application matches %q", query)
}
