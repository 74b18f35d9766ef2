// Package platform resolves the OS-specific directory layout the rest of
// the tool works against.
package platform

import (
	"errors"
	"os/user"
	"runtime"
)

// Platform represents the operating system platform
type Platform string

const (
	MacOS   Platform = "darwin"
	Linux   Platform = "linux"
	Unknown Platform = "unknown"
)

// ErrUnsupportedPlatform is returned on platforms the tool has no
// directory layout for.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Info contains platform-specific information and paths
type Info struct {
	OS       Platform
	HomeDir  string
	Username string

	// ApplicationsDirs are the roots searched for installed application bundles.
	ApplicationsDirs []string

	// UserLibraryDir is the per-user tree where applications store their
	// preferences, caches, and support data.
	UserLibraryDir string

	// SystemLibraryDirs are the machine-wide equivalents of UserLibraryDir.
	SystemLibraryDirs []string

	// TrashDir is the per-user trash location.
	TrashDir string
}

// Detect returns the current platform
func Detect() Platform {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// GetInfo resolves the directory layout for the current platform and user.
func GetInfo() (*Info, error) {
	u, err := user.Current()
	if err != nil {
		return nil, err
	}

	switch Detect() {
	case MacOS:
		return getMacOSInfo(u.HomeDir, u.Username), nil
	case Linux:
		return getLinuxInfo(u.HomeDir, u.Username), nil
	default:
		return nil, ErrUnsupportedPlatform
	}
}
