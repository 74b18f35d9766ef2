package security

import (
	"path/filepath"
	"strings"

	"github.com/fenilsonani/appsweep/internal/platform"
)

// IntegrityOracle reports whether the operating system's integrity
// protection mechanism is currently active. Implementations cache the
// answer; Invalidate forces a fresh probe on the next call.
type IntegrityOracle interface {
	Enabled() bool
	Invalidate()
}

// Classifier decides whether a path is eligible for removal and what it
// takes to remove it. All methods are read-only with respect to the
// filesystem apart from symlink resolution.
type Classifier struct {
	homeDir string
	oracle  IntegrityOracle

	allowedRoots    []string
	blockedPaths    []string
	elevatedRoots   []string
	integrityRoots  []string
	integrityExempt []string
	symlinkTolerant []string
}

// Decision is the classification of a single path, recomputed per operation.
type Decision struct {
	Path               string
	WithinAllowedRoots bool
	Blocked            bool
	RequiresAdmin      bool
	IntegrityProtected bool
}

// Removable reports whether the path may be removed at all. Blocked and
// integrity-protected paths are never removable; RequiresAdmin only selects
// the removal strategy.
func (d Decision) Removable() bool {
	return d.WithinAllowedRoots && !d.Blocked && !d.IntegrityProtected
}

// NewClassifier creates a Classifier for the given platform. The oracle is
// injected so protection status is process-wide shared state with explicit
// ownership, not a hidden global.
func NewClassifier(info *platform.Info, oracle IntegrityOracle) *Classifier {
	c := &Classifier{
		homeDir: info.HomeDir,
		oracle:  oracle,
		// SECURITY: fixed list regardless of platform. Elevation decides the
		// removal strategy, so err toward requiring it.
		elevatedRoots: []string{
			"/Library", "/System", "/usr", "/bin", "/sbin", "/private",
		},
		integrityRoots: []string{
			"/System", "/usr", "/bin", "/sbin",
		},
		integrityExempt: []string{
			"/usr/local",
			"/System/Volumes/Data",
		},
	}

	c.allowedRoots = allowedRootsFor(info)
	c.blockedPaths = blockedPathsFor(info)
	c.symlinkTolerant = []string{
		"/private", "/tmp", "/var", "/etc",
		info.HomeDir,
	}

	// Roots are compared against resolved paths, so store them resolved.
	for i, root := range c.allowedRoots {
		c.allowedRoots[i] = resolveBestEffort(root)
	}
	for i, p := range c.blockedPaths {
		c.blockedPaths[i] = resolveBestEffort(p)
	}

	return c
}

// allowedRootsFor returns the fixed whitelist of directories artifacts may
// live under: the per-user library subtrees, the application directories,
// and the machine-wide library locations the discovery rules cover.
func allowedRootsFor(info *platform.Info) []string {
	var roots []string

	switch info.OS {
	case platform.MacOS:
		for _, sub := range []string{
			"Preferences",
			"Application Support",
			"Caches",
			"Logs",
			"Containers",
			"Group Containers",
			"Saved Application State",
			"WebKit",
			"HTTPStorages",
			"Cookies",
			"LaunchAgents",
		} {
			roots = append(roots, filepath.Join(info.UserLibraryDir, sub))
		}
		for _, lib := range info.SystemLibraryDirs {
			roots = append(roots,
				filepath.Join(lib, "LaunchAgents"),
				filepath.Join(lib, "LaunchDaemons"),
				filepath.Join(lib, "PrivilegedHelperTools"),
				filepath.Join(lib, "Preferences"),
				filepath.Join(lib, "Application Support"),
				filepath.Join(lib, "Caches"),
				filepath.Join(lib, "Logs"),
			)
		}
	case platform.Linux:
		roots = append(roots,
			filepath.Join(info.HomeDir, ".config"),
			filepath.Join(info.HomeDir, ".cache"),
			filepath.Join(info.HomeDir, ".local/state"),
			info.UserLibraryDir,
		)
		roots = append(roots, info.SystemLibraryDirs...)
	}

	roots = append(roots, info.ApplicationsDirs...)
	return roots
}

// blockedPathsFor returns paths that must never be removed even though they
// sit inside allowed roots: this tool's own state, and per-user stores whose
// names collide easily with application search terms.
func blockedPathsFor(info *platform.Info) []string {
	blocked := []string{
		filepath.Join(info.HomeDir, ".config", "appsweep"),
	}

	switch info.OS {
	case platform.MacOS:
		blocked = append(blocked,
			filepath.Join(info.UserLibraryDir, "Preferences", "com.fenilsonani.appsweep.plist"),
			filepath.Join(info.UserLibraryDir, "Application Support", "appsweep"),
			filepath.Join(info.UserLibraryDir, "Application Support", "CrashReporter"),
			filepath.Join(info.UserLibraryDir, "Application Support", "AddressBook"),
		)
	case platform.Linux:
		blocked = append(blocked,
			filepath.Join(info.UserLibraryDir, "appsweep"),
		)
	}

	return blocked
}

// WithinAllowedRoots reports whether the fully resolved form of path falls
// under one of the whitelisted artifact roots.
func (c *Classifier) WithinAllowedRoots(path string) bool {
	return underAny(resolveBestEffort(path), c.allowedRoots)
}

// ExplicitlyBlocked reports whether path is on the always-protected list.
// Blocking takes precedence over allow-listing, so both the literal and the
// resolved form are checked.
func (c *Classifier) ExplicitlyBlocked(path string) bool {
	if underAny(filepath.Clean(path), c.blockedPaths) {
		return true
	}
	return underAny(resolveBestEffort(path), c.blockedPaths)
}

// RequiresElevation reports whether removing the path needs administrator
// privileges, judged by its resolved location under a system-owned root.
// The user's own home subtree never requires elevation even when the home
// itself resolves under one of those roots.
func (c *Classifier) RequiresElevation(path string) bool {
	resolved := resolveBestEffort(path)
	if underAny(resolved, []string{c.homeDir}) {
		return false
	}
	return underAny(resolved, c.elevatedRoots)
}

// IntegrityProtected reports whether the path sits under an
// OS-integrity-protected root (minus the local-override exemptions) while
// the protection mechanism is active. When the oracle cannot tell,
// protection is assumed on.
func (c *Classifier) IntegrityProtected(path string) bool {
	resolved := resolveBestEffort(path)

	if !underAny(resolved, c.integrityRoots) {
		return false
	}
	if underAny(resolved, c.integrityExempt) {
		return false
	}
	if c.oracle == nil {
		return true
	}
	return c.oracle.Enabled()
}

// WithinSymlinkTolerantRoots reports whether path falls inside the narrow
// subset of locations where symlinked prefixes are expected (the /private
// aliases and the user's home subtree).
func (c *Classifier) WithinSymlinkTolerantRoots(path string) bool {
	return underAny(filepath.Clean(path), c.symlinkTolerant)
}

// ClassifyForRemoval computes the composite eligibility decision for a path.
func (c *Classifier) ClassifyForRemoval(path string) Decision {
	resolved := resolveBestEffort(path)

	return Decision{
		Path:               resolved,
		WithinAllowedRoots: underAny(resolved, c.allowedRoots),
		Blocked:            c.ExplicitlyBlocked(path),
		RequiresAdmin:      c.RequiresElevation(path),
		IntegrityProtected: c.IntegrityProtected(path),
	}
}

// underAny reports whether path equals one of the roots or sits below one.
func underAny(path string, roots []string) bool {
	for _, root := range roots {
		if root == "" {
			continue
		}
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// resolveBestEffort resolves symlinks where possible and falls back to the
// lexically cleaned path for targets that do not exist yet.
func resolveBestEffort(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Clean(resolved)
}
