package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fenilsonani/appsweep/internal/apps"
	"github.com/fenilsonani/appsweep/internal/match"
	"github.com/fenilsonani/appsweep/internal/platform"
)

// DefaultOrphanMinSize is the floor below which orphan candidates are
// considered noise and dropped.
const DefaultOrphanMinSize int64 = 1 << 10

// Engine scans the platform's library locations for application artifacts.
// It only ever reads the filesystem; eligibility for removal is decided
// elsewhere.
type Engine struct {
	rules []rule

	// OrphanMinSize drops orphan candidates smaller than this many bytes.
	OrphanMinSize int64
	// ExtraVendorPrefixes extends the built-in identifier allowlist the
	// orphan scan ignores.
	ExtraVendorPrefixes []string
	// ExcludePatterns are glob patterns (or literal substrings) for entries
	// both scans leave alone.
	ExcludePatterns []string
}

// NewEngine creates an Engine with the platform's rule table and default
// orphan-scan settings.
func NewEngine(info *platform.Info) *Engine {
	return &Engine{
		rules:         rulesFor(info),
		OrphanMinSize: DefaultOrphanMinSize,
	}
}

// Discover returns the artifacts belonging to app, ordered: the application
// bundle itself first, then matches in rule order, then directory-listing
// order within each rule. The ordering is deterministic for a given
// filesystem state. Rules are evaluated concurrently; a root that cannot be
// listed contributes zero matches.
func (e *Engine) Discover(app apps.Application) []CandidateArtifact {
	perRule := make([][]CandidateArtifact, len(e.rules))

	var wg sync.WaitGroup
	for i, r := range e.rules {
		wg.Add(1)
		go func(i int, r rule) {
			defer wg.Done()
			perRule[i] = e.scanRule(r, app)
		}(i, r)
	}
	wg.Wait()

	artifacts := []CandidateArtifact{bundleArtifact(app)}
	for _, batch := range perRule {
		artifacts = append(artifacts, batch...)
	}
	return artifacts
}

// scanRule lists the rule's root and returns the entries whose names match
// the application. Symlinked entries are skipped entirely so a crafted link
// can neither inflate sizes nor smuggle an outside path into the results.
func (e *Engine) scanRule(r rule, app apps.Application) []CandidateArtifact {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil
	}

	var found []CandidateArtifact
	for _, entry := range entries {
		if entry.Type()&fs.ModeSymlink != 0 {
			continue
		}
		if !match.Matches(entry.Name(), app.Name, app.BundleID, r.mode) {
			continue
		}

		path := filepath.Join(r.root, entry.Name())
		if e.excluded(path) {
			continue
		}
		found = append(found, CandidateArtifact{
			Path:      path,
			Category:  r.category,
			Size:      entrySize(path, entry),
			Protected: r.protected,
			Selected:  !r.protected && !r.system,
		})
	}
	return found
}

// excluded reports whether a configured exclude pattern covers path.
// Patterns are filepath.Match globs tried against the base name and the
// full path; a pattern that is a plain substring of the path also excludes.
func (e *Engine) excluded(path string) bool {
	for _, pattern := range e.ExcludePatterns {
		if pattern == "" {
			continue
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

func bundleArtifact(app apps.Application) CandidateArtifact {
	return CandidateArtifact{
		Path:     filepath.Clean(app.BundlePath),
		Category: CategoryApplication,
		Size:     DirSize(app.BundlePath),
		Selected: true,
	}
}
