package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fenilsonani/appsweep/internal/apps"
)

// minPlainTokenLen is the shortest dotless filename still treated as a
// plausible identifier. Shorter names ("npm", "zsh") are too generic to
// attribute to any one application.
const minPlainTokenLen = 8

// orphanSuffixes are filename wrappers stripped before identifier
// comparison, lowercase.
var orphanSuffixes = []string{
	".plist",
	".savedstate",
	".binarycookies",
}

// groupMarkers are sandbox container prefixes stripped so a group container
// groups under its owning application's identifier.
var groupMarkers = []string{
	"group.",
	"systemgroup.",
}

// builtinVendorPrefixes is the identifier allowlist the orphan scan never
// reports: the OS vendor, publishers whose shared runtimes outlive any one
// application, and shared-store names. All lowercase; dotted entries match
// themselves and any dotted extension.
var builtinVendorPrefixes = []string{
	"com.apple",
	"apple",
	"com.microsoft",
	"com.google",
	"com.adobe",
	"org.mozilla",
	"com.oracle",
	"net.java",
	"com.intel",
	"com.nvidia",
	"org.python",
	"org.gnu",
	"com.docker",
	"com.jetbrains",
	"com.github",
	"com.dropbox",
	"com.vmware",
	"org.openbsd",
	"temporaryitems",
	"cloudkit",
}

// InstalledIndex builds the lookup DiscoverOrphans consumes from the
// installed-application list. Both bundle identifiers and display names are
// indexed, lower-cased.
func InstalledIndex(applications []apps.Application) map[string]bool {
	index := make(map[string]bool, 2*len(applications))
	for _, app := range applications {
		if app.BundleID != "" {
			index[strings.ToLower(app.BundleID)] = true
		}
		if app.Name != "" {
			index[strings.ToLower(app.Name)] = true
		}
	}
	return index
}

// DiscoverOrphans scans every rule root for artifacts whose identifier does
// not belong to any installed application. Keys of installed must be
// lower-cased identifiers. Survivors are grouped by identifier and sorted
// by descending total size.
func (e *Engine) DiscoverOrphans(installed map[string]bool) []OrphanGroup {
	groups := make(map[string]*OrphanGroup)
	var order []string

	for _, r := range e.rules {
		entries, err := os.ReadDir(r.root)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.Type()&fs.ModeSymlink != 0 {
				continue
			}

			id, ok := extractIdentifier(entry.Name())
			if !ok {
				continue
			}
			key := strings.ToLower(id)
			if installed[key] || e.vendorAllowlisted(key) {
				continue
			}

			path := filepath.Join(r.root, entry.Name())
			if e.excluded(path) {
				continue
			}
			size := entrySize(path, entry)
			if size < e.OrphanMinSize {
				continue
			}

			artifact := CandidateArtifact{
				Path:       path,
				Category:   r.category,
				Size:       size,
				Protected:  r.protected,
				Selected:   !r.protected && !r.system,
				LastAccess: lastAccess(path),
			}

			g, seen := groups[key]
			if !seen {
				g = &OrphanGroup{Identifier: id}
				groups[key] = g
				order = append(order, key)
			}
			g.Artifacts = append(g.Artifacts, artifact)
			g.TotalSize += artifact.Size
			if artifact.LastAccess.After(g.LastAccess) {
				g.LastAccess = artifact.LastAccess
			}
		}
	}

	out := make([]OrphanGroup, 0, len(groups))
	for _, key := range order {
		out = append(out, *groups[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalSize != out[j].TotalSize {
			return out[i].TotalSize > out[j].TotalSize
		}
		return out[i].Identifier < out[j].Identifier
	})
	return out
}

// extractIdentifier derives the owning identifier from an artifact
// filename. It strips container markers and known wrapper suffixes, then
// requires either a dotted reverse-DNS shape or a long plain token.
func extractIdentifier(name string) (string, bool) {
	id := strings.TrimSpace(name)

	for _, marker := range groupMarkers {
		if len(id) > len(marker) && strings.EqualFold(id[:len(marker)], marker) {
			id = id[len(marker):]
			break
		}
	}

	for stripped := true; stripped; {
		stripped = false
		lower := strings.ToLower(id)
		for _, suffix := range orphanSuffixes {
			if strings.HasSuffix(lower, suffix) && len(id) > len(suffix) {
				id = id[:len(id)-len(suffix)]
				stripped = true
				break
			}
		}
	}

	if id == "" {
		return "", false
	}

	if strings.Contains(id, ".") {
		for _, seg := range strings.Split(id, ".") {
			if seg == "" {
				return "", false
			}
		}
		return id, true
	}

	if len(id) >= minPlainTokenLen {
		return id, true
	}
	return "", false
}

func (e *Engine) vendorAllowlisted(id string) bool {
	if prefixMatch(id, builtinVendorPrefixes) {
		return true
	}
	for _, p := range e.ExtraVendorPrefixes {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" && (id == p || strings.HasPrefix(id, p+".")) {
			return true
		}
	}
	return false
}

func prefixMatch(id string, prefixes []string) bool {
	for _, p := range prefixes {
		if id == p || strings.HasPrefix(id, p+".") {
			return true
		}
	}
	return false
}
