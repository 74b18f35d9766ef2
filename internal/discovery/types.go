// Package discovery finds the filesystem artifacts an application leaves
// behind: its bundle, preferences, caches, logs, containers, and launchd
// entries, plus orphaned artifacts whose owning application is gone.
package discovery

import "time"

// Category names the kind of library location an artifact was found in.
type Category string

const (
	CategoryApplication   Category = "application"
	CategoryPreferences   Category = "preferences"
	CategoryAppSupport    Category = "application_support"
	CategoryCaches        Category = "caches"
	CategoryLogs          Category = "logs"
	CategoryContainers    Category = "containers"
	CategorySavedState    Category = "saved_state"
	CategoryWebStorage    Category = "web_storage"
	CategoryCookies       Category = "cookies"
	CategoryLaunchAgents  Category = "launch_agents"
	CategoryLaunchDaemons Category = "launch_daemons"
	CategoryOther         Category = "other"
)

// AllCategories lists every category in display order: the bundle first,
// then user-level data, then machine-level entries.
var AllCategories = []Category{
	CategoryApplication,
	CategoryPreferences,
	CategoryAppSupport,
	CategoryCaches,
	CategoryLogs,
	CategoryContainers,
	CategorySavedState,
	CategoryWebStorage,
	CategoryCookies,
	CategoryLaunchAgents,
	CategoryLaunchDaemons,
	CategoryOther,
}

// DisplayName returns the human-readable form used in listings.
func (c Category) DisplayName() string {
	switch c {
	case CategoryApplication:
		return "Application"
	case CategoryPreferences:
		return "Preferences"
	case CategoryAppSupport:
		return "Application Support"
	case CategoryCaches:
		return "Caches"
	case CategoryLogs:
		return "Logs"
	case CategoryContainers:
		return "Containers"
	case CategorySavedState:
		return "Saved State"
	case CategoryWebStorage:
		return "Web Storage"
	case CategoryCookies:
		return "Cookies"
	case CategoryLaunchAgents:
		return "Launch Agents"
	case CategoryLaunchDaemons:
		return "Launch Daemons"
	default:
		return "Other"
	}
}

// CandidateArtifact is one path discovered as belonging to an application.
// Protected artifacts (sandboxed containers) need individual confirmation
// and are excluded from bulk selection. Instances are built fresh on every
// scan; identity is the resolved path.
type CandidateArtifact struct {
	Path       string
	Category   Category
	Size       int64
	Protected  bool
	Selected   bool
	LastAccess time.Time // set by the orphan scan only
}

// OrphanGroup collects the artifacts sharing one identifier whose owning
// application is no longer installed.
type OrphanGroup struct {
	Identifier string
	Artifacts  []CandidateArtifact
	TotalSize  int64
	LastAccess time.Time
}
