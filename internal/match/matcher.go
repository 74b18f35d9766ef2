package match

import "strings"

// Mode selects how a directory entry's name is compared against an application.
type Mode int

const (
	// ModeDirectoryName is used for broad roots (Application Support, Caches,
	// Logs) whose entries are folders named after the app or its vendor.
	ModeDirectoryName Mode = iota

	// ModeIdentifierFile is used for flat file lists (Preferences, Containers,
	// LaunchAgents) whose entries are named by bundle identifier.
	ModeIdentifierFile
)

// affixSeparators are the delimiters recognized at a match boundary.
var affixSeparators = []string{".", "-", "_"}

// Matches reports whether a directory entry name belongs to the application
// described by its display name and bundle identifier.
//
// In ModeDirectoryName both the name and the identifier are tried as search
// terms. In ModeIdentifierFile only the identifier is consulted: display
// names are too short and too generic to match safely against flat file
// lists like Preferences.
func Matches(candidate, appName, identifier string, mode Mode) bool {
	switch mode {
	case ModeDirectoryName:
		return matchesTerm(candidate, appName, mode) || matchesTerm(candidate, identifier, mode)
	case ModeIdentifierFile:
		return matchesTerm(candidate, identifier, mode)
	}
	return false
}

// matchesTerm applies the mode's matching rules for a single search term.
// Matching is case-insensitive. Empty terms never match.
func matchesTerm(candidate, term string, mode Mode) bool {
	name := strings.ToLower(candidate)
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}

	switch mode {
	case ModeDirectoryName:
		if name == term || name == term+".app" {
			return true
		}
		if hasAffix(name, term) {
			return true
		}
		// Identifier-shaped terms are specific enough to substring-match.
		// Plain names are not: "Adobe" must not claim "Adobe Shared".
		if strings.Contains(term, ".") && strings.Contains(name, term) {
			return true
		}

	case ModeIdentifierFile:
		if name == term {
			return true
		}
		// Real identifiers grow suffixes (".Helper", ".savedState"), so a
		// dotted term may match as a substring. Free-text terms may not.
		if strings.Contains(term, ".") && strings.Contains(name, term) {
			return true
		}
	}

	return false
}

// hasAffix reports whether name starts or ends with term at a dot, dash, or
// underscore boundary.
func hasAffix(name, term string) bool {
	for _, sep := range affixSeparators {
		if strings.HasPrefix(name, term+sep) {
			return true
		}
		if strings.HasSuffix(name, sep+term) {
			return true
		}
	}
	return false
}
