package match

import "testing"

func TestMatchesDirectoryName(t *testing.T) {
	tests := []struct {
		name       string
		candidate  string
		appName    string
		identifier string
		want       bool
	}{
		{"exact name", "Chrome", "Chrome", "com.google.Chrome", true},
		{"exact name case-insensitive", "chrome", "Chrome", "com.google.Chrome", true},
		{"name with .app suffix", "Chrome.app", "Chrome", "com.google.Chrome", true},
		{"dash-delimited prefix", "Chrome-Canary", "Chrome", "com.google.Chrome", true},
		{"underscore-delimited prefix", "chrome_profile", "Chrome", "com.google.Chrome", true},
		{"dot-delimited suffix", "com.google.Chrome", "Chrome", "com.google.Chrome", true},
		{"plain substring rejected", "ChromiumHelper", "Chrome", "com.google.Chrome", false},
		{"space is not a delimiter", "Adobe Shared", "Adobe", "com.adobe.Reader", false},
		{"unrelated name", "Firefox", "Chrome", "com.google.Chrome", false},
		{"identifier substring accepted", "com.google.Chrome.helpers", "Chrome", "com.google.Chrome", true},
		{"identifier exact", "com.google.chrome", "Chrome", "com.google.Chrome", true},
		{"empty name and identifier", "Chrome", "", "", false},
		{"empty candidate", "", "Chrome", "com.google.Chrome", false},
		{"whitespace-only term", "Chrome", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Matches(tt.candidate, tt.appName, tt.identifier, ModeDirectoryName)
			if got != tt.want {
				t.Errorf("Matches(%q, %q, %q, directory) = %v, want %v",
					tt.candidate, tt.appName, tt.identifier, got, tt.want)
			}
		})
	}
}

func TestMatchesIdentifierFile(t *testing.T) {
	tests := []struct {
		name       string
		candidate  string
		appName    string
		identifier string
		want       bool
	}{
		{"exact identifier", "com.google.Chrome", "Chrome", "com.google.Chrome", true},
		{"identifier with plist suffix", "com.google.Chrome.plist", "Chrome", "com.google.Chrome", true},
		{"identifier with savedState suffix", "com.google.Chrome.savedState", "Chrome", "com.google.Chrome", true},
		{"identifier with helper suffix", "com.google.Chrome.Helper.plist", "Chrome", "com.google.Chrome", true},
		{"case-insensitive", "COM.GOOGLE.CHROME.PLIST", "Chrome", "com.google.Chrome", true},
		{"display name ignored in this mode", "Chrome", "Chrome", "com.google.Chrome", false},
		{"undotted term never substring-matches", "somechromehelper", "chrome", "chrome", false},
		{"unrelated identifier", "org.mozilla.firefox.plist", "Chrome", "com.google.Chrome", false},
		{"empty identifier", "com.google.Chrome.plist", "Chrome", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Matches(tt.candidate, tt.appName, tt.identifier, ModeIdentifierFile)
			if got != tt.want {
				t.Errorf("Matches(%q, %q, %q, identifier) = %v, want %v",
					tt.candidate, tt.appName, tt.identifier, got, tt.want)
			}
		})
	}
}

func TestHasAffix(t *testing.T) {
	tests := []struct {
		name string
		term string
		want bool
	}{
		{"slack.helper", "slack", true},
		{"slack-helper", "slack", true},
		{"slack_helper", "slack", true},
		{"helper.slack", "slack", true},
		{"helper-slack", "slack", true},
		{"helper_slack", "slack", true},
		{"slackhelper", "slack", false},
		{"helperslack", "slack", false},
		{"slack helper", "slack", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasAffix(tt.name, tt.term); got != tt.want {
				t.Errorf("hasAffix(%q, %q) = %v, want %v", tt.name, tt.term, got, tt.want)
			}
		})
	}
}

func TestMatchesUnknownMode(t *testing.T) {
	if Matches("Chrome", "Chrome", "com.google.Chrome", Mode(42)) {
		t.Error("unknown mode should never match")
	}
}
