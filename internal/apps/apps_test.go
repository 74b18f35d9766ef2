package apps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fenilsonani/appsweep/internal/testutil"
)

func TestList(t *testing.T) {
	fix := testutil.NewFixture(t)

	fix.CreateAppBundle("Zeta", "com.example.zeta")
	fix.CreateAppBundle("Alpha", "com.example.alpha")
	fix.CreateDir(filepath.Join(fix.AppsDir, "NotABundle"))
	fix.CreateFile(filepath.Join(fix.AppsDir, "README.txt"), []byte("hi"))

	apps, err := List(fix.PlatformInfo())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(apps) != 2 {
		t.Fatalf("List() returned %d apps, want 2: %+v", len(apps), apps)
	}
	if apps[0].Name != "Alpha" || apps[1].Name != "Zeta" {
		t.Errorf("List() order = [%s, %s], want [Alpha, Zeta]", apps[0].Name, apps[1].Name)
	}
	if apps[0].BundleID != "com.example.alpha" {
		t.Errorf("BundleID = %q, want com.example.alpha", apps[0].BundleID)
	}
	if apps[0].Version != "1.2.3" {
		t.Errorf("Version = %q, want 1.2.3", apps[0].Version)
	}
}

func TestListSkipsBundleWithoutIdentifier(t *testing.T) {
	fix := testutil.NewFixture(t)

	fix.CreateAppBundle("Named", "com.example.named")
	fix.CreateAppBundle("Anonymous", "")

	apps, err := List(fix.PlatformInfo())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(apps) != 1 || apps[0].Name != "Named" {
		t.Errorf("List() = %+v, want only the identified bundle", apps)
	}
}

func TestListSkipsSymlinkedBundles(t *testing.T) {
	fix := testutil.NewFixture(t)

	real := fix.CreateAppBundle("Real", "com.example.real")
	fix.CreateSymlink(real, filepath.Join(fix.AppsDir, "Aliased.app"))

	apps, err := List(fix.PlatformInfo())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(apps) != 1 {
		t.Errorf("List() returned %d apps, want 1 (symlinked bundle skipped)", len(apps))
	}
}

func TestListMissingDirectory(t *testing.T) {
	fix := testutil.NewFixture(t)
	info := fix.PlatformInfo()
	info.ApplicationsDirs = []string{filepath.Join(fix.HomeDir, "no-such-dir")}

	apps, err := List(info)
	if err != nil {
		t.Fatalf("List() error = %v, want nil for a missing directory", err)
	}
	if len(apps) != 0 {
		t.Errorf("List() = %+v, want empty", apps)
	}
}

func TestFromBundle(t *testing.T) {
	fix := testutil.NewFixture(t)
	bundle := fix.CreateAppBundle("Example", "com.example.app")

	app, err := FromBundle(bundle)
	if err != nil {
		t.Fatalf("FromBundle() error = %v", err)
	}
	if app.Name != "Example" {
		t.Errorf("Name = %q, want Example", app.Name)
	}
	if app.BundleID != "com.example.app" {
		t.Errorf("BundleID = %q, want com.example.app", app.BundleID)
	}
	if app.BundlePath != bundle {
		t.Errorf("BundlePath = %q, want %q", app.BundlePath, bundle)
	}
}

func TestFromBundleNoPlist(t *testing.T) {
	fix := testutil.NewFixture(t)
	dir := fix.CreateDir(filepath.Join(fix.AppsDir, "Broken.app"))

	if _, err := FromBundle(dir); err == nil {
		t.Error("FromBundle() error = nil, want error for missing Info.plist")
	}
}

func TestFromBundleFallbackName(t *testing.T) {
	fix := testutil.NewFixture(t)

	// A plist that names only the identifier falls back to the directory name.
	bundle := filepath.Join(fix.AppsDir, "Fallback.app")
	if err := os.MkdirAll(filepath.Join(bundle, "Contents"), 0755); err != nil {
		t.Fatal(err)
	}
	plist := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleIdentifier</key>
	<string>com.example.fallback</string>
</dict>
</plist>
`)
	if err := os.WriteFile(filepath.Join(bundle, "Contents", "Info.plist"), plist, 0644); err != nil {
		t.Fatal(err)
	}

	app, err := FromBundle(bundle)
	if err != nil {
		t.Fatalf("FromBundle() error = %v", err)
	}
	if app.Name != "Fallback" {
		t.Errorf("Name = %q, want Fallback", app.Name)
	}
}

func TestFind(t *testing.T) {
	fix := testutil.NewFixture(t)
	fix.CreateAppBundle("Example", "com.example.app")
	info := fix.PlatformInfo()

	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{name: "by identifier", query: "com.example.app"},
		{name: "by name case-insensitive", query: "example"},
		{name: "by bundle path", query: filepath.Join(fix.AppsDir, "Example.app")},
		{name: "unknown", query: "com.example.other", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := Find(info, tt.query)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Find(%q) error = nil, want error", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("Find(%q) error = %v", tt.query, err)
			}
			if app.BundleID != "com.example.app" {
				t.Errorf("Find(%q).BundleID = %q, want com.example.app", tt.query, app.BundleID)
			}
		})
	}
}
