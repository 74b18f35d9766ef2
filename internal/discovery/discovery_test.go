package discovery

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/fenilsonani/appsweep/internal/apps"
	"github.com/fenilsonani/appsweep/internal/testutil"
)

func exampleApp(fix *testutil.TestFixture) apps.Application {
	return apps.Application{
		Name:       "Example",
		BundleID:   "com.example.app",
		BundlePath: fix.CreateAppBundle("Example", "com.example.app"),
	}
}

func TestDiscover(t *testing.T) {
	fix := testutil.NewFixture(t)
	app := exampleApp(fix)

	prefs := fix.CreateFileSized("Library/Preferences/com.example.app.plist", 256)
	support := fix.CreateDir("Library/Application Support/Example")
	fix.CreateFileSized("Library/Application Support/Example/state.db", 512)
	caches := fix.CreateDir("Library/Caches/com.example.app")
	fix.CreateFileSized("Library/Caches/com.example.app/blob", 1024)
	container := fix.CreateDir("Library/Containers/com.example.app")
	fix.CreateFileSized("Library/Containers/com.example.app/Data/doc.txt", 2048)

	fix.CreateFileSized("Library/Preferences/com.other.app.plist", 256)
	fix.CreateDir("Library/Caches/Unrelated")

	engine := NewEngine(fix.PlatformInfo())
	got := engine.Discover(app)

	wantPaths := []string{app.BundlePath, prefs, support, caches, container}
	if len(got) != len(wantPaths) {
		t.Fatalf("Discover() returned %d artifacts, want %d: %+v", len(got), len(wantPaths), got)
	}
	for i, want := range wantPaths {
		if got[i].Path != want {
			t.Errorf("artifact %d path = %q, want %q", i, got[i].Path, want)
		}
	}

	if got[0].Category != CategoryApplication || !got[0].Selected || got[0].Protected {
		t.Errorf("bundle artifact = %+v, want selected unprotected Application", got[0])
	}
	if got[1].Category != CategoryPreferences || got[1].Size != 256 {
		t.Errorf("preferences artifact = %+v", got[1])
	}
	if got[2].Size != 512 || got[3].Size != 1024 {
		t.Errorf("directory sizes = %d, %d; want 512, 1024", got[2].Size, got[3].Size)
	}
}

func TestDiscoverContainerProtection(t *testing.T) {
	fix := testutil.NewFixture(t)
	app := exampleApp(fix)

	fix.CreateFileSized("Library/Containers/com.example.app/Data/doc.txt", 64)
	fix.CreateFileSized("Library/Group Containers/group.com.example.app/shared.db", 64)
	fix.CreateFileSized("Library/Caches/com.example.app/blob", 64)

	engine := NewEngine(fix.PlatformInfo())

	for _, a := range engine.Discover(app) {
		switch a.Category {
		case CategoryContainers:
			if !a.Protected {
				t.Errorf("container artifact %s not marked protected", a.Path)
			}
			if a.Selected {
				t.Errorf("container artifact %s is pre-selected", a.Path)
			}
		case CategoryCaches:
			if a.Protected || !a.Selected {
				t.Errorf("cache artifact = %+v, want selected and unprotected", a)
			}
		}
	}
}

func TestDiscoverSkipsSymlinkedEntries(t *testing.T) {
	fix := testutil.NewFixture(t)
	app := exampleApp(fix)

	real := fix.CreateDir("Library/Caches/com.example.app")
	fix.CreateFileSized("Library/Caches/com.example.app/blob", 128)

	// Both links carry matching names; neither may surface.
	fix.CreateSymlink(real, filepath.Join(fix.LogsDir, "com.example.app"))
	fix.CreateBrokenSymlink(filepath.Join(fix.PreferencesDir, "com.example.app.plist"))

	engine := NewEngine(fix.PlatformInfo())
	got := engine.Discover(app)

	for _, a := range got {
		if a.Category == CategoryLogs || a.Category == CategoryPreferences {
			t.Errorf("symlinked entry surfaced as artifact: %+v", a)
		}
	}
	if len(got) != 2 {
		t.Errorf("Discover() returned %d artifacts, want bundle + cache only: %+v", len(got), got)
	}
}

func TestDiscoverDeterminism(t *testing.T) {
	fix := testutil.NewFixture(t)
	app := exampleApp(fix)

	fix.CreateFileSized("Library/Preferences/com.example.app.plist", 64)
	fix.CreateFileSized("Library/Preferences/com.example.app.helper.plist", 64)
	fix.CreateFileSized("Library/Caches/com.example.app/a", 64)
	fix.CreateFileSized("Library/Caches/com.example.app/b", 64)
	fix.CreateFileSized("Library/Logs/Example/run.log", 64)

	engine := NewEngine(fix.PlatformInfo())

	first := engine.Discover(app)
	second := engine.Discover(app)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Discover() not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestDiscoverExcludePatterns(t *testing.T) {
	fix := testutil.NewFixture(t)
	app := exampleApp(fix)

	kept := fix.CreateFileSized("Library/Preferences/com.example.app.plist", 64)
	fix.CreateFileSized("Library/Preferences/com.example.app.helper.plist", 64)
	fix.CreateFileSized("Library/Caches/com.example.app/blob", 64)

	engine := NewEngine(fix.PlatformInfo())
	engine.ExcludePatterns = []string{"*.helper.plist", "Library/Caches"}

	got := engine.Discover(app)

	if len(got) != 2 {
		t.Fatalf("Discover() returned %d artifacts, want bundle + preferences: %+v", len(got), got)
	}
	if got[1].Path != kept {
		t.Errorf("surviving artifact = %q, want %q", got[1].Path, kept)
	}
}

func TestDiscoverOrphansExcludePatterns(t *testing.T) {
	fix := testutil.NewFixture(t)

	fix.CreateFileSized("Library/Preferences/com.gone.tool.plist", 2048)
	fix.CreateFileSized("Library/Preferences/com.kept.tool.plist", 2048)

	engine := NewEngine(fix.PlatformInfo())
	engine.ExcludePatterns = []string{"com.kept.*"}

	groups := engine.DiscoverOrphans(map[string]bool{})

	if len(groups) != 1 || groups[0].Identifier != "com.gone.tool" {
		t.Errorf("DiscoverOrphans() = %+v, want only com.gone.tool", groups)
	}
}

func TestDiscoverMachineRules(t *testing.T) {
	fix := testutil.NewFixture(t)
	app := exampleApp(fix)

	info := fix.PlatformInfo()
	machineLib := fix.CreateDir(filepath.Join(filepath.Dir(fix.HomeDir), "MachineLibrary"))
	info.SystemLibraryDirs = []string{machineLib}

	fix.CreateFileSized(filepath.Join(machineLib, "LaunchDaemons", "com.example.app.daemon.plist"), 64)
	fix.CreateFileSized(filepath.Join(machineLib, "PrivilegedHelperTools", "com.example.app.helper"), 64)

	engine := NewEngine(info)
	got := engine.Discover(app)

	var daemon, helper *CandidateArtifact
	for i := range got {
		switch got[i].Category {
		case CategoryLaunchDaemons:
			daemon = &got[i]
		case CategoryOther:
			helper = &got[i]
		}
	}

	if daemon == nil || helper == nil {
		t.Fatalf("machine artifacts missing from %+v", got)
	}
	if daemon.Selected || helper.Selected {
		t.Error("machine-location artifacts must not be pre-selected")
	}
}

func TestDiscoverUnreadableRootYieldsNothing(t *testing.T) {
	fix := testutil.NewFixture(t)
	app := exampleApp(fix)

	info := fix.PlatformInfo()
	info.SystemLibraryDirs = []string{filepath.Join(fix.HomeDir, "no-such-library")}

	engine := NewEngine(info)
	got := engine.Discover(app)

	if len(got) != 1 {
		t.Errorf("Discover() over missing roots returned %d artifacts, want bundle only", len(got))
	}
}

func TestDirSize(t *testing.T) {
	fix := testutil.NewFixture(t)

	root := fix.CreateDir("Library/Caches/com.example.app")
	fix.CreateFileSized("Library/Caches/com.example.app/a", 100)
	fix.CreateFileSized("Library/Caches/com.example.app/sub/b", 200)

	if got := DirSize(root); got != 300 {
		t.Errorf("DirSize() = %d, want 300", got)
	}
}

func TestDirSizeSkipsSymlinkedDescendants(t *testing.T) {
	fix := testutil.NewFixture(t)

	big := fix.CreateFileSized("Library/Logs/huge.log", 100000)
	root := fix.CreateDir("Library/Caches/com.example.app")
	fix.CreateFileSized("Library/Caches/com.example.app/a", 100)
	fix.CreateSymlink(big, filepath.Join(root, "link-to-huge"))

	if got := DirSize(root); got != 100 {
		t.Errorf("DirSize() = %d, want 100 (symlinked descendant excluded)", got)
	}
}

func TestDirSizeSkipsNestedBundles(t *testing.T) {
	fix := testutil.NewFixture(t)

	root := fix.CreateDir("Library/Application Support/Example")
	fix.CreateFileSized("Library/Application Support/Example/state.db", 100)
	fix.CreateFileSized("Library/Application Support/Example/Updater.app/Contents/MacOS/updater", 50000)

	if got := DirSize(root); got != 100 {
		t.Errorf("DirSize() = %d, want 100 (nested bundle internals excluded)", got)
	}
}

func TestDirSizeCountsOwnBundle(t *testing.T) {
	fix := testutil.NewFixture(t)
	bundle := fix.CreateAppBundle("Example", "com.example.app")

	// Sizing a bundle itself descends into it; only bundles nested below
	// the root are shallow.
	if got := DirSize(bundle); got == 0 {
		t.Error("DirSize() of the bundle root = 0, want its content size")
	}
}
