//go:build unix

package remover

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIdentityRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artifact")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	handle, err := openNoFollow(path)
	if err != nil {
		t.Fatalf("openNoFollow() error = %v", err)
	}
	defer handle.Close()

	fromHandle, err := identityFromHandle(handle)
	if err != nil {
		t.Fatalf("identityFromHandle() error = %v", err)
	}
	fromPath, err := identityFromPath(path)
	if err != nil {
		t.Fatalf("identityFromPath() error = %v", err)
	}

	if !fromHandle.same(fromPath) {
		t.Errorf("handle identity %+v differs from path identity %+v", fromHandle, fromPath)
	}
	if fromHandle.nlink != 1 {
		t.Errorf("nlink = %d, want 1", fromHandle.nlink)
	}
	if !fromHandle.mode.IsRegular() {
		t.Errorf("mode = %v, want regular", fromHandle.mode)
	}
}

func TestOpenNoFollowRefusesSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	if err := os.WriteFile(target, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	handle, err := openNoFollow(link)
	if err == nil {
		handle.Close()
		t.Fatal("openNoFollow() opened through a symlink")
	}
	if !isNoFollowRefusal(err) {
		t.Errorf("isNoFollowRefusal(%v) = false, want true", err)
	}
}

func TestOpenNoFollowOpensDirectories(t *testing.T) {
	dir := t.TempDir()

	handle, err := openNoFollow(dir)
	if err != nil {
		t.Fatalf("openNoFollow() error = %v for a directory", err)
	}
	handle.Close()
}

func TestIdentityCountsHardlinks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artifact")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Link(path, filepath.Join(dir, "second-name")); err != nil {
		t.Skipf("hard links unsupported here: %v", err)
	}

	id, err := identityFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if id.nlink != 2 {
		t.Errorf("nlink = %d, want 2", id.nlink)
	}
}

func TestHardlinkSuspect(t *testing.T) {
	regular := os.FileMode(0644)
	directory := os.ModeDir | 0755

	tests := []struct {
		name       string
		id         fileIdentity
		systemRoot bool
		want       bool
	}{
		{
			name:       "multi-link regular file under system root",
			id:         fileIdentity{nlink: 2, mode: regular},
			systemRoot: true,
			want:       true,
		},
		{
			name:       "multi-link regular file under user root",
			id:         fileIdentity{nlink: 2, mode: regular},
			systemRoot: false,
			want:       false,
		},
		{
			name:       "single-link regular file under system root",
			id:         fileIdentity{nlink: 1, mode: regular},
			systemRoot: true,
			want:       false,
		},
		{
			name:       "directory with many links under system root",
			id:         fileIdentity{nlink: 5, mode: directory},
			systemRoot: true,
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hardlinkSuspect(tt.id, tt.systemRoot); got != tt.want {
				t.Errorf("hardlinkSuspect(%+v, %v) = %v, want %v", tt.id, tt.systemRoot, got, tt.want)
			}
		})
	}
}
