package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DirSize returns the recursive size of root in bytes. Symlinked
// descendants contribute nothing, and an application bundle nested inside
// root is not recursed into (it is an artifact of its own). Unreadable
// subtrees are skipped silently.
func DirSize(root string) int64 {
	var total int64

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if d.IsDir() {
			if path != root && isBundleName(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})

	return total
}

// entrySize sizes one directory entry: files by their direct size,
// directories recursively via DirSize.
func entrySize(path string, entry fs.DirEntry) int64 {
	if entry.IsDir() {
		return DirSize(path)
	}
	info, err := entry.Info()
	if err != nil {
		return 0
	}
	return info.Size()
}

func isBundleName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".app")
}

// lastAccess reads the access timestamp of path without following symlinks.
func lastAccess(path string) time.Time {
	fi, err := os.Lstat(path)
	if err != nil {
		return time.Time{}
	}
	return lastAccessTime(fi)
}
