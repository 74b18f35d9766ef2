// Package trash moves files into the platform trash instead of unlinking
// them, so removals stay recoverable until the user empties it.
package trash

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fenilsonani/appsweep/internal/platform"
)

// Bin is one trash destination. On freedesktop systems it maintains the
// files/ and info/ split with .trashinfo records; on macOS it moves items
// straight into ~/.Trash.
type Bin struct {
	dir         string
	freedesktop bool

	now func() time.Time
}

// NewBin creates a Bin for the platform's trash directory.
func NewBin(info *platform.Info) *Bin {
	return &Bin{
		dir:         info.TrashDir,
		freedesktop: info.OS == platform.Linux,
		now:         time.Now,
	}
}

// NewBinAt creates a Bin rooted at an explicit directory, macOS layout.
func NewBinAt(dir string) *Bin {
	return &Bin{dir: dir, now: time.Now}
}

// Put moves path into the bin, renaming on collision. The move is a rename
// and fails across filesystems; callers decide the fallback.
func (b *Bin) Put(path string) error {
	if b.dir == "" {
		return errors.New("no trash directory on this platform")
	}

	filesDir := b.dir
	if b.freedesktop {
		filesDir = filepath.Join(b.dir, "files")
	}
	if err := os.MkdirAll(filesDir, 0700); err != nil {
		return fmt.Errorf("failed to prepare trash directory: %w", err)
	}

	name, dest := b.uniqueName(filesDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("failed to move %s to trash: %w", path, err)
	}

	if b.freedesktop {
		// Best effort: the item is already safely in files/.
		b.writeTrashInfo(name, path)
	}
	return nil
}

// uniqueName finds an unused name in dir derived from base.
func (b *Bin) uniqueName(dir, base string) (string, string) {
	name := base
	dest := filepath.Join(dir, name)

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for i := 2; ; i++ {
		if _, err := os.Lstat(dest); os.IsNotExist(err) {
			return name, dest
		}
		name = fmt.Sprintf("%s %d%s", stem, i, ext)
		dest = filepath.Join(dir, name)
	}
}

// writeTrashInfo records the origin of a trashed item per the freedesktop
// trash layout.
func (b *Bin) writeTrashInfo(name, origin string) {
	infoDir := filepath.Join(b.dir, "info")
	if err := os.MkdirAll(infoDir, 0700); err != nil {
		return
	}

	content := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		origin, b.now().Format("2006-01-02T15:04:05"))
	os.WriteFile(filepath.Join(infoDir, name+".trashinfo"), []byte(content), 0600)
}
