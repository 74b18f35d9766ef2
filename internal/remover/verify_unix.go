//go:build unix

package remover

import (
	"errors"
	"os"
	"syscall"
)

// fileIdentity pins a file to its device and inode as observed at one
// instant, plus the link count and mode needed for the hardlink check.
type fileIdentity struct {
	dev   uint64
	ino   uint64
	nlink uint64
	mode  os.FileMode
}

func (a fileIdentity) same(b fileIdentity) bool {
	return a.dev == b.dev && a.ino == b.ino
}

// openNoFollow opens path while refusing to traverse a symlink at the final
// component. O_NONBLOCK keeps a FIFO planted at the path from wedging the
// open.
func openNoFollow(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDONLY|syscall.O_NOFOLLOW|syscall.O_NONBLOCK, 0)
}

// identityFromHandle stats the open handle, observing device, inode and
// link count atomically with the open that produced it.
func identityFromHandle(f *os.File) (fileIdentity, error) {
	fi, err := f.Stat()
	if err != nil {
		return fileIdentity{}, err
	}
	return identityFromInfo(fi)
}

// identityFromPath lstats the path without following a final symlink.
func identityFromPath(path string) (fileIdentity, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return fileIdentity{}, err
	}
	return identityFromInfo(fi)
}

func identityFromInfo(fi os.FileInfo) (fileIdentity, error) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return fileIdentity{}, errors.New("stat result carries no inode identity")
	}
	return fileIdentity{
		dev:   uint64(st.Dev),
		ino:   uint64(st.Ino),
		nlink: uint64(st.Nlink),
		mode:  fi.Mode(),
	}, nil
}

// hardlinkSuspect flags a regular file with multiple names whose removal
// path sits under a system root. A second name can park a privileged file
// inside a removable location, so such entries are refused rather than
// chased down with an inode scan.
func hardlinkSuspect(id fileIdentity, underSystemRoot bool) bool {
	return id.mode.IsRegular() && id.nlink > 1 && underSystemRoot
}

// isNoFollowRefusal reports whether an open failed because O_NOFOLLOW hit a
// symlink at the final component.
func isNoFollowRefusal(err error) bool {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	return errno == syscall.ELOOP || errno == syscall.EMLINK
}
