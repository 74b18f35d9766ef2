//go:build darwin

package discovery

import (
	"os"
	"syscall"
	"time"
)

func lastAccessTime(fi os.FileInfo) time.Time {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}
	}
	return time.Unix(int64(st.Atimespec.Sec), int64(st.Atimespec.Nsec))
}
