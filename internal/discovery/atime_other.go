//go:build !darwin && !linux

package discovery

import (
	"os"
	"time"
)

func lastAccessTime(os.FileInfo) time.Time {
	return time.Time{}
}
