//go:build !unix

package remover

import (
	"errors"
	"os"
)

type fileIdentity struct {
	dev   uint64
	ino   uint64
	nlink uint64
	mode  os.FileMode
}

func (a fileIdentity) same(b fileIdentity) bool {
	return a.dev == b.dev && a.ino == b.ino
}

var errNoIdentity = errors.New("file identity verification is unsupported on this platform")

func openNoFollow(path string) (*os.File, error) {
	return nil, errNoIdentity
}

func identityFromHandle(*os.File) (fileIdentity, error) {
	return fileIdentity{}, errNoIdentity
}

func identityFromPath(string) (fileIdentity, error) {
	return fileIdentity{}, errNoIdentity
}

func hardlinkSuspect(id fileIdentity, underSystemRoot bool) bool {
	return id.mode.IsRegular() && id.nlink > 1 && underSystemRoot
}

func isNoFollowRefusal(error) bool {
	return false
}
