//go:build unix

package main

import (
	"os"
	"os/user"
	"strconv"
	"syscall"
)

// socketGroup returns the name of the group owning the file at path, or ""
// when it cannot be told.
func socketGroup(path string) string {
	fi, err := os.Stat(path)
	if err != nil {
		return ""
	}
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return ""
	}
	g, err := user.LookupGroupId(strconv.FormatUint(uint64(st.Gid), 10))
	if err != nil {
		return ""
	}
	return g.Name
}
