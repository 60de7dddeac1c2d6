//go:build linux

package daemon

import (
	"net"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// peerFields returns the uid and pid of the process on the other end of
// conn. Failures are ignored; the credentials are only for the log.
func peerFields(conn *net.UnixConn) logrus.Fields {
	raw, err := conn.SyscallConn()
	if err != nil {
		return logrus.Fields{}
	}

	var cred *unix.Ucred
	var credErr error
	err = raw.Control(func(fd uintptr) {
		cred, credErr = unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
	})
	if err != nil || credErr != nil || cred == nil {
		return logrus.Fields{}
	}

	return logrus.Fields{
		"peerUID": cred.Uid,
		"peerPID": cred.Pid,
	}
}
