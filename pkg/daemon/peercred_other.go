//go:build !linux

package daemon

import (
	"net"

	"github.com/sirupsen/logrus"
)

func peerFields(_ *net.UnixConn) logrus.Fields {
	return logrus.Fields{}
}
