package daemon

import (
	"net"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// SocketMode lets the owner and the socket group connect. Others cannot.
const SocketMode os.FileMode = 0o660

// Listen binds a unix stream socket at path, hands it to group and
// restricts it to SocketMode. A stale socket file left by a previous run
// is removed; a live one is an error. An empty group keeps the daemon's
// own group.
func Listen(path string, group string) (*net.UnixListener, error) {
	gid := -1
	if group != "" {
		g, err := user.LookupGroup(group)
		if err != nil {
			return nil, pkgerrors.Wrapf(ErrGroupNotFound, "%s: %v", group, err)
		}
		gid, err = strconv.Atoi(g.Gid)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "bad gid %q for group %s", g.Gid, group)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to create %s", dir)
	}

	if err := removeStaleSocket(path); err != nil {
		return nil, err
	}

	ln, err := net.ListenUnix("unix", &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to listen on %s", path)
	}

	if gid >= 0 {
		if err := os.Chown(path, -1, gid); err != nil {
			_ = ln.Close()
			return nil, pkgerrors.Wrapf(err, "failed to chown %s to group %s", path, group)
		}
	}

	if err := os.Chmod(path, SocketMode); err != nil {
		_ = ln.Close()
		return nil, pkgerrors.Wrapf(err, "failed to chmod %s", path)
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"group": group,
		"mode":  SocketMode.String(),
	}).Debug("socket ready")

	return ln, nil
}

func removeStaleSocket(path string) error {
	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to stat %s", path)
	}

	if conn, err := net.DialTimeout("unix", path, time.Second); err == nil {
		_ = conn.Close()
		return pkgerrors.Wrapf(ErrAlreadyRunning, "%s is in use", path)
	}

	logrus.Warnf("removing stale socket %s", path)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrapf(err, "failed to remove %s", path)
	}
	return nil
}

// removeSocket unlinks path so the next start can bind it again.
func removeSocket(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logrus.Errorf("failed to remove socket %s: %v", path, err)
	}
}
