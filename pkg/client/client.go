// Package client talks to batteryd over its unix socket.
package client

import (
	"errors"
	"io"
	"io/fs"
	"net"
	"syscall"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bctrl/batteryd/pkg/protocol"
)

// Client is a struct for communicating with batteryd
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient is a constructor for creating a new Client
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

func (c *Client) dial() (net.Conn, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ECONNREFUSED) {
			return nil, pkgerrors.Wrap(ErrDaemonNotRunning, err.Error())
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, pkgerrors.Wrap(ErrPermissionDenied, err.Error())
		}
		return nil, pkgerrors.Wrap(ErrConnectFailed, err.Error())
	}
	return conn, nil
}

// SetThreshold asks the daemon to apply t and returns its answer. The
// daemon sleeps between requests, so the call may block for a while if
// someone else got there first. There is no deadline on the answer.
func (c *Client) SetThreshold(t protocol.Threshold) (protocol.Status, error) {
	logrus.WithFields(logrus.Fields{
		"threshold": t,
		"unix":      c.socketPath,
	}).Debug("sending request")

	conn, err := c.dial()
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logrus.Debugf("failed to close connection: %v", err)
		}
	}()

	if err := protocol.WriteRequest(conn, t); err != nil {
		return 0, pkgerrors.Wrap(err, "failed to write to the server socket")
	}

	status, err := protocol.ReadStatus(conn)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, ErrNoResponse
		}
		if errors.Is(err, protocol.ErrInvalidStatus) {
			return status, err
		}
		return 0, pkgerrors.Wrap(err, "failed to read response")
	}

	logrus.WithField("status", status.String()).Debug("got response")

	return status, nil
}
