package client

import "errors"

var (
	// ErrDaemonNotRunning is returned when the daemon is not running
	ErrDaemonNotRunning = errors.New("daemon not running")

	// ErrPermissionDenied is returned when the user may not connect to the daemon socket
	ErrPermissionDenied = errors.New("permission denied")

	// ErrConnectFailed is returned for any other failure to reach the daemon socket
	ErrConnectFailed = errors.New("cannot connect to daemon socket")

	// ErrNoResponse is returned when the daemon closes the connection without answering
	ErrNoResponse = errors.New("no response from daemon")

	// ErrInputTooLong is returned for threshold strings longer than protocol.MaxInputLength
	ErrInputTooLong = errors.New("please input up to 3 digits")

	// ErrInvalidThreshold is returned for input that is not an integer in 1..100
	ErrInvalidThreshold = errors.New("not a valid battery threshold")
)
