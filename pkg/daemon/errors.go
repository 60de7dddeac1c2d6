package daemon

import "errors"

var (
	// ErrGroupNotFound is returned when the socket group does not exist.
	ErrGroupNotFound = errors.New("socket group not found")

	// ErrAlreadyRunning is returned when another daemon answers on the socket path.
	ErrAlreadyRunning = errors.New("daemon already running")

	// ErrControlUnwritable is returned by Restore when the control file
	// cannot be written. The daemon must not serve requests in that state.
	ErrControlUnwritable = errors.New("battery charge control is not writable")
)
