package protocol

import "fmt"

// Status is the outcome of one set-threshold request. It travels as a
// single signed byte and doubles as the client's process exit code.
type Status int8

const (
	StatusSuccess Status = iota
	StatusValueTooSmall
	StatusValueTooLarge
	StatusSystemFailure
)

var statusNames = map[Status]string{
	StatusSuccess:       "SUCCESS",
	StatusValueTooSmall: "VALUE_TOO_SMALL",
	StatusValueTooLarge: "VALUE_TOO_LARGE",
	StatusSystemFailure: "SYSTEM_FAILURE",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int8(s))
}

// Valid reports whether s is one of the four defined statuses.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// ExitCode returns the status byte as a process exit code, 0..255.
func (s Status) ExitCode() int {
	return int(uint8(s))
}
