package main

import (
	"github.com/fatih/color"
)

// statusError carries a service answer that is not success. Its code is
// the process exit code.
type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	return e.message
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

func green(s string) string {
	return color.New(color.FgGreen).Sprint(s)
}

func red(s string) string {
	return color.New(color.FgRed).Sprint(s)
}
