// Package sysfs reads and writes the kernel's battery charge-stop
// attribute, charge_control_end_threshold.
package sysfs

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// DefaultGlob matches the end-of-charge attribute of any BATn supply.
const DefaultGlob = "/sys/class/power_supply/BAT?/charge_control_end_threshold"

// ErrNoControl is returned when no file matches the control glob.
var ErrNoControl = errors.New("no battery charge control found")

// Control is the hardware end-of-charge threshold attribute.
type Control interface {
	// Locate resolves the attribute path.
	Locate() (string, error)
	// Read returns the threshold currently configured in hardware.
	Read() (int, error)
	// Write sets the hardware threshold. It returns the path written.
	Write(v int) (string, error)
}

var _ Control = &File{}

// File is a Control backed by a glob over sysfs.
type File struct {
	glob string
}

// NewFile returns a Control that resolves glob on every access, so a
// battery renumbered between calls (BAT0 -> BAT1) is still found.
func NewFile(glob string) *File {
	if glob == "" {
		glob = DefaultGlob
	}
	return &File{glob: glob}
}

// Locate returns the first regular file matching the glob, in lexical order.
func (f *File) Locate() (string, error) {
	matches, err := filepath.Glob(f.glob)
	if err != nil {
		return "", pkgerrors.Wrapf(err, "bad control glob %s", f.glob)
	}
	sort.Strings(matches)
	for _, p := range matches {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, nil
		}
	}
	return "", pkgerrors.Wrapf(ErrNoControl, "nothing matches %s", f.glob)
}

func (f *File) Read() (int, error) {
	p, err := f.Locate()
	if err != nil {
		return 0, err
	}

	b, err := os.ReadFile(p)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to read %s", p)
	}

	v, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "unexpected content in %s", p)
	}
	return v, nil
}

func (f *File) Write(v int) (string, error) {
	p, err := f.Locate()
	if err != nil {
		return "", err
	}

	// sysfs attributes are never created, only written.
	fp, err := os.OpenFile(p, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return p, pkgerrors.Wrapf(err, "failed to open %s", p)
	}

	n, err := fp.WriteString(strconv.Itoa(v))
	if cerr := fp.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return p, pkgerrors.Wrapf(err, "failed to write %d to %s", v, p)
	}
	if n <= 0 {
		return p, pkgerrors.Errorf("wrote %d bytes to %s", n, p)
	}

	return p, nil
}
