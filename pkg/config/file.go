package config

import (
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/google/renameio/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultPath is where batteryd keeps the last applied threshold.
const DefaultPath = "/etc/batteryd.conf"

var _ Config = &File{}

// File stores a single threshold as ASCII decimal text. It has no schema
// and no version; the only reader is batteryd's start-up restore.
type File struct {
	threshold *int
	mu        *sync.RWMutex
	filepath  string
}

// NewFile returns a File for configPath without reading it.
func NewFile(configPath string) *File {
	return &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
}

// Path returns the file location.
func (f *File) Path() string {
	return f.filepath
}

func (f *File) Threshold() (int, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.threshold == nil {
		return 0, false
	}
	return *f.threshold, true
}

func (f *File) SetThreshold(i int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threshold = &i
}

// Load reads the file. A missing file is returned as an error satisfying
// os.IsNotExist; an empty file leaves the threshold unset.
func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		f.threshold = nil
		if os.IsNotExist(err) {
			return err
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	b, err := io.ReadAll(fp)
	if err != nil {
		f.threshold = nil
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	s := strings.TrimSpace(string(b))
	if s == "" {
		f.threshold = nil
		return nil
	}

	v, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		// Still a number, just not one an int holds. Keep it out of
		// range so the caller resets it.
		v, err = math.MaxInt, nil
		if strings.HasPrefix(s, "-") {
			v = math.MinInt
		}
	}
	if err != nil {
		f.threshold = nil
		return pkgerrors.Wrapf(err, "failed to parse threshold from file %s", f.filepath)
	}
	f.threshold = &v

	return nil
}

// Save replaces the file with the current threshold. The old contents stay
// in place until the new file is complete.
func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.threshold == nil {
		return pkgerrors.New("no threshold to save")
	}

	err := renameio.WriteFile(f.filepath, []byte(strconv.Itoa(*f.threshold)), 0o644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to write file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	v, ok := f.Threshold()
	fields := logrus.Fields{
		"path": f.filepath,
	}
	if ok {
		fields["threshold"] = v
	}
	return fields
}
