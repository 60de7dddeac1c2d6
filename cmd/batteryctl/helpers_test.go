//go:build unix

package main

import (
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocketGroup(t *testing.T) {
	assert.Equal(t, "", socketGroup(filepath.Join(t.TempDir(), "missing")))

	g, err := user.LookupGroupId(strconv.Itoa(os.Getgid()))
	if err != nil {
		t.Skipf("own group has no name: %v", err)
	}

	p := filepath.Join(t.TempDir(), "s.sock")
	require.NoError(t, os.WriteFile(p, nil, 0o660))
	require.NoError(t, os.Chown(p, -1, os.Getgid()))

	assert.Equal(t, g.Name, socketGroup(p))
}
