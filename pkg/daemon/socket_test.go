package daemon

import (
	"net"
	"os"
	"os/user"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "s.sock")

	ln, err := Listen(path, "")
	require.NoError(t, err)
	defer ln.Close()

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.ModeSocket, st.Mode()&os.ModeSocket)
	assert.Equal(t, SocketMode, st.Mode().Perm())
}

func TestListenOwnGroup(t *testing.T) {
	u, err := user.Current()
	require.NoError(t, err)
	g, err := user.LookupGroupId(u.Gid)
	if err != nil {
		t.Skipf("cannot resolve primary group: %v", err)
	}

	path := filepath.Join(t.TempDir(), "s.sock")
	ln, err := Listen(path, g.Name)
	require.NoError(t, err)
	defer ln.Close()
}

func TestListenUnknownGroup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.sock")
	_, err := Listen(path, "batteryd-no-such-group")
	assert.ErrorIs(t, err, ErrGroupNotFound)

	_, err = os.Lstat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestListenRemovesStaleSocket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.sock")

	// A socket file nobody listens on.
	stale, err := net.ListenUnix("unix", &net.UnixAddr{Name: path, Net: "unix"})
	require.NoError(t, err)
	stale.SetUnlinkOnClose(false)
	require.NoError(t, stale.Close())
	_, err = os.Lstat(path)
	require.NoError(t, err)

	ln, err := Listen(path, "")
	require.NoError(t, err)
	defer ln.Close()
}

func TestListenLiveSocket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.sock")
	live, err := Listen(path, "")
	require.NoError(t, err)
	defer live.Close()

	_, err = Listen(path, "")
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}
