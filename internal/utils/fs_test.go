package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDirs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dirs := ConfigDirs("cursor-escape")
	require.NotEmpty(t, dirs)
	assert.Equal(t, ".", dirs[0])
	assert.Contains(t, dirs, filepath.Join("/tmp/xdg", "cursor-escape"))
	assert.Equal(t, "/etc/cursor-escape", dirs[len(dirs)-1])
}

func TestCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "nested", "session.cetr")

	f, err := CreateFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("x")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.Size())
}
