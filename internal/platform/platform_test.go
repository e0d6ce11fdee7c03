package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	tests := map[string]string{
		"":               "",
		"/abs/path":      "/abs/path",
		"~":              home,
		"~/.ssh/id_work": filepath.Join(home, ".ssh", "id_work"),
		"~other/x":       "~other/x",
	}
	for in, want := range tests {
		got, err := ExpandTilde(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}

func TestFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("k"), 0644))

	ok, err := CheckFilePermissions(path)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, FixFilePermissions(path))
	ok, err = CheckFilePermissions(path)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMkdirSecure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", ".gus")
	require.NoError(t, MkdirSecure(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	}
}
