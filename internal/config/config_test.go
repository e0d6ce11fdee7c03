package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/byterings/gus/internal/config"
	"github.com/byterings/gus/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	path, err := config.GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".gus", "config"), path)

	path, err = config.ResolvePath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".gus", "config"), path)

	path, err = config.ResolvePath("~/profiles.toml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "profiles.toml"), path)
}

func TestLoadCatalogCreatesEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gus", "config")

	cat, err := config.LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cat.Len())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
}

func TestInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	created, err := config.Init(path)
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, os.WriteFile(path, []byte("[work]\nname = \"A\"\n"), 0600))

	created, err = config.Init(path)
	require.NoError(t, err)
	assert.False(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[work]")
}

func TestLoadCatalogMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("[work"), 0600))

	_, err := config.LoadCatalog(path)
	assert.ErrorIs(t, err, profile.ErrParse)
}

func TestSaveCatalogRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	cat := profile.NewCatalog()
	require.NoError(t, cat.Append(profile.New("work", "A B", "a@b.com", "/home/u/.ssh/id_work")))
	require.NoError(t, cat.Append(profile.New("home", "Me", "me@home.org", "/home/u/.ssh/id_home")))
	require.NoError(t, config.SaveCatalog(path, cat))

	loaded, err := config.LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"work", "home"}, loaded.Names())

	work, err := loaded.Get("work")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", work.Email())
}
