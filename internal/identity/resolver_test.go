package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/byterings/gus/internal/git"
	"github.com/byterings/gus/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repoWith(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))
	path := git.TargetPath(dir)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testCatalog(t *testing.T) *profile.Catalog {
	t.Helper()
	cat := profile.NewCatalog()
	require.NoError(t, cat.Append(profile.New("work", "A B", "a@b.com", "/home/u/.ssh/id_work")))
	require.NoError(t, cat.Append(profile.New("home", "A B", "a@b.com", "~/.ssh/id_home")))
	return cat
}

func TestResolveAfterApply(t *testing.T) {
	cat := testCatalog(t)
	path := repoWith(t, "")

	home, err := cat.Get("home")
	require.NoError(t, err)
	require.NoError(t, git.NewApplier(nil).Apply(path, home))

	res, err := Resolve(cat, path)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotNil(t, res.Profile)
	assert.Equal(t, "home", res.Profile.Name)
	assert.Equal(t, "~/.ssh/id_home", res.KeyPath)
}

func TestResolveEmpty(t *testing.T) {
	res, err := Resolve(testCatalog(t), repoWith(t, "[core]\n\tbare = false\n"))
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestResolveUnknownIdentity(t *testing.T) {
	path := repoWith(t, "[user]\n\temail = x@y.z\n\tname = X\n")

	res, err := Resolve(testCatalog(t), path)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Nil(t, res.Profile)
	assert.Equal(t, "x@y.z", res.Identity.Email)
}

func TestResolveHandEditedCommand(t *testing.T) {
	path := repoWith(t, "[user]\n\temail = a@b.com\n\tname = A B\n[core]\n\tsshCommand = ssh -o IdentitiesOnly=yes -i /home/u/.ssh/id_work\n")

	res, err := Resolve(testCatalog(t), path)
	require.NoError(t, err)
	require.NotNil(t, res.Profile)
	assert.Equal(t, "work", res.Profile.Name)
}

func TestResolveMissingTarget(t *testing.T) {
	_, err := Resolve(testCatalog(t), git.TargetPath(t.TempDir()))
	assert.ErrorIs(t, err, git.ErrTargetNotFound)
}

func TestKeyFromSSHCommand(t *testing.T) {
	tests := map[string]string{
		"ssh -i /k/id":                       "/k/id",
		`ssh -i "/k/my key"`:                 "/k/my key",
		"ssh -i/k/id":                        "/k/id",
		"ssh -o IdentitiesOnly=yes -i /k/id": "/k/id",
		"ssh":                                "",
		"ssh -i":                             "",
		`ssh -i "unterminated`:               "",
		"":                                   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, KeyFromSSHCommand(in), in)
	}
}
