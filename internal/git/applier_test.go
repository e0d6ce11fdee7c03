package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/byterings/gus/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const repoConfig = `[core]
	repositoryformatversion = 0
	filemode = true
	bare = false
[remote "origin"]
	url = git@github.com:acme/widgets.git
	fetch = +refs/heads/*:refs/remotes/origin/*
[branch "main"]
	remote = origin
	merge = refs/heads/main
`

var workProfile = profile.New("work", "A B", "a@b.com", "/home/u/.ssh/id_work")

func writeRepo(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))
	path := TargetPath(dir)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func load(t *testing.T, path string) *TargetConfig {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	target, err := ParseTarget(data)
	require.NoError(t, err)
	return target
}

func TestApplyWritesIdentity(t *testing.T) {
	path := writeRepo(t, repoConfig)

	require.NoError(t, NewApplier(nil).Apply(path, workProfile))

	target := load(t, path)
	assert.Equal(t, Identity{
		Name:       "A B",
		Email:      "a@b.com",
		SSHCommand: "ssh -i /home/u/.ssh/id_work",
	}, target.Identity())

	remote := target.raw.Section("remote")
	require.True(t, remote.HasSubsection("origin"))
	assert.Equal(t, "git@github.com:acme/widgets.git", remote.Subsection("origin").Option("url"))
	bare, _ := target.Get(SectionCore, "bare")
	assert.Equal(t, "false", bare)
}

func TestApplyReplacesPreviousProfile(t *testing.T) {
	path := writeRepo(t, repoConfig)
	a := NewApplier(nil)

	require.NoError(t, a.Apply(path, workProfile))
	require.NoError(t, a.Apply(path, profile.New("home", "Me", "me@home.org", "/k/home")))

	id, err := ReadIdentity(path)
	require.NoError(t, err)
	assert.Equal(t, "Me", id.Name)
	assert.Equal(t, "me@home.org", id.Email)
	assert.Equal(t, "ssh -i /k/home", id.SSHCommand)
}

func TestApplyKeepsOtherUserKeys(t *testing.T) {
	path := writeRepo(t, repoConfig+"[user]\n\tsigningkey = ABCDEF\n")

	require.NoError(t, NewApplier(nil).Apply(path, workProfile))

	target := load(t, path)
	key, ok := target.Get(SectionUser, "signingkey")
	assert.True(t, ok)
	assert.Equal(t, "ABCDEF", key)
}

func TestApplyMissingFieldLeavesTargetUntouched(t *testing.T) {
	path := writeRepo(t, repoConfig)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	incomplete := profile.Profile{Name: "work", Fields: map[string]string{"email": "a@b.com", "name": "A B"}}
	err = NewApplier(nil).Apply(path, incomplete)
	require.ErrorIs(t, err, profile.ErrMissingField)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestApplyReportsMissingTargetBeforeIncompleteProfile(t *testing.T) {
	dir := t.TempDir()
	incomplete := profile.Profile{Name: "x", Fields: map[string]string{"email": "a@b.com", "name": "A B"}}

	err := NewApplier(nil).Apply(TargetPath(dir), incomplete)
	assert.ErrorIs(t, err, ErrTargetNotFound)
	assert.NotErrorIs(t, err, profile.ErrMissingField)

	_, statErr := os.Stat(filepath.Join(dir, ".git"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestTargetNotFound(t *testing.T) {
	dir := t.TempDir()
	path := TargetPath(dir)
	a := NewApplier(nil)

	assert.ErrorIs(t, a.Apply(path, workProfile), ErrTargetNotFound)
	assert.ErrorIs(t, a.Clear(path), ErrTargetNotFound)

	_, err := os.Stat(filepath.Join(dir, ".git"))
	assert.True(t, os.IsNotExist(err), "nothing may be created")

	exists, err := TargetExists(path)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClearRemovesIdentityAndEmptySections(t *testing.T) {
	path := writeRepo(t, `[user]
	email = a@b.com
	name = A B
[core]
	sshCommand = ssh -i /k
`)

	require.NoError(t, NewApplier(nil).Clear(path))

	target := load(t, path)
	assert.True(t, target.Identity().IsEmpty())
	assert.False(t, target.HasSection(SectionUser))
	assert.False(t, target.HasSection(SectionCore))
}

func TestClearKeepsNonEmptySections(t *testing.T) {
	path := writeRepo(t, repoConfig)
	a := NewApplier(nil)
	require.NoError(t, a.Apply(path, workProfile))

	require.NoError(t, a.Clear(path))

	target := load(t, path)
	assert.True(t, target.Identity().IsEmpty())
	assert.False(t, target.HasSection(SectionUser))
	assert.True(t, target.HasSection(SectionCore))
}

func TestClearIsIdempotent(t *testing.T) {
	path := writeRepo(t, repoConfig+"[user]\n\temail = a@b.com\n")
	a := NewApplier(nil)

	require.NoError(t, a.Clear(path))
	once, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, a.Clear(path))
	twice, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestClearOnCleanConfigDoesNotWrite(t *testing.T) {
	path := writeRepo(t, repoConfig)

	require.NoError(t, NewApplier(nil).Clear(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, repoConfig, string(data))
}

func TestApplyThenClearRestoresConfig(t *testing.T) {
	configs := map[string]string{
		"plain repo":         repoConfig,
		"user with extras":   repoConfig + "[user]\n\tsigningkey = ABCDEF\n",
		"empty file":         "",
		"core only":          "[core]\n\tbare = false\n",
		"unrelated section":  "[alias]\n\tco = checkout\n",
		"valueless key":      "[core]\n\tbare\n\tfilemode = true\n",
		"multi-valued key":   "[remote \"origin\"]\n\turl = x\n\tfetch = +refs/heads/*:refs/remotes/origin/*\n\tfetch = +refs/tags/*:refs/tags/*\n",
		"quoted values":      "[alias]\n\tlg = \"log --oneline # short\"\n\tpath = \"C:\\\\tmp\\\\x\"\n\tsay = \"a \\\"b\\\"\"\n",
		"comments":           "# top\n[core]\n\t; keep me\n\tbare = false # trailing\n[user]\n\tsigningkey = ABC\n",
		"mixed case section": "[Core]\n\tBare = false\n",
	}

	for name, content := range configs {
		t.Run(name, func(t *testing.T) {
			path := writeRepo(t, content)
			a := NewApplier(nil)

			require.NoError(t, a.Apply(path, workProfile))
			require.NoError(t, a.Clear(path))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, content, string(data))
		})
	}
}

func TestApplyPreservesFileMode(t *testing.T) {
	path := writeRepo(t, repoConfig)
	require.NoError(t, os.Chmod(path, 0640))

	require.NoError(t, NewApplier(nil).Apply(path, workProfile))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
}

func TestMalformedTarget(t *testing.T) {
	path := writeRepo(t, "[user\n\temail = a@b.com\n")

	err := NewApplier(nil).Apply(path, workProfile)
	assert.ErrorIs(t, err, ErrParse)

	_, err = ReadIdentity(path)
	assert.ErrorIs(t, err, ErrParse)
}

func TestSSHCommandWithSpaces(t *testing.T) {
	path := writeRepo(t, repoConfig)
	p := profile.New("spaced", "A B", "a@b.com", "/home/u/My Keys/id_work")

	require.NoError(t, NewApplier(nil).Apply(path, p))

	id, err := ReadIdentity(path)
	require.NoError(t, err)
	assert.Equal(t, "ssh -i /home/u/My Keys/id_work", id.SSHCommand)
}

func TestFindRepoRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0755))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	want, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.Equal(t, want, FindRepoRoot(nested))
	assert.Equal(t, want, FindRepoRoot(root))
}

func TestApplyKeepsValuelessKeys(t *testing.T) {
	path := writeRepo(t, "[core]\n\tbare\n\tfilemode = true\n[user]\n\temail = x@y\n")
	a := NewApplier(nil)

	require.NoError(t, a.Apply(path, workProfile))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[core]
	bare
	filemode = true
	sshCommand = ssh -i /home/u/.ssh/id_work
[user]
	email = a@b.com
	name = A B
`, string(data))

	require.NoError(t, a.Clear(path))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[core]\n\tbare\n\tfilemode = true\n", string(data))
}

func TestApplyRewritesExistingKeysInPlace(t *testing.T) {
	path := writeRepo(t, "[user]\n    Email = old@x.y # old\n\tname = Old\n# end\n")

	require.NoError(t, NewApplier(nil).Apply(path, workProfile))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[user]
    email = a@b.com
	name = A B
# end
[core]
	sshCommand = ssh -i /home/u/.ssh/id_work
`, string(data))
}

func TestApplyAddsNewlineBeforeAppending(t *testing.T) {
	path := writeRepo(t, "[alias]\n\tco = checkout")

	require.NoError(t, NewApplier(nil).Apply(path, workProfile))

	target := load(t, path)
	co, ok := target.Get("alias", "co")
	assert.True(t, ok)
	assert.Equal(t, "checkout", co)
	assert.Equal(t, "a@b.com", target.Identity().Email)
}

func TestClearKeepsSubsectionsNamedLikeOwnedSections(t *testing.T) {
	content := "[user \"x\"]\n\temail = keep@x.y\n[user]\n\temail = a@b.com\n"
	path := writeRepo(t, content)

	require.NoError(t, NewApplier(nil).Clear(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[user \"x\"]\n\temail = keep@x.y\n", string(data))
}

func TestSetQuotesSpecialValues(t *testing.T) {
	tests := []string{
		`C:\Users\me\.ssh\id_work`,
		"/keys/#work",
		"/keys/semi;colon",
		` /leading/space`,
		`/keys/"quoted"`,
	}

	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			path := writeRepo(t, repoConfig)
			p := profile.New("k", "A B", "a@b.com", key)

			require.NoError(t, NewApplier(nil).Apply(path, p))

			id, err := ReadIdentity(path)
			require.NoError(t, err)
			assert.Equal(t, SSHCommand(key), id.SSHCommand)
		})
	}
}
