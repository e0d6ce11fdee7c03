package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/byterings/gus/internal/keys"
	"github.com/byterings/gus/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank("x"))
	assert.Error(t, NotBlank(""))
	assert.Error(t, NotBlank("   "))
}

func TestProfileNameValidator(t *testing.T) {
	cat := profile.NewCatalog()
	require.NoError(t, cat.Append(profile.New("work", "A", "a@b.com", "/k")))
	validate := ProfileNameValidator(cat)

	assert.NoError(t, validate("home"))
	assert.Error(t, validate(""))
	assert.ErrorIs(t, validate("work"), profile.ErrDuplicateName)
	assert.ErrorIs(t, validate(" work "), profile.ErrDuplicateName)
}

func TestKeyPathValidator(t *testing.T) {
	key := filepath.Join(t.TempDir(), "id_work")
	require.NoError(t, os.WriteFile(key, []byte("key"), 0600))

	assert.NoError(t, KeyPathValidator(key))
	assert.NoError(t, KeyPathValidator(" "+key+" "))
	assert.Error(t, KeyPathValidator(""))
	assert.ErrorIs(t, KeyPathValidator(key+".missing"), keys.ErrKeyNotFound)
}
