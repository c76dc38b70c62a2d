package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakkey/internal/domain"
	"bakkey/internal/store"
)

const testIdentity = domain.AgeIdentity("AGE-SECRET-KEY-1QQQQQQQQQQQQQQQQQQQQQQQQQR20Q632ME6WZSKA90VSKK3WRNVQ4F3X6C")

func TestIdentity_SaveLoad_OK(t *testing.T) {
	home := t.TempDir()
	var ids domain.IdentityStore = store.NewIdentityFileStore(home)

	require.NoError(t, ids.SaveIdentity("pass", testIdentity))

	got, ok, err := ids.LoadIdentity("pass")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testIdentity, got)

	raw, err := os.ReadFile(filepath.Join(home, "panel_identity.age.enc"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "AGE-SECRET-KEY")
}

func TestIdentity_Missing(t *testing.T) {
	ids := store.NewIdentityFileStore(filepath.Join(t.TempDir(), "not", "yet"))
	_, ok, err := ids.LoadIdentity("pass")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIdentity_WrongPassphrase_Fails(t *testing.T) {
	ids := store.NewIdentityFileStore(t.TempDir())
	require.NoError(t, ids.SaveIdentity("correct", testIdentity))

	_, _, err := ids.LoadIdentity("wrong")
	assert.ErrorIs(t, err, store.ErrWrongPassphrase)
}

func TestIdentity_CreatesHome(t *testing.T) {
	home := filepath.Join(t.TempDir(), "nested", "home")
	ids := store.NewIdentityFileStore(home)
	require.NoError(t, ids.SaveIdentity("pass", testIdentity))

	fi, err := os.Stat(filepath.Join(home, "panel_identity.age.enc"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestKeyring_SaveLoadDelete(t *testing.T) {
	var ks domain.KeyringStore = store.NewKeyringFileStore(t.TempDir())

	keys, err := ks.LoadKeys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	second := domain.KeyRecord{ID: "b", Key: "age1second", State: domain.KeyStateImported, CreatedUTC: 20}
	first := domain.KeyRecord{ID: "a", Key: "age1first", State: domain.KeyStateSaved, CreatedUTC: 10}
	require.NoError(t, ks.SaveKey(second))
	require.NoError(t, ks.SaveKey(first))

	keys, err = ks.LoadKeys()
	require.NoError(t, err)
	assert.Equal(t, []domain.KeyRecord{first, second}, keys)

	second.State = domain.KeyStateSaved
	require.NoError(t, ks.SaveKey(second))
	keys, err = ks.LoadKeys()
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, domain.KeyStateSaved, keys[1].State)

	ok, err := ks.DeleteKey("a")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = ks.DeleteKey("a")
	require.NoError(t, err)
	assert.False(t, ok)

	keys, err = ks.LoadKeys()
	require.NoError(t, err)
	assert.Equal(t, []domain.KeyRecord{second}, keys)
}

func TestKeyring_CorruptFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, "keyring.json"), []byte("{"), 0o600))

	_, err := store.NewKeyringFileStore(home).LoadKeys()
	assert.Error(t, err)
}
