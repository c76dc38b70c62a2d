package keyring_test

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"strings"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakkey/internal/crypto"
	"bakkey/internal/domain"
	"bakkey/internal/services/backupkey"
	"bakkey/internal/services/keyring"
	"bakkey/internal/store"
)

const (
	vectorPhrase    = "stay local melt rude evoke pause input kite area sphere mango quote"
	vectorRecipient = domain.AgeRecipient("age1f8ygkw8sqtucpj78lq4mund4gjsaq3zpfc9rmm4sngkhmccmgfpsuj7vzw")
	zeroRecipient   = domain.AgeRecipient("age19ljhmg68e43yx9fgm2k9lwefquc0la5y4lzvlshdjzv47kxt8d6qr9vf4p")
	seqRecipient    = domain.AgeRecipient("age13aqvttdk3ujkyjh9kg2w5an6dmy5mq5a84a4uxk3hfhnugfc9p0sy5p2wh")
)

type fixture struct {
	ring    *keyring.Service
	backups *backupkey.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	backups := backupkey.New(crypto.AgeDeriver{}, rand.Reader, log)
	ring := keyring.New(store.NewKeyringFileStore(t.TempDir()), backups, log)

	tick := time.Unix(1_700_000_000, 0)
	ring.SetClock(func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	})
	return fixture{ring: ring, backups: backups}
}

func TestRegister_States(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	saved, err := f.ring.Register(ctx, domain.Registration{
		ID:       "hot",
		Key:      vectorRecipient,
		Mnemonic: crypto.ParseMnemonic(vectorPhrase),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.KeyStateSaved, saved.State)
	assert.Equal(t, domain.KeyID("hot"), saved.ID)
	assert.Len(t, saved.Fingerprint.String(), 20)

	imported, err := f.ring.Register(ctx, domain.Registration{Key: zeroRecipient})
	require.NoError(t, err)
	assert.Equal(t, domain.KeyStateImported, imported.State)
	assert.NotEmpty(t, imported.ID)

	list, err := f.ring.List()
	require.NoError(t, err)
	assert.Equal(t, []domain.KeyRecord{saved, imported}, list)
}

func TestRegister_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ring.Register(ctx, domain.Registration{Key: seqRecipient, Mnemonic: crypto.ParseMnemonic(vectorPhrase)})
	assert.ErrorIs(t, err, backupkey.ErrRecipientMismatch)

	_, err = f.ring.Register(ctx, domain.Registration{Key: "age1tooshort"})
	assert.ErrorIs(t, err, backupkey.ErrInvalidRecipient)

	// Structurally plausible but fails the bech32 checksum.
	bad := domain.AgeRecipient(strings.Replace(vectorRecipient.String(), "f8yg", "f8yh", 1))
	_, err = f.ring.Register(ctx, domain.Registration{Key: bad})
	assert.ErrorIs(t, err, crypto.ErrInvalidRecipient)

	_, err = f.ring.Register(ctx, domain.Registration{ID: "cold", Key: zeroRecipient})
	require.NoError(t, err)
	_, err = f.ring.Register(ctx, domain.Registration{Key: zeroRecipient})
	assert.ErrorIs(t, err, keyring.ErrKeyExists)
	_, err = f.ring.Register(ctx, domain.Registration{ID: "cold", Key: seqRecipient})
	assert.ErrorIs(t, err, keyring.ErrKeyExists)
}

func TestTrackConfirm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	key, err := f.backups.Generate(ctx)
	require.NoError(t, err)

	rec, err := f.ring.Track(key)
	require.NoError(t, err)
	assert.Equal(t, domain.KeyStateUnsaved, rec.State)

	_, err = f.ring.Confirm(ctx, rec.ID, crypto.ParseMnemonic(vectorPhrase))
	assert.ErrorIs(t, err, backupkey.ErrRecipientMismatch)

	confirmed, err := f.ring.Confirm(ctx, rec.ID, key.Mnemonic)
	require.NoError(t, err)
	assert.Equal(t, domain.KeyStateSaved, confirmed.State)

	_, err = f.ring.Confirm(ctx, rec.ID, key.Mnemonic)
	assert.ErrorIs(t, err, keyring.ErrAlreadyConfirmed)
	_, err = f.ring.Confirm(ctx, "missing", key.Mnemonic)
	assert.ErrorIs(t, err, keyring.ErrKeyNotFound)
}

func TestLookupRemove(t *testing.T) {
	f := newFixture(t)
	rec, err := f.ring.Register(context.Background(), domain.Registration{Key: zeroRecipient})
	require.NoError(t, err)

	got, ok, err := f.ring.Lookup(zeroRecipient)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec, got)

	require.NoError(t, f.ring.Remove(rec.ID))
	assert.ErrorIs(t, f.ring.Remove(rec.ID), keyring.ErrKeyNotFound)

	_, ok, err = f.ring.Lookup(zeroRecipient)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ring.Register(ctx, domain.Registration{ID: "hot", Key: vectorRecipient})
	require.NoError(t, err)
	_, err = f.ring.Register(ctx, domain.Registration{ID: "cold", Key: zeroRecipient})
	require.NoError(t, err)
	_, err = f.ring.Track(domain.BackupKey{AgeRecipient: seqRecipient})
	require.NoError(t, err)

	out, err := f.ring.Export(keyring.FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, `[backup]
[[backup.bak]]
id = 'hot'
key = '`+vectorRecipient.String()+`'

[[backup.bak]]
id = 'cold'
key = '`+zeroRecipient.String()+`'
`, string(out))

	out, err = f.ring.Export(keyring.FormatJSON)
	require.NoError(t, err)
	var cfg domain.BackupConfig
	require.NoError(t, json.Unmarshal(out, &cfg))
	assert.Equal(t, []domain.AgeRecipient{vectorRecipient, zeroRecipient}, cfg.Backup.Bak.Keys())

	out, err = f.ring.Export(keyring.FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(out), "id: cold")

	_, err = f.ring.Export("xml")
	assert.ErrorIs(t, err, keyring.ErrUnknownFormat)
}
