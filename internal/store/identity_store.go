package store

import (
	"path/filepath"
	"sync"

	"bakkey/internal/domain"
	"bakkey/internal/util/memzero"
)

const identityFilename = "panel_identity.age.enc"

// IdentityFileStore keeps the panel's age identity sealed on disk.
type IdentityFileStore struct {
	dir string
	kdf kdfParams
	mu  sync.Mutex
}

// NewIdentityFileStore returns an IdentityFileStore rooted at dir.
func NewIdentityFileStore(dir string) *IdentityFileStore {
	return &IdentityFileStore{dir: dir, kdf: defaultKDF()}
}

// SaveIdentity seals id with passphrase and replaces any previous identity.
func (s *IdentityFileStore) SaveIdentity(passphrase string, id domain.AgeIdentity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := []byte(id.String())
	defer memzero.Zero(raw)

	ct, err := sealEnvelope(purposePanelIdentity, passphrase, raw, s.kdf)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, identityFilename), ct, 0o600)
}

// LoadIdentity opens the sealed identity. ok is false when none has been saved.
func (s *IdentityFileStore) LoadIdentity(passphrase string) (domain.AgeIdentity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(filepath.Join(s.dir, identityFilename))
	if err != nil {
		return "", false, err
	}
	if b == nil {
		return "", false, nil
	}
	pt, err := openEnvelope(purposePanelIdentity, passphrase, b)
	if err != nil {
		return "", false, err
	}
	defer memzero.Zero(pt)
	return domain.AgeIdentity(pt), true, nil
}

// Compile-time assertion that IdentityFileStore implements domain.IdentityStore.
var _ domain.IdentityStore = (*IdentityFileStore)(nil)
