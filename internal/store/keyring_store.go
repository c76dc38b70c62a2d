package store

import (
	"path/filepath"
	"sort"
	"sync"

	"bakkey/internal/domain"
)

const keyringFilename = "keyring.json"

// KeyringFileStore persists registered backup keys as a JSON map keyed by id.
type KeyringFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewKeyringFileStore returns a KeyringFileStore rooted at dir.
func NewKeyringFileStore(dir string) *KeyringFileStore {
	return &KeyringFileStore{dir: dir}
}

// SaveKey inserts or replaces the record with the same id.
func (s *KeyringFileStore) SaveKey(record domain.KeyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, keyringFilename)
	m := map[domain.KeyID]domain.KeyRecord{}
	if err := readJSON(path, &m); err != nil {
		return err
	}
	m[record.ID] = record
	return writeJSON(path, m, 0o600)
}

// LoadKeys returns every record, oldest first.
func (s *KeyringFileStore) LoadKeys() ([]domain.KeyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := map[domain.KeyID]domain.KeyRecord{}
	if err := readJSON(filepath.Join(s.dir, keyringFilename), &m); err != nil {
		return nil, err
	}

	out := make([]domain.KeyRecord, 0, len(m))
	for _, r := range m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedUTC != out[j].CreatedUTC {
			return out[i].CreatedUTC < out[j].CreatedUTC
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DeleteKey removes a record by id and reports whether it existed.
func (s *KeyringFileStore) DeleteKey(id domain.KeyID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, keyringFilename)
	m := map[domain.KeyID]domain.KeyRecord{}
	if err := readJSON(path, &m); err != nil {
		return false, err
	}
	if _, ok := m[id]; !ok {
		return false, nil
	}
	delete(m, id)
	return true, writeJSON(path, m, 0o600)
}

// Compile-time assertion that KeyringFileStore implements domain.KeyringStore.
var _ domain.KeyringStore = (*KeyringFileStore)(nil)
