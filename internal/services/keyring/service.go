package keyring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"bakkey/internal/crypto"
	"bakkey/internal/domain"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

var (
	// ErrKeyNotFound is returned for an unknown key id.
	ErrKeyNotFound = errors.New("backup key not found")
	// ErrKeyExists is returned when the id or recipient is already registered.
	ErrKeyExists = errors.New("backup key already registered")
	// ErrAlreadyConfirmed is returned when confirming a key that is not unsaved.
	ErrAlreadyConfirmed = errors.New("backup key is not awaiting confirmation")
	// ErrUnknownFormat is returned by Export for an unsupported format.
	ErrUnknownFormat = errors.New("unknown export format")
)

// Service manages the registered backup keys.
type Service struct {
	store   domain.KeyringStore
	backups domain.BackupKeyService
	log     logrus.FieldLogger
	now     func() time.Time

	// mu serialises every read-check-write against the store.
	mu sync.Mutex
}

// New returns a keyring over store. backups re-derives recipients from
// mnemonics when a key is registered or confirmed with its phrase.
func New(
	store domain.KeyringStore,
	backups domain.BackupKeyService,
	log logrus.FieldLogger,
) *Service {
	return &Service{store: store, backups: backups, log: log, now: time.Now}
}

// Register adds a recipient. With a mnemonic, the words must reproduce the
// recipient and the record is saved; without one it is imported.
func (s *Service) Register(
	ctx context.Context,
	reg domain.Registration,
) (domain.KeyRecord, error) {
	state := domain.KeyStateImported
	if len(reg.Mnemonic) > 0 {
		if err := s.backups.Verify(ctx, reg.Mnemonic, reg.Key); err != nil {
			return domain.KeyRecord{}, err
		}
		state = domain.KeyStateSaved
	} else if _, err := s.backups.Import(reg.Key); err != nil {
		return domain.KeyRecord{}, err
	}
	return s.add(reg.ID, reg.Key, state)
}

// Track records a freshly generated key as unsaved.
func (s *Service) Track(key domain.BackupKey) (domain.KeyRecord, error) {
	return s.add("", key.AgeRecipient, domain.KeyStateUnsaved)
}

// Confirm moves an unsaved key to saved once words reproduce its recipient.
func (s *Service) Confirm(
	ctx context.Context,
	id domain.KeyID,
	words domain.Mnemonic,
) (domain.KeyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.get(id)
	if err != nil {
		return domain.KeyRecord{}, err
	}
	if rec.State != domain.KeyStateUnsaved {
		return domain.KeyRecord{}, ErrAlreadyConfirmed
	}
	if err := s.backups.Verify(ctx, words, rec.Key); err != nil {
		return domain.KeyRecord{}, err
	}

	rec.State = domain.KeyStateSaved
	if err := s.store.SaveKey(rec); err != nil {
		return domain.KeyRecord{}, err
	}
	s.log.WithFields(logrus.Fields{"id": rec.ID, "recipient": rec.Key.ShortID()}).Info("backup key confirmed")
	return rec, nil
}

func (s *Service) add(
	id domain.KeyID,
	key domain.AgeRecipient,
	state domain.KeyState,
) (domain.KeyRecord, error) {
	fp, err := crypto.RecipientFingerprint(key)
	if err != nil {
		return domain.KeyRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.LoadKeys()
	if err != nil {
		return domain.KeyRecord{}, err
	}
	if id == "" {
		id = domain.KeyID(uuid.NewString())
	}
	for _, r := range existing {
		if r.ID == id || r.Key == key {
			return domain.KeyRecord{}, fmt.Errorf("%w: %s", ErrKeyExists, r.ID)
		}
	}

	rec := domain.KeyRecord{
		ID:          id,
		Key:         key,
		State:       state,
		Fingerprint: fp,
		CreatedUTC:  s.now().UTC().Unix(),
	}
	if err := s.store.SaveKey(rec); err != nil {
		return domain.KeyRecord{}, err
	}
	s.log.WithFields(logrus.Fields{
		"id":        rec.ID,
		"recipient": key.ShortID(),
		"state":     state,
	}).Info("backup key registered")
	return rec, nil
}

// List returns every record, oldest first.
func (s *Service) List() ([]domain.KeyRecord, error) {
	return s.store.LoadKeys()
}

// Lookup finds the record for a recipient.
func (s *Service) Lookup(recipient domain.AgeRecipient) (domain.KeyRecord, bool, error) {
	records, err := s.store.LoadKeys()
	if err != nil {
		return domain.KeyRecord{}, false, err
	}
	for _, r := range records {
		if r.Key == recipient {
			return r, true, nil
		}
	}
	return domain.KeyRecord{}, false, nil
}

// Remove deletes a record by id.
func (s *Service) Remove(id domain.KeyID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.store.DeleteKey(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrKeyNotFound
	}
	s.log.WithField("id", id).Info("backup key removed")
	return nil
}

// Export renders saved and imported keys as a treasury backup section.
func (s *Service) Export(format string) ([]byte, error) {
	records, err := s.store.LoadKeys()
	if err != nil {
		return nil, err
	}

	var cfg domain.BackupConfig
	cfg.Backup.Bak = domain.BakArray{}
	for _, r := range records {
		if r.State == domain.KeyStateUnsaved {
			continue
		}
		cfg.Backup.Bak = append(cfg.Backup.Bak, r.Bak())
	}

	switch format {
	case FormatJSON, "":
		return json.MarshalIndent(cfg, "", "  ")
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func (s *Service) get(id domain.KeyID) (domain.KeyRecord, error) {
	records, err := s.store.LoadKeys()
	if err != nil {
		return domain.KeyRecord{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.KeyRecord{}, ErrKeyNotFound
}

// Compile-time assertion that Service implements domain.KeyringService.
var _ domain.KeyringService = (*Service)(nil)
