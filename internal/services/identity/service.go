package identity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"unicode"

	"github.com/sirupsen/logrus"

	"bakkey/internal/crypto"
	"bakkey/internal/domain"
	"bakkey/internal/util/memzero"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12

	panelKeySize = 32
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
	// ErrLocked is returned when the identity is used before Unlock.
	ErrLocked = errors.New("panel identity is locked")
	// ErrUndecryptablePhrase is returned when an encrypted phrase cannot be opened.
	ErrUndecryptablePhrase = errors.New("encrypted phrase cannot be decrypted by the panel identity")
)

// Service holds the unlocked panel identity.
type Service struct {
	store  domain.IdentityStore
	random io.Reader
	log    logrus.FieldLogger

	mu        sync.RWMutex
	identity  domain.AgeIdentity
	recipient domain.AgeRecipient
}

// New returns an identity service backed by the given store. random supplies
// the key material for a first-run identity.
func New(s domain.IdentityStore, random io.Reader, log logrus.FieldLogger) *Service {
	return &Service{store: s, random: random, log: log}
}

// Unlock loads the sealed identity, creating it on first use, and returns its
// recipient. The passphrase policy is only enforced when creating.
func (s *Service) Unlock(ctx context.Context, passphrase string) (domain.AgeRecipient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok, err := s.store.LoadIdentity(passphrase)
	if err != nil {
		return "", err
	}
	if !ok {
		if id, err = s.create(passphrase); err != nil {
			return "", err
		}
	}

	recipient, err := crypto.AgeDeriver{}.DeriveRecipient(ctx, id)
	if err != nil {
		return "", err
	}
	s.identity, s.recipient = id, recipient
	s.log.WithField("recipient", recipient.ShortID()).Info("panel identity unlocked")
	return recipient, nil
}

func (s *Service) create(passphrase string) (domain.AgeIdentity, error) {
	if !isSecurePassphrase(passphrase) {
		return "", ErrWeakPassphrase
	}

	key := make([]byte, panelKeySize)
	defer memzero.Zero(key)
	if _, err := io.ReadFull(s.random, key); err != nil {
		return "", err
	}
	id, err := crypto.IdentityFromBytes(key)
	if err != nil {
		return "", err
	}
	if err := s.store.SaveIdentity(passphrase, id); err != nil {
		return "", err
	}
	s.log.Info("panel identity created")
	return id, nil
}

// Recipient returns the recipient clients encrypt recovery phrases to.
func (s *Service) Recipient() (domain.AgeRecipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == "" {
		return "", ErrLocked
	}
	return s.recipient, nil
}

// Fingerprint returns a short fingerprint of the panel recipient.
func (s *Service) Fingerprint() (domain.Fingerprint, error) {
	r, err := s.Recipient()
	if err != nil {
		return "", err
	}
	return crypto.RecipientFingerprint(r)
}

// OpenPhrase decrypts a base64 age ciphertext addressed to the panel and
// returns the normalised mnemonic inside it.
func (s *Service) OpenPhrase(encrypted string) (domain.Mnemonic, error) {
	s.mu.RLock()
	id := s.identity
	s.mu.RUnlock()
	if id == "" {
		return nil, ErrLocked
	}

	ct, err := crypto.UnB64(encrypted)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecryptablePhrase, err)
	}
	pt, err := crypto.Decrypt(id, ct)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecryptablePhrase, err)
	}
	defer memzero.Zero(pt)
	return crypto.ParseMnemonic(string(pt)), nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.PanelIdentityService.
var _ domain.PanelIdentityService = (*Service)(nil)
