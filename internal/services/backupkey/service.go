package backupkey

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"bakkey/internal/crypto"
	"bakkey/internal/domain"
	"bakkey/internal/util/memzero"
)

var (
	// ErrRecipientMismatch is returned when re-entered words derive a different recipient.
	ErrRecipientMismatch = errors.New("mnemonic does not match backup recipient")
	// ErrInvalidRecipient is returned by Import for strings that are not age recipients.
	ErrInvalidRecipient = crypto.ErrInvalidRecipient
)

// Service is the backup-key façade over the crypto pipeline.
type Service struct {
	deriver        domain.RecipientDeriver
	random         io.Reader
	log            logrus.FieldLogger
	verifyChecksum bool
}

// Option configures a Service.
type Option func(*Service)

// WithChecksum makes decoding reject phrases with a wrong BIP39 checksum.
// Off by default so that every phrase accepted so far still recovers.
func WithChecksum(on bool) Option { return func(s *Service) { s.verifyChecksum = on } }

// New returns a Service that derives recipients with deriver and draws
// entropy from random.
func New(
	deriver domain.RecipientDeriver,
	random io.Reader,
	log logrus.FieldLogger,
	opts ...Option,
) *Service {
	s := &Service{deriver: deriver, random: random, log: log}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Generate draws fresh entropy once and returns the phrase and recipient
// derived from it.
func (s *Service) Generate(ctx context.Context) (domain.BackupKey, error) {
	entropy := make([]byte, crypto.EntropySize)
	defer memzero.Zero(entropy)

	if _, err := io.ReadFull(s.random, entropy); err != nil {
		return domain.BackupKey{}, err
	}

	words, err := crypto.EntropyToMnemonic(entropy)
	if err != nil {
		return domain.BackupKey{}, err
	}
	recipient, err := crypto.EntropyToAgeRecipient(ctx, s.deriver, entropy)
	if err != nil {
		return domain.BackupKey{}, err
	}

	s.log.WithField("recipient", recipient.ShortID()).Info("backup key generated")
	return domain.BackupKey{Mnemonic: words, AgeRecipient: recipient}, nil
}

// WordsToAgeRecipient derives the recipient a phrase belongs to.
func (s *Service) WordsToAgeRecipient(
	ctx context.Context,
	words domain.Mnemonic,
) (domain.AgeRecipient, error) {
	entropy, err := s.decode(words)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(entropy)
	return crypto.EntropyToAgeRecipient(ctx, s.deriver, entropy)
}

// Identity returns the age secret key for a phrase, for decrypting backups.
func (s *Service) Identity(words domain.Mnemonic) (domain.AgeIdentity, error) {
	entropy, err := s.decode(words)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(entropy)
	return crypto.IdentityFromBytes(entropy)
}

// Verify checks that words reproduce recipient.
func (s *Service) Verify(
	ctx context.Context,
	words domain.Mnemonic,
	recipient domain.AgeRecipient,
) error {
	got, err := s.WordsToAgeRecipient(ctx, words)
	if err != nil {
		return err
	}
	if got != recipient {
		s.log.WithField("recipient", recipient.ShortID()).Warn("backup key verification failed")
		return ErrRecipientMismatch
	}
	return nil
}

// Import accepts a recipient pasted without its phrase.
func (s *Service) Import(recipient domain.AgeRecipient) (domain.BackupKey, error) {
	if !ValidateAgeRecipient(recipient.String()) {
		return domain.BackupKey{}, ErrInvalidRecipient
	}
	return domain.BackupKey{AgeRecipient: recipient}, nil
}

// ValidateAgeRecipient is a structural check only; see crypto.ValidateAgeRecipient.
func ValidateAgeRecipient(s string) bool { return crypto.ValidateAgeRecipient(s) }

func (s *Service) decode(words domain.Mnemonic) (domain.Entropy, error) {
	if s.verifyChecksum {
		if err := crypto.CheckMnemonic(words); err != nil {
			return nil, err
		}
	}
	return crypto.MnemonicToEntropy(words)
}

// Compile-time assertion that Service implements domain.BackupKeyService.
var _ domain.BackupKeyService = (*Service)(nil)
