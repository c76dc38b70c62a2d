package interfaces

import (
	"context"

	domaintypes "bakkey/internal/domain/types"
)

// RecipientDeriver maps an age secret key to its public recipient.
type RecipientDeriver interface {
	DeriveRecipient(
		ctx context.Context,
		identity domaintypes.AgeIdentity,
	) (domaintypes.AgeRecipient, error)
}

// BackupKeyService generates backup keys and checks re-entered phrases.
type BackupKeyService interface {
	Generate(ctx context.Context) (domaintypes.BackupKey, error)
	WordsToAgeRecipient(
		ctx context.Context,
		words domaintypes.Mnemonic,
	) (domaintypes.AgeRecipient, error)
	Identity(words domaintypes.Mnemonic) (domaintypes.AgeIdentity, error)
	Verify(
		ctx context.Context,
		words domaintypes.Mnemonic,
		recipient domaintypes.AgeRecipient,
	) error
	Import(recipient domaintypes.AgeRecipient) (domaintypes.BackupKey, error)
}

// PanelIdentityService owns the panel's age transport identity.
type PanelIdentityService interface {
	Unlock(ctx context.Context, passphrase string) (domaintypes.AgeRecipient, error)
	Recipient() (domaintypes.AgeRecipient, error)
	OpenPhrase(encrypted string) (domaintypes.Mnemonic, error)
}

// KeyringService tracks registered backup recipients.
type KeyringService interface {
	Register(
		ctx context.Context,
		reg domaintypes.Registration,
	) (domaintypes.KeyRecord, error)
	Track(key domaintypes.BackupKey) (domaintypes.KeyRecord, error)
	Confirm(
		ctx context.Context,
		id domaintypes.KeyID,
		words domaintypes.Mnemonic,
	) (domaintypes.KeyRecord, error)
	List() ([]domaintypes.KeyRecord, error)
	Lookup(recipient domaintypes.AgeRecipient) (domaintypes.KeyRecord, bool, error)
	Remove(id domaintypes.KeyID) error
	Export(format string) ([]byte, error)
}
