package interfaces

import domaintypes "bakkey/internal/domain/types"

// IdentityStore persists the panel's age identity, sealed with a passphrase.
type IdentityStore interface {
	SaveIdentity(passphrase string, id domaintypes.AgeIdentity) error
	LoadIdentity(passphrase string) (domaintypes.AgeIdentity, bool, error)
}

// KeyringStore persists registered backup keys.
type KeyringStore interface {
	SaveKey(record domaintypes.KeyRecord) error
	LoadKeys() ([]domaintypes.KeyRecord, error)
	DeleteKey(id domaintypes.KeyID) (bool, error)
}
