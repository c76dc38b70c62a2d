package types

// KeyID identifies a registered backup key.
type KeyID string

// String returns the string form of the identifier.
func (id KeyID) String() string { return string(id) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// KeyState tracks where a backup key is in its lifecycle.
type KeyState string

const (
	// KeyStateUnsaved is a freshly generated key whose phrase has not been
	// confirmed by re-entry.
	KeyStateUnsaved KeyState = "unsaved"
	// KeyStateSaved is a key whose phrase was re-entered and reproduced the recipient.
	KeyStateSaved KeyState = "saved"
	// KeyStateImported is a recipient registered without a phrase.
	KeyStateImported KeyState = "imported"
)

// Valid reports whether s is one of the known states.
func (s KeyState) Valid() bool {
	switch s {
	case KeyStateUnsaved, KeyStateSaved, KeyStateImported:
		return true
	}
	return false
}
