package types

import "strings"

// Entropy is the raw key material behind a backup key.
// 16 bytes back a 12-word mnemonic, 32 bytes back a 24-word one.
type Entropy []byte

// Mnemonic is an ordered list of lowercase BIP39 English words.
type Mnemonic []string

// String joins the words with single spaces.
func (m Mnemonic) String() string { return strings.Join(m, " ") }

// AgeIdentity is an upper-case "AGE-SECRET-KEY-1..." secret key string.
type AgeIdentity string

// String returns the string form of the identity.
func (i AgeIdentity) String() string { return string(i) }

// AgeRecipient is an "age1..." public key string.
type AgeRecipient string

// String returns the string form of the recipient.
func (r AgeRecipient) String() string { return string(r) }

// ShortID returns the first 32 characters of the recipient, the prefix used to
// name per-key objects in backup storage.
func (r AgeRecipient) ShortID() string {
	if len(r) > 32 {
		return string(r[:32])
	}
	return string(r)
}
