package types

import "encoding/json"

// BackupKey is what a user is shown when a key is generated, or what remains
// when a recipient is imported without its phrase (Mnemonic is then nil).
type BackupKey struct {
	Mnemonic     Mnemonic     `json:"mnemonic,omitempty"`
	AgeRecipient AgeRecipient `json:"age_recipient"`
}

// Bak is one backup recipient as it appears in treasury configuration.
type Bak struct {
	ID  string       `json:"id" toml:"id" yaml:"id"`
	Key AgeRecipient `json:"key" toml:"key" yaml:"key"`
}

// BackupSection is the [backup] table of a treasury configuration file.
type BackupSection struct {
	Bak BakArray `json:"bak" toml:"bak" yaml:"bak"`
}

// BackupConfig wraps BackupSection so it encodes under a "backup" key.
type BackupConfig struct {
	Backup BackupSection `json:"backup" toml:"backup" yaml:"backup"`
}

// BakArray is the backup recipient list. Older configurations carry a single
// recipient string instead of a list.
type BakArray []Bak

// NewBakArrayFromStrings wraps bare recipient strings.
func NewBakArrayFromStrings(keys ...string) BakArray {
	baks := make(BakArray, len(keys))
	for i := range keys {
		baks[i] = Bak{Key: AgeRecipient(keys[i])}
	}
	return baks
}

// UnmarshalJSON accepts either a recipient string or an array of objects.
func (b *BakArray) UnmarshalJSON(data []byte) error {
	var key string
	if err := json.Unmarshal(data, &key); err == nil {
		*b = NewBakArrayFromStrings(key)
		return nil
	}

	var aux []Bak
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*b = aux
	return nil
}

// Keys returns the recipients in order.
func (b BakArray) Keys() []AgeRecipient {
	out := make([]AgeRecipient, len(b))
	for i := range b {
		out[i] = b[i].Key
	}
	return out
}

// KeyRecord is a registered backup key.
type KeyRecord struct {
	ID          KeyID        `json:"id"`
	Key         AgeRecipient `json:"key"`
	State       KeyState     `json:"state"`
	Fingerprint Fingerprint  `json:"fingerprint"`
	CreatedUTC  int64        `json:"created_utc"`
}

// Bak projects the record onto its configuration form.
func (r KeyRecord) Bak() Bak {
	return Bak{Key: r.Key, ID: r.ID.String()}
}

// Registration asks for a recipient to be added to the keyring. A non-empty
// Mnemonic must reproduce Key; the record is then marked saved.
type Registration struct {
	ID       KeyID        `json:"id,omitempty"`
	Key      AgeRecipient `json:"key"`
	Mnemonic Mnemonic     `json:"mnemonic,omitempty"`
}

// RestoreResult reports which recipient an encrypted recovery phrase maps to.
type RestoreResult struct {
	AgeRecipient AgeRecipient `json:"age_recipient"`
	Registered   bool         `json:"registered"`
	KeyID        KeyID        `json:"key_id,omitempty"`
}
