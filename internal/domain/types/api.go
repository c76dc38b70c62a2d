package types

// HTTP request and response bodies shared by bakkeyd and its client.

// HealthResponse is returned by GET /v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}

// GenerateResponse is returned by POST /v1/backup-keys/generate. KeyID is set
// when the key was tracked as unsaved.
type GenerateResponse struct {
	Mnemonic     Mnemonic     `json:"mnemonic"`
	AgeRecipient AgeRecipient `json:"age_recipient"`
	KeyID        KeyID        `json:"key_id,omitempty"`
}

// MnemonicRequest carries a phrase exactly as the user typed it.
type MnemonicRequest struct {
	Mnemonic string `json:"mnemonic"`
}

// RecipientResponse carries a single recipient.
type RecipientResponse struct {
	AgeRecipient AgeRecipient `json:"age_recipient"`
}

// ValidateRequest is the body of POST /v1/backup-keys/validate.
type ValidateRequest struct {
	AgeRecipient string `json:"age_recipient"`
}

// ValidateResponse reports the structural check result.
type ValidateResponse struct {
	Valid bool `json:"valid"`
}

// RegisterRequest is the body of POST /v1/backup-keys.
type RegisterRequest struct {
	ID       KeyID        `json:"id,omitempty"`
	Key      AgeRecipient `json:"key"`
	Mnemonic string       `json:"mnemonic,omitempty"`
}

// RestoreRequest carries a base64 age ciphertext of a recovery phrase,
// encrypted to the panel recipient.
type RestoreRequest struct {
	EncryptedMnemonicPhrase string `json:"encrypted_mnemonic_phrase"`
}

// KeyListResponse is returned by GET /v1/backup-keys.
type KeyListResponse struct {
	Keys []KeyRecord `json:"keys"`
}
