package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"bakkey/internal/util/memzero"
)

// envelopeVersion is written into every sealed file.
const envelopeVersion = 1

// purposePanelIdentity labels the sealed panel identity file. It is bound into
// the AEAD additional data, so a blob sealed for another purpose never opens
// as an identity.
const purposePanelIdentity = "bakkey/panel-identity/v1"

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or the
	// sealed file has been modified.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted identity")
	// ErrWrongPurpose is returned when a sealed file was written for something else.
	ErrWrongPurpose = errors.New("sealed file has a different purpose")
)

// kdfParams are the scrypt tunables and salt recorded with each envelope.
type kdfParams struct {
	N    int    `json:"n"`
	R    int    `json:"r"`
	P    int    `json:"p"`
	Salt []byte `json:"salt"`
}

func defaultKDF() kdfParams { return kdfParams{N: 1 << 15, R: 8, P: 1} }

// envelope is the on-disk JSON form of a passphrase-sealed secret.
type envelope struct {
	Version    int       `json:"version"`
	Purpose    string    `json:"purpose"`
	KDF        kdfParams `json:"kdf"`
	Nonce      []byte    `json:"nonce"`
	Ciphertext []byte    `json:"ciphertext"`
}

// additionalData binds the header fields an attacker could swap.
func (e *envelope) additionalData() []byte {
	ad := make([]byte, 0, len(e.Purpose)+1+len(e.KDF.Salt))
	ad = append(ad, e.Purpose...)
	ad = append(ad, 0)
	return append(ad, e.KDF.Salt...)
}

func (e *envelope) key(passphrase string) ([]byte, error) {
	return scrypt.Key([]byte(passphrase), e.KDF.Salt, e.KDF.N, e.KDF.R, e.KDF.P, chacha20poly1305.KeySize)
}

// sealEnvelope encrypts raw under a key derived from passphrase with
// XChaCha20-Poly1305 and a fresh salt and nonce.
func sealEnvelope(purpose, passphrase string, raw []byte, kdf kdfParams) ([]byte, error) {
	env := envelope{
		Version: envelopeVersion,
		Purpose: purpose,
		KDF:     kdf,
		Nonce:   make([]byte, chacha20poly1305.NonceSizeX),
	}
	env.KDF.Salt = make([]byte, 16)
	if _, err := rand.Read(env.KDF.Salt); err != nil {
		return nil, err
	}
	if _, err := rand.Read(env.Nonce); err != nil {
		return nil, err
	}

	key, err := env.key(passphrase)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	env.Ciphertext = aead.Seal(nil, env.Nonce, raw, env.additionalData())
	return json.Marshal(env)
}

// openEnvelope reverses sealEnvelope. purpose must match the sealed label.
func openEnvelope(purpose, passphrase string, b []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode sealed file: %w", err)
	}
	if env.Version != envelopeVersion {
		return nil, fmt.Errorf("unsupported sealed file version %d", env.Version)
	}
	if env.Purpose != purpose {
		return nil, fmt.Errorf("%w: %q", ErrWrongPurpose, env.Purpose)
	}
	if len(env.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, ErrWrongPassphrase
	}

	key, err := env.key(passphrase)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, env.Nonce, env.Ciphertext, env.additionalData())
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}
