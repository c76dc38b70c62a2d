package crypto

import (
	"bytes"
	"fmt"
	"io"

	"filippo.io/age"
	"filippo.io/age/armor"

	"bakkey/internal/domain"
)

// Encrypt seals plaintext to every recipient. With armored set the output is
// PEM-style ASCII armor.
func Encrypt(
	recipients []domain.AgeRecipient,
	plaintext []byte,
	armored bool,
) ([]byte, error) {
	if len(recipients) == 0 {
		return nil, fmt.Errorf("%w: no recipients", ErrInvalidRecipient)
	}
	rs := make([]age.Recipient, 0, len(recipients))
	for _, r := range recipients {
		parsed, err := age.ParseX25519Recipient(r.String())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
		}
		rs = append(rs, parsed)
	}

	var buf bytes.Buffer
	var dst io.Writer = &buf
	var aw io.WriteCloser
	if armored {
		aw = armor.NewWriter(&buf)
		dst = aw
	}

	w, err := age.Encrypt(dst, rs...)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	if aw != nil {
		if err := aw.Close(); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Decrypt opens ciphertext produced by Encrypt. Armored input is detected by
// its header.
func Decrypt(identity domain.AgeIdentity, ciphertext []byte) ([]byte, error) {
	id, err := age.ParseX25519Identity(identity.String())
	if err != nil {
		return nil, err
	}

	var src io.Reader = bytes.NewReader(ciphertext)
	if bytes.HasPrefix(bytes.TrimSpace(ciphertext), []byte(armor.Header)) {
		src = armor.NewReader(src)
	}

	r, err := age.Decrypt(src, id)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
