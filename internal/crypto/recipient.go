package crypto

import (
	"context"
	"fmt"
	"strings"

	"filippo.io/age"
	"github.com/cosmos/btcutil/bech32"

	"bakkey/internal/domain"
)

const (
	recipientHRP          = "age"
	recipientPrefix       = "age1"
	minRecipientLength    = 60
	recipientPublicKeyLen = 32
)

// AgeDeriver derives X25519 recipients with filippo.io/age.
type AgeDeriver struct{}

// DeriveRecipient returns the public recipient of identity. Parse errors from
// age are returned as they are.
func (AgeDeriver) DeriveRecipient(
	ctx context.Context,
	identity domain.AgeIdentity,
) (domain.AgeRecipient, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id, err := age.ParseX25519Identity(identity.String())
	if err != nil {
		return "", err
	}
	return domain.AgeRecipient(id.Recipient().String()), nil
}

// EntropyToAgeRecipient encodes entropy as an identity and derives its recipient.
func EntropyToAgeRecipient(
	ctx context.Context,
	deriver domain.RecipientDeriver,
	entropy domain.Entropy,
) (domain.AgeRecipient, error) {
	identity, err := IdentityFromBytes(entropy)
	if err != nil {
		return "", err
	}
	return deriver.DeriveRecipient(ctx, identity)
}

// ValidateAgeRecipient is a cheap structural filter for pasted recipients. It
// does not check the bech32 checksum or the curve point; use
// RecipientPublicKey for that.
func ValidateAgeRecipient(s string) bool {
	return strings.HasPrefix(s, recipientPrefix) && len(s) >= minRecipientLength
}

// RecipientPublicKey decodes an age1 recipient to its 32-byte Curve25519 point.
func RecipientPublicKey(recipient domain.AgeRecipient) ([]byte, error) {
	hrp, data, err := bech32.Decode(recipient.String(), 90)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}
	if hrp != recipientHRP {
		return nil, fmt.Errorf("%w: unexpected prefix %q", ErrInvalidRecipient, hrp)
	}
	pub, err := ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}
	if len(pub) != recipientPublicKeyLen {
		return nil, fmt.Errorf("%w: public key is %d bytes", ErrInvalidRecipient, len(pub))
	}
	return pub, nil
}

// Compile-time assertion that AgeDeriver implements domain.RecipientDeriver.
var _ domain.RecipientDeriver = AgeDeriver{}
