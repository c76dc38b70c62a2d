package crypto

import (
	"strings"

	"github.com/cosmos/btcutil/bech32"

	"bakkey/internal/domain"
	"bakkey/internal/util/memzero"
)

const identityHRP = "age-secret-key-"

// IdentityFromBytes encodes entropy as an age X25519 secret key.
//
// 16 bytes occupy the second half of an otherwise zero 32-byte key; 32 bytes
// are used as they are.
func IdentityFromBytes(entropy domain.Entropy) (domain.AgeIdentity, error) {
	var key [32]byte
	switch len(entropy) {
	case 16:
		copy(key[16:], entropy)
	case 32:
		copy(key[:], entropy)
	default:
		return "", ErrInvalidEntropyLength
	}
	defer memzero.Zero(key[:])

	data, err := ConvertBits(key[:], 8, 5, true)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(data)

	s, err := bech32.Encode(identityHRP, data)
	if err != nil {
		return "", err
	}
	return domain.AgeIdentity(strings.ToUpper(s)), nil
}
