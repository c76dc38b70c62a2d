package crypto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"

	"bakkey/internal/domain"
)

const bitsPerWord = 11

// MnemonicToEntropy unpacks a 12 or 24 word phrase into its entropy.
//
// Word indices are packed MSB first and the result is cut to
// len(words)/3*4 bytes, discarding the checksum bits without checking them.
func MnemonicToEntropy(words domain.Mnemonic) (domain.Entropy, error) {
	if len(words) != 12 && len(words) != 24 {
		return nil, ErrInvalidWordCount
	}

	out := make([]byte, 0, (len(words)*bitsPerWord+7)/8)
	var (
		rem    uint32
		offset uint
	)
	for _, w := range words {
		idx, ok := bip39.GetWordIndex(w)
		if !ok {
			return nil, &InvalidWordError{Word: w}
		}
		rem |= uint32(idx) << (32 - bitsPerWord) >> offset
		offset += bitsPerWord
		for offset >= 8 {
			out = append(out, byte(rem>>24))
			rem <<= 8
			offset -= 8
		}
	}
	if offset != 0 {
		out = append(out, byte(rem>>24))
	}

	return domain.Entropy(out[:len(words)/3*4]), nil
}

// EntropyToMnemonic encodes 16 or 32 bytes as a checksummed BIP39 phrase.
func EntropyToMnemonic(entropy domain.Entropy) (domain.Mnemonic, error) {
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, err
	}
	return domain.Mnemonic(strings.Fields(phrase)), nil
}

// ParseMnemonic normalises a phrase typed or pasted by a user: surrounding and
// repeated whitespace is dropped and words are lower-cased.
func ParseMnemonic(phrase string) domain.Mnemonic {
	return domain.Mnemonic(strings.Fields(strings.ToLower(phrase)))
}

// CheckMnemonic is the strict counterpart of MnemonicToEntropy: it also
// rejects phrases whose BIP39 checksum does not match.
func CheckMnemonic(words domain.Mnemonic) error {
	if _, err := MnemonicToEntropy(words); err != nil {
		return err
	}
	if _, err := bip39.EntropyFromMnemonic(words.String()); err != nil {
		if errors.Is(err, bip39.ErrChecksumIncorrect) {
			return ErrChecksumMismatch
		}
		return fmt.Errorf("check mnemonic: %w", err)
	}
	return nil
}
