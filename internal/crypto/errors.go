package crypto

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWordCount is returned when a mnemonic is not 12 or 24 words.
	ErrInvalidWordCount = errors.New("mnemonic must have 12 or 24 words")
	// ErrInvalidWord matches any *InvalidWordError.
	ErrInvalidWord = errors.New("word not in BIP39 wordlist")
	// ErrInvalidInputValue is returned when a value does not fit the source bit width.
	ErrInvalidInputValue = errors.New("invalid input value for bit conversion")
	// ErrInvalidPadding is returned by strict bit conversion on a malformed tail.
	ErrInvalidPadding = errors.New("invalid padding in bit conversion")
	// ErrInvalidEntropyLength is returned for entropy that is neither 16 nor 32 bytes.
	ErrInvalidEntropyLength = errors.New("entropy must be 16 or 32 bytes")
	// ErrRandomSourceUnavailable is returned when no secure random source can be read.
	ErrRandomSourceUnavailable = errors.New("secure random source unavailable")
	// ErrChecksumMismatch is returned by CheckMnemonic when the BIP39 checksum is wrong.
	ErrChecksumMismatch = errors.New("mnemonic checksum mismatch")
	// ErrInvalidRecipient is returned when a string is not an age X25519 recipient.
	ErrInvalidRecipient = errors.New("invalid age recipient")
)

// InvalidWordError reports the first word that is not in the wordlist.
type InvalidWordError struct {
	Word string
}

func (e *InvalidWordError) Error() string {
	return fmt.Sprintf("invalid word %q: not in BIP39 wordlist", e.Word)
}

// Is reports whether target is ErrInvalidWord.
func (e *InvalidWordError) Is(target error) bool { return target == ErrInvalidWord }
