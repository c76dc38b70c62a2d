// Package crypto implements the backup-key derivation pipeline used by bakkey.
//
// Contents
//
//   - Generic bit regrouping beneath bech32 (ConvertBits)
//   - BIP39 mnemonic decode over the canonical English list, plus encode via
//     go-bip39 (MnemonicToEntropy, EntropyToMnemonic, ParseMnemonic)
//   - Age secret-key encoding of raw entropy (IdentityFromBytes)
//   - Recipient derivation over filippo.io/age (AgeDeriver, EntropyToAgeRecipient)
//   - Age encryption to backup recipients (Encrypt, Decrypt)
//   - A random source with an explicit insecure fallback (RandomSource)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// MnemonicToEntropy does not verify the BIP39 checksum. Any sequence of valid
// wordlist entries decodes, and a mistyped word that is still in the list
// yields different entropy rather than an error. CheckMnemonic performs the
// strict check for callers that want it. Changing the default would change
// which phrases existing users can recover with.
//
// A 16-byte entropy is right-aligned in a zeroed 32-byte buffer before it is
// encoded as an age identity. Identities already in the field depend on this
// layout.
package crypto
