// Package store provides file-based persistence for bakkeyd.
//
// It contains concrete implementations of the domain storage interfaces. All
// methods are concurrency-safe via internal locking and every write goes
// through a temp file and rename. Files live under the configured home
// directory.
//
// The package includes stores for:
//   - The panel's age transport identity, sealed with scrypt and
//     ChaCha20-Poly1305 (IdentityFileStore)
//   - Registered backup recipients (KeyringFileStore)
//
// Neither store ever sees a backup mnemonic or its entropy.
package store
