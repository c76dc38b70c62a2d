// Package identity manages the panel's own age transport identity.
//
// Clients encrypt a recovery phrase to the panel's recipient before sending
// it for a restore, so the phrase never crosses the wire in the clear. The
// identity is created on first unlock, sealed with the operator passphrase
// via the domain.IdentityStore, and held in memory while the daemon runs.
package identity
