// Package backupkey generates treasury backup keys and checks that a user
// wrote their recovery phrase down correctly.
//
// A backup key is a 12-word BIP39 phrase and the age recipient derived from
// the same 16 bytes of entropy. Generate shows both once; WordsToAgeRecipient
// and Verify let the user re-enter the words and confirm they reproduce the
// recipient. Nothing here persists a phrase or its entropy.
package backupkey
