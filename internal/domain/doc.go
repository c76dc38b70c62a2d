// Package domain defines the data models and interfaces shared across bakkey.
// It contains plain types (keys, keyring records, HTTP bodies) and contracts
// (interfaces) only.
package domain
