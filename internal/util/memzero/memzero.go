// Package memzero wipes secret material held in byte slices.
package memzero

import "github.com/awnumar/memguard"

// Zero overwrites b with zeros. Nil and empty slices are ignored.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	memguard.WipeBytes(b)
}
