// Package pgp verifies detached signatures of source files against
// trusted keyrings, either via external GnuPG executables or via the
// internal OpenPGP implementation
package pgp

import (
	"fmt"
)

// Key is key in PGP representation
type Key string

// KeyFromUint64 converts openpgp uint64 into hex human-readable
func KeyFromUint64(key uint64) Key {
	return Key(fmt.Sprintf("%016X", key))
}

// KeyInfo is response from signature verification
type KeyInfo struct {
	GoodKeys    []Key
	MissingKeys []Key
}

// Verifier describes facility that dearmors keyrings and checks
// detached signatures against them
type Verifier interface {
	// Init verifies availability of the verification facility
	Init() error
	// Dearmor converts an ASCII-armored public keyring into its binary form
	Dearmor(keyring, destination string) error
	// VerifyDetached checks a detached signature against cleartext using only keys from keyring
	VerifyDetached(keyring, signature, cleartext string) (*KeyInfo, error)
}
