// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package keyring implements the Agile Keychain Cloud cryptographic
// envelope: PBKDF2-HMAC-SHA-512 key derivation, SHA-512 key-pair splitting,
// AES-256-CBC, HMAC-SHA-256, and the opdata01/raw-blob authenticated
// containers built on top of them.
package keyring

import "github.com/kindahl/opvault/errs"

// KeySize is the length, in bytes, of each half of a KeyPair.
const KeySize = 32

// KeyPair holds an encryption key and a MAC key, always present together.
// The all-zero pair is the sentinel for "absent/locked" (see IsZero).
type KeyPair struct {
	Enc [KeySize]byte
	Mac [KeySize]byte
}

// IsZero reports whether both halves of the pair are all-zero, the
// convention used to mark an absent or locked key.
func (kp KeyPair) IsZero() bool {
	for _, b := range kp.Enc {
		if b != 0 {
			return false
		}
	}
	for _, b := range kp.Mac {
		if b != 0 {
			return false
		}
	}
	return true
}

// Zero overwrites both halves of the pair with zero bytes in place.
func (kp *KeyPair) Zero() {
	for i := range kp.Enc {
		kp.Enc[i] = 0
	}
	for i := range kp.Mac {
		kp.Mac[i] = 0
	}
}

// KeyPairFromPlaintext splits a 64-byte plaintext directly into a KeyPair:
// the first 32 bytes become Enc, the last 32 become Mac. Unlike Unwrap, no
// SHA-512 pass is applied first — this is for the per-entry item key, whose
// raw-blob plaintext already IS the two key halves verbatim, not an
// arbitrary secret to be hashed down.
func KeyPairFromPlaintext(data []byte) (KeyPair, error) {
	if len(data) != 2*KeySize {
		return KeyPair{}, errs.Format("item key plaintext is %d bytes, want %d", len(data), 2*KeySize)
	}
	return splitKeyPair(data), nil
}

// splitKeyPair splits a 64-byte secret into a KeyPair: the first 32 bytes
// become Enc, the last 32 become Mac. Panics if data is not 64 bytes long;
// callers MUST only use this on fixed-size hash/KDF output.
func splitKeyPair(data []byte) KeyPair {
	if len(data) != 2*KeySize {
		panic("keyring: splitKeyPair requires exactly 64 bytes")
	}

	var kp KeyPair
	copy(kp.Enc[:], data[:KeySize])
	copy(kp.Mac[:], data[KeySize:])
	return kp
}
