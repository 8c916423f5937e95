// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

package keyring

import "github.com/kindahl/opvault/errs"

// DeriveFromPassword runs PBKDF2-HMAC-SHA-512 over password and salt for
// iterations rounds and splits the 64-byte output into a KeyPair. This is
// the first rung of the key ladder: every profile key is ultimately
// unwrapped using the KeyPair this returns.
func DeriveFromPassword(password string, salt []byte, iterations uint32) KeyPair {
	return pbkdf2Derive(password, salt, iterations)
}

// Unwrap decrypts lockedKey, an opdata01 blob, under derived, then runs
// SHA-512 over the resulting plaintext and splits it into the unwrapped
// KeyPair. This is used for both the master key and the overview key.
//
// An IntegrityError from the opdata01 decrypt is indistinguishable from a
// wrong master password and MUST be reported as such: Unwrap translates it
// into a Password error rather than letting it propagate as itself.
func Unwrap(lockedKey []byte, derived KeyPair) (KeyPair, error) {
	plaintext, err := DecryptOpdata(lockedKey, derived)
	if err != nil {
		if errs.Is(err, errs.KindIntegrity) {
			return KeyPair{}, errs.Password(err)
		}
		return KeyPair{}, err
	}

	return sha512Split(plaintext), nil
}
