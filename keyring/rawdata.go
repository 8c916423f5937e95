// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

package keyring

import (
	"crypto/hmac"

	"github.com/kindahl/opvault/errs"
)

// rawMinLen is the smallest a raw key-blob can be before even attempting
// authentication: a 16-byte IV, zero or more bytes of ciphertext, and a
// 32-byte HMAC tag. A blob at exactly this length has no ciphertext and is
// rejected later, by the post-authentication ciphertext-length check, not
// by this floor — the floor only excludes blobs too short to even hold an
// IV and a tag.
const rawMinLen = 16 + 32

// DecryptRaw parses, authenticates, and decrypts the unheadered "raw blob"
// container used to wrap a per-entry item key: 16-byte IV | AES-256-CBC
// ciphertext | 32-byte HMAC-SHA-256 tag. Unlike opdata01 there is no length
// field or padding to trim; the caller is expected to know the exact
// plaintext size (64 bytes for an item-key wrapper) and validate it itself.
func DecryptRaw(blob []byte, key KeyPair) (plaintext []byte, err error) {
	if len(blob) < rawMinLen {
		return nil, errs.Format("raw blob is %d bytes, need at least %d", len(blob), rawMinLen)
	}

	macOffset := len(blob) - 32
	iv := blob[:16]
	ct := blob[16:macOffset]
	tag := blob[macOffset:]

	authed := blob[:macOffset]
	expected := hmacSHA256(key.Mac[:], authed)
	if !hmac.Equal(expected, tag) {
		return nil, errs.Integrity("raw blob HMAC mismatch")
	}

	if len(ct) == 0 || len(ct)%16 != 0 {
		return nil, errs.Format("raw blob ciphertext length %d is not a nonzero multiple of 16", len(ct))
	}

	return cbcDecrypt(ct, key.Enc[:], iv)
}
