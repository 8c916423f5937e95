// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

package keyring

import (
	"bytes"
	"crypto/hmac"
	"encoding/binary"

	"github.com/kindahl/opvault/errs"
)

// opdataMagic is the fixed 8-byte header every opdata01 container starts
// with.
var opdataMagic = []byte("opdata01")

// opdataMinLen is the length floor checked before authentication: the
// 8-byte magic, the 8-byte length field, a 16-byte IV, and the 32-byte
// HMAC, counting no ciphertext. A blob at exactly this length has no
// ciphertext and is rejected later, by the post-authentication
// ciphertext-length check, since the ciphertext must be a nonzero multiple
// of the block size.
const opdataMinLen = 8 + 8 + 16 + 32

// DecryptOpdata parses, authenticates, and decrypts an opdata01 container
// under key, returning the original plaintext.
//
// opdata01's layout is "opdata01" | u64_le content length | 16-byte IV |
// AES-256-CBC ciphertext | 32-byte HMAC-SHA-256 tag. Authentication MUST
// precede decryption: the tag is checked before any ciphertext byte is fed
// to AES, so a forged or bit-flipped blob is rejected with an IntegrityError
// before it can influence decryption.
func DecryptOpdata(blob []byte, key KeyPair) (plaintext []byte, err error) {
	if len(blob) < opdataMinLen {
		return nil, errs.Format("opdata01 blob is %d bytes, need at least %d", len(blob), opdataMinLen)
	}

	macOffset := len(blob) - 32
	authed := blob[:macOffset]
	tag := blob[macOffset:]

	expected := hmacSHA256(key.Mac[:], authed)
	if !hmac.Equal(expected, tag) {
		return nil, errs.Integrity("opdata01 HMAC mismatch")
	}

	if !bytes.Equal(blob[:8], opdataMagic) {
		return nil, errs.Format("opdata01 header is %q, want %q", blob[:8], opdataMagic)
	}

	contentLen := binary.LittleEndian.Uint64(blob[8:16])
	iv := blob[16:32]
	ct := blob[32:macOffset]

	if len(ct) == 0 || len(ct)%16 != 0 {
		return nil, errs.Format("opdata01 ciphertext length %d is not a nonzero multiple of 16", len(ct))
	}

	pt, err := cbcDecrypt(ct, key.Enc[:], iv)
	if err != nil {
		return nil, err
	}

	if contentLen > uint64(len(pt)) {
		return nil, errs.Format("opdata01 content length %d exceeds decrypted length %d", contentLen, len(pt))
	}

	var padLen uint64
	if contentLen%16 == 0 {
		padLen = 16
	} else {
		padLen = 16 - (contentLen % 16)
	}

	trimmed := pt[padLen:]
	if uint64(len(trimmed)) != contentLen {
		return nil, errs.Format("opdata01 front-padding trim produced %d bytes, want %d", len(trimmed), contentLen)
	}

	return trimmed, nil
}
