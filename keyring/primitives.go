// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"

	"github.com/kindahl/opvault/errs"
)

// cbcDecrypt decrypts ciphertext with AES-256-CBC under key and iv, returning
// the raw XOR'd plaintext with no padding removed. ct MUST be a nonzero
// multiple of the AES block size; callers that need padding trimmed (the
// opdata01 length field, or PKCS#7) do so themselves, since opdata's length
// field is authoritative and trusting trailing padding bytes would invite
// padding-oracle style misuse.
func cbcDecrypt(ct, key, iv []byte) (pt []byte, err error) {
	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return nil, errs.Format("ciphertext length %d is not a nonzero multiple of %d", len(ct), aes.BlockSize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errs.Internal("aes key rejected: %v", err)
	}
	if len(iv) != aes.BlockSize {
		return nil, errs.Internal("iv must be %d bytes, got %d", aes.BlockSize, len(iv))
	}

	pt = make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(pt, ct)
	return pt, nil
}

// hmacSHA256 computes the HMAC-SHA-256 of data under key.
func hmacSHA256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// sha512Split runs SHA-512 over data and splits the 64-byte digest into a
// KeyPair, the first 32 bytes becoming Enc and the last 32 becoming Mac.
func sha512Split(data []byte) KeyPair {
	sum := sha512.Sum512(data)
	return splitKeyPair(sum[:])
}

// pbkdf2Derive runs PBKDF2-HMAC-SHA-512 over password (including its
// trailing NUL byte, a format-compatibility quirk of the reference
// implementation that MUST be preserved) and salt for iterations rounds,
// producing 64 bytes split into a KeyPair.
func pbkdf2Derive(password string, salt []byte, iterations uint32) KeyPair {
	pw := append([]byte(password), 0x00)
	data := pbkdf2.Key(pw, salt, int(iterations), 2*KeySize, sha512.New)
	return splitKeyPair(data)
}
