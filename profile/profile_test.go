// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

package profile

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/kindahl/opvault/errs"
	"github.com/kindahl/opvault/keyring"
)

const testIterations = 1000

// buildOpdataBlob constructs a valid opdata01 ciphertext for plaintext under
// key, independent from the keyring package's own internal test helper so
// profile's tests don't reach into keyring's unexported machinery.
func buildOpdataBlob(t *testing.T, key keyring.KeyPair, plaintext []byte) []byte {
	t.Helper()

	contentLen := uint64(len(plaintext))
	var padLen int
	if contentLen%16 == 0 {
		padLen = 16
	} else {
		padLen = 16 - int(contentLen%16)
	}

	padded := make([]byte, padLen+len(plaintext))
	if _, err := rand.Read(padded[:padLen]); err != nil {
		t.Fatal(err)
	}
	copy(padded[padLen:], plaintext)

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		t.Fatal(err)
	}

	block, err := aes.NewCipher(key.Enc[:])
	if err != nil {
		t.Fatal(err)
	}
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)

	buf := new(bytes.Buffer)
	buf.WriteString("opdata01")
	_ = binary.Write(buf, binary.LittleEndian, contentLen)
	buf.Write(iv)
	buf.Write(ct)

	mac := hmacFor(key, buf.Bytes())
	buf.Write(mac)

	return buf.Bytes()
}

func hmacFor(key keyring.KeyPair, data []byte) []byte {
	h := hmac.New(sha256.New, key.Mac[:])
	h.Write(data)
	return h.Sum(nil)
}

// writeProfile writes a minimal, valid profile.js fixture to dir, encrypted
// for password, and returns its path.
func writeProfile(t *testing.T, dir, password string) string {
	t.Helper()

	salt := bytes.Repeat([]byte{0x2A}, 16)
	derived := keyring.DeriveFromPassword(password, salt, testIterations)

	masterSecret := bytes.Repeat([]byte{0x11}, 64)
	overviewSecret := bytes.Repeat([]byte{0x22}, 64)

	masterBlob := buildOpdataBlob(t, derived, masterSecret)
	overviewBlob := buildOpdataBlob(t, derived, overviewSecret)

	js := fmt.Sprintf(`var profile=%s;`, fmt.Sprintf(
		`{"uuid":"%s","createdAt":1000,"updatedAt":2000,"iterations":%d,"salt":"%s","masterKey":"%s","overviewKey":"%s","profileName":"Freddy","lastUpdatedBy":"tester"}`,
		"1234567890abcdef1234567890abcdef",
		testIterations,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(masterBlob),
		base64.StdEncoding.EncodeToString(overviewBlob),
	))

	path := filepath.Join(dir, "profile.js")
	if err := os.WriteFile(path, []byte(js), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadUnlockLockCycle(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, "freddy")

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.State() != StateLoaded {
		t.Fatalf("state = %v, want Loaded", p.State())
	}
	if p.Name != "Freddy" {
		t.Errorf("Name = %q, want Freddy", p.Name)
	}

	if err := p.Unlock("freddy"); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if p.IsLocked() {
		t.Errorf("IsLocked() = true after a successful Unlock")
	}
	if p.State() != StateUnlocked {
		t.Fatalf("state = %v, want Unlocked", p.State())
	}

	p.Lock()
	if !p.IsLocked() {
		t.Errorf("IsLocked() = false after Lock")
	}
	if p.State() != StateLocked {
		t.Fatalf("state = %v, want Locked", p.State())
	}
}

func TestUnlockWrongPasswordStaysLoaded(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, "freddy")

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := p.Unlock("not-freddy"); !errs.Is(err, errs.KindPassword) {
		t.Fatalf("expected a password error, got %v", err)
	}
	if p.State() != StateLoaded {
		t.Fatalf("state = %v, want Loaded after a failed Unlock", p.State())
	}

	if err := p.Unlock("freddy"); err != nil {
		t.Fatalf("Unlock with the right password should still succeed: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "profile.js"))
	if !errs.Is(err, errs.KindFileNotFound) {
		t.Fatalf("expected a file-not-found error, got %v", err)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.js")
	js := `var profile={"uuid":"1234567890abcdef1234567890abcdef","createdAt":1,"updatedAt":1,"iterations":100,"salt":"AA==","masterKey":"AA==","overviewKey":"AA==","profileName":"x","lastUpdatedBy":"y","bogus":1};`
	if err := os.WriteFile(path, []byte(js), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errs.Is(err, errs.KindFormat) {
		t.Fatalf("expected a format error for an unrecognized key, got %v", err)
	}
}

func TestLoadRejectsNonJSFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.attachment")
	if err := os.WriteFile(path, []byte{0x00, 0x01, 0x02, 0x03}, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errs.Is(err, errs.KindFormat) {
		t.Fatalf("expected a format error for a binary attachment, got %v", err)
	}
}
