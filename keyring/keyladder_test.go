// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

package keyring

import (
	"bytes"
	"testing"

	"github.com/kindahl/opvault/errs"
)

func TestUnwrapRoundTrip(t *testing.T) {
	derived := testKeyPair()
	secret := bytes.Repeat([]byte{0x07}, 64)
	blob := buildOpdata(t, derived, secret)

	want := sha512Split(secret)

	got, err := Unwrap(blob, derived)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if got != want {
		t.Errorf("Unwrap produced a different KeyPair than a manual sha512Split")
	}
}

func TestUnwrapWrongPasswordReportsPasswordError(t *testing.T) {
	derived := testKeyPair()
	blob := buildOpdata(t, derived, bytes.Repeat([]byte{0x07}, 64))

	wrongDerived := DeriveFromPassword("not-the-password", []byte("somesalt"), 100)

	_, err := Unwrap(blob, wrongDerived)
	if !errs.Is(err, errs.KindPassword) {
		t.Fatalf("expected a password error, got %v", err)
	}
	if errs.Is(err, errs.KindIntegrity) {
		t.Fatalf("integrity error must not escape Unwrap as itself")
	}
}

func TestUnwrapPropagatesFormatErrors(t *testing.T) {
	derived := testKeyPair()
	if _, err := Unwrap(make([]byte, 4), derived); !errs.Is(err, errs.KindFormat) {
		t.Fatalf("expected a format error for a malformed blob, got %v", err)
	}
}

func TestDeriveFromPasswordDifferentSalts(t *testing.T) {
	a := DeriveFromPassword("freddy", []byte("salt-one-16bytes"), 1000)
	b := DeriveFromPassword("freddy", []byte("salt-two-16bytes"), 1000)
	if a == b {
		t.Errorf("different salts produced identical derived keys")
	}
}
