// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

package jsfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kindahl/opvault/errs"
)

func TestStrip(t *testing.T) {
	testcases := []struct {
		name    string
		in      string
		want    string
		isError bool
	}{
		{"typical wrapping", `var profile={"a":1};`, `{"a":1}`, false},
		{"nested braces", `var x = {"a":{"b":2}};`, `{"a":{"b":2}}`, false},
		{"no braces", `var x = 5;`, "", true},
		{"only opening brace", `var x = {`, "", true},
		{"only closing brace", `x };`, "", true},
		{"closing before opening", `} var x = {`, "", true},
		{"braces already bare", `{}`, `{}`, false},
	}

	for _, tc := range testcases {
		got, err := Strip([]byte(tc.in))
		if (err != nil) != tc.isError {
			t.Errorf("%s: err = %v, isError = %v", tc.name, err, tc.isError)
			continue
		}
		if err != nil {
			if !errs.Is(err, errs.KindFormat) {
				t.Errorf("%s: expected a format error, got %v", tc.name, err)
			}
			continue
		}
		if string(got) != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestReadAndStripMissingFile(t *testing.T) {
	_, err := ReadAndStrip(filepath.Join(t.TempDir(), "does-not-exist.js"))
	if !errs.Is(err, errs.KindFileNotFound) {
		t.Errorf("expected a file-not-found error, got %v", err)
	}
}

func TestReadAndStripReadsRealFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.js")
	if err := os.WriteFile(path, []byte(`var profile={"uuid":"abc"};`), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := ReadAndStrip(path)
	if err != nil {
		t.Fatalf("ReadAndStrip: %v", err)
	}
	if string(got) != `{"uuid":"abc"}` {
		t.Errorf("got %q", got)
	}
}
