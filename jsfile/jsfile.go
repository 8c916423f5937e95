// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package jsfile strips the "var x = {...};" JavaScript wrapping that every
// Agile Keychain Cloud file carries and hands back the bare JSON substring.
package jsfile

import (
	"bytes"
	"os"

	"github.com/kindahl/opvault/errs"
)

// Strip extracts the substring from the first '{' to the last '}' inclusive.
// Everything outside those braces — the "var profile=" assignment prefix and
// the trailing ";" — is discarded unparsed.
func Strip(data []byte) ([]byte, error) {
	start := bytes.IndexByte(data, '{')
	end := bytes.LastIndexByte(data, '}')

	if start < 0 || end < 0 || start >= end {
		return nil, errs.Format("could not find a JSON object between braces")
	}

	return data[start : end+1], nil
}

// ReadAndStrip reads path from disk and returns the stripped JSON substring.
// A missing file is reported as a FileNotFoundError rather than a generic
// IoError so callers can distinguish "not present" (often expected, e.g. a
// skipped band file) from a genuine read failure.
func ReadAndStrip(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.FileNotFound(path)
		}
		return nil, errs.IO(err)
	}

	return Strip(data)
}
