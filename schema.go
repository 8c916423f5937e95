// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

package opvault

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"

	"github.com/google/uuid"

	"github.com/kindahl/opvault/errs"
)

// strictDecode decodes data into v, rejecting unrecognized JSON object keys
// and any trailing data, the same strict-schema discipline model.BuildFolder
// and model.BuildEntry apply to the decrypted payloads.
func strictDecode(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.WrapFormat(err, "decoding JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return errs.Format("unexpected trailing data after JSON value")
	}
	return nil
}

// rawFolder mirrors one value in folders.js's UUID-keyed object (§6.4).
type rawFolder struct {
	UUID     string `json:"uuid"`
	Created  int64  `json:"created"`
	Tx       int64  `json:"tx"`
	Updated  int64  `json:"updated"`
	Overview string `json:"overview"`
	Smart    bool   `json:"smart,omitempty"`
}

// rawBandEntry mirrors one value in a band_*.js file's UUID-keyed object
// (§6.5).
type rawBandEntry struct {
	UUID     string  `json:"uuid"`
	Category string  `json:"category"`
	Created  int64   `json:"created"`
	Updated  int64   `json:"updated"`
	Tx       int64   `json:"tx"`
	D        string  `json:"d"`
	K        string  `json:"k"`
	O        string  `json:"o"`
	HMAC     string  `json:"hmac,omitempty"`
	Trashed  bool    `json:"trashed,omitempty"`
	Folder   string  `json:"folder,omitempty"`
	Fave     float64 `json:"fave,omitempty"`
}

// decodeBase64 decodes a base64 field, wrapping a decode failure as a
// FormatError naming which field failed.
func decodeBase64(field, value string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, errs.WrapFormat(err, "field %q is not valid base64", field)
	}
	return data, nil
}

// parseUUID parses a 32-hex-character UUID, wrapping a failure as a
// FormatError naming which field failed.
func parseUUID(field, value string) (uuid.UUID, error) {
	if len(value) != 32 {
		return uuid.UUID{}, errs.Format("field %q is not a valid 32-hex UUID", field)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.UUID{}, errs.WrapFormat(err, "field %q is not a valid 32-hex UUID", field)
	}
	return id, nil
}
