// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

package opvault

import (
	"bytes"
	"encoding/json"

	"github.com/kindahl/opvault/errs"
)

// orderedEntry is one key/value pair recovered from a JSON object in its
// original source order.
type orderedEntry struct {
	Key   string
	Value json.RawMessage
}

// decodeOrderedObject parses a JSON object, returning its key/value pairs
// in the order they appeared in data. This exists because folders.js's and
// each band file's insertion order is part of the Catalog's contract (§3:
// "insertion order follows file traversal order"), but encoding/json's
// map[string]T decoding does not preserve key order.
func decodeOrderedObject(data []byte) ([]orderedEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, errs.WrapFormat(err, "reading JSON object")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errs.Format("expected a JSON object, got %v", tok)
	}

	var out []orderedEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errs.WrapFormat(err, "reading JSON object key")
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errs.Format("expected a string JSON object key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errs.WrapFormat(err, "reading value for key %q", key)
		}

		out = append(out, orderedEntry{Key: key, Value: raw})
	}

	if _, err := dec.Token(); err != nil {
		return nil, errs.WrapFormat(err, "reading closing brace")
	}

	return out, nil
}
