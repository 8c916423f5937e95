// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

package opvault

import (
	"time"

	"github.com/google/uuid"

	"github.com/kindahl/opvault/errs"
	"github.com/kindahl/opvault/keyring"
	"github.com/kindahl/opvault/model"
	"github.com/kindahl/opvault/profile"
)

// decryptFolder turns one folders.js entry into a model.Folder. Only the
// profile's overview key is used; folders carry no per-item key.
func decryptFolder(p *profile.Profile, mapKey string, raw rawFolder) (model.Folder, error) {
	id, err := parseUUID("uuid", raw.UUID)
	if err != nil {
		return model.Folder{}, err
	}
	if raw.UUID != mapKey {
		return model.Folder{}, errs.Format("folder uuid %q does not match its map key %q", raw.UUID, mapKey)
	}

	overviewBlob, err := decodeBase64("overview", raw.Overview)
	if err != nil {
		return model.Folder{}, err
	}

	overviewJSON, err := keyring.DecryptOpdata(overviewBlob, p.OverviewKey)
	if err != nil {
		return model.Folder{}, err
	}

	return model.BuildFolder(
		id,
		time.Unix(raw.Created, 0).UTC(),
		time.Unix(raw.Updated, 0).UTC(),
		time.Unix(raw.Tx, 0).UTC(),
		raw.Smart,
		overviewJSON,
	)
}

// decryptEntry turns one band file entry into a model.Entry.
//
// The "k" field wraps a 64-byte item key pair under the profile's master
// key using the unheadered raw-blob container; "d" (details) is then
// decrypted under that item key, while "o" (overview) is decrypted under
// the profile's overview key directly, matching the Agile Keychain Cloud
// key ladder: master key -> item key -> details, overview key -> overview.
func decryptEntry(p *profile.Profile, mapKey string, raw rawBandEntry) (model.Entry, error) {
	id, err := parseUUID("uuid", raw.UUID)
	if err != nil {
		return model.Entry{}, err
	}
	if raw.UUID != mapKey {
		return model.Entry{}, errs.Format("entry uuid %q does not match its map key %q", raw.UUID, mapKey)
	}

	category, err := model.ParseCategory(raw.Category)
	if err != nil {
		return model.Entry{}, err
	}

	var folderID *uuid.UUID
	if raw.Folder != "" {
		fid, err := parseUUID("folder", raw.Folder)
		if err != nil {
			return model.Entry{}, err
		}
		folderID = &fid
	}

	kBlob, err := decodeBase64("k", raw.K)
	if err != nil {
		return model.Entry{}, err
	}
	itemKeyPlaintext, err := keyring.DecryptRaw(kBlob, p.MasterKey)
	if err != nil {
		return model.Entry{}, err
	}
	itemKey, err := keyring.KeyPairFromPlaintext(itemKeyPlaintext)
	if err != nil {
		return model.Entry{}, err
	}

	dBlob, err := decodeBase64("d", raw.D)
	if err != nil {
		return model.Entry{}, err
	}
	detailsJSON, err := keyring.DecryptOpdata(dBlob, itemKey)
	if err != nil {
		return model.Entry{}, err
	}

	oBlob, err := decodeBase64("o", raw.O)
	if err != nil {
		return model.Entry{}, err
	}
	overviewJSON, err := keyring.DecryptOpdata(oBlob, p.OverviewKey)
	if err != nil {
		return model.Entry{}, err
	}

	var rawHMAC []byte
	if raw.HMAC != "" {
		rawHMAC, err = decodeBase64("hmac", raw.HMAC)
		if err != nil {
			return model.Entry{}, err
		}
	}

	return model.BuildEntry(
		id,
		folderID,
		category,
		time.Unix(raw.Created, 0).UTC(),
		time.Unix(raw.Updated, 0).UTC(),
		time.Unix(raw.Tx, 0).UTC(),
		raw.Trashed,
		raw.Fave,
		rawHMAC,
		overviewJSON,
		detailsJSON,
	)
}
