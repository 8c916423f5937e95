// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package opvault imports a 1Password "Agile Keychain Cloud" (OPVault-style)
// keychain: a directory tree of JavaScript-wrapped JSON files plus a
// user-supplied master password, producing an in-memory Catalog of
// decrypted, authenticated folders and entries.
//
// Open is the single entry point. It is read-only: nothing here writes to
// or modifies a vault.
package opvault

import (
	"path/filepath"

	"github.com/kindahl/opvault/errs"
	"github.com/kindahl/opvault/jsfile"
	"github.com/kindahl/opvault/model"
	"github.com/kindahl/opvault/profile"
)

// isFileNotFound reports whether err is a KindFileNotFound error, the signal
// an optional band file uses to tell loadCatalog to move on.
func isFileNotFound(err error) bool {
	return errs.Is(err, errs.KindFileNotFound)
}

// bandFileNames lists every band file in the fixed traversal order the
// Catalog's insertion order depends on: band_0 through band_9, then band_A
// through band_F. A missing file is silently skipped.
var bandFileNames = func() []string {
	names := make([]string, 0, 16)
	for c := '0'; c <= '9'; c++ {
		names = append(names, "band_"+string(c)+".js")
	}
	for c := 'A'; c <= 'F'; c++ {
		names = append(names, "band_"+string(c)+".js")
	}
	return names
}()

// Vault is an unlocked profile paired with its decrypted Catalog.
type Vault struct {
	Profile *profile.Profile
	Catalog model.Catalog
}

// Open loads and unlocks the vault rooted at dir (the directory directly
// containing profile.js, folders.js, and the band files — typically a
// vault's "default" profile directory), decrypting every folder and entry
// into a Catalog.
//
// This is atomic: on any error the returned Vault is nil and nothing about
// the previous state of the world has changed. A wrong password surfaces
// as a Password error; any malformed file as a Format error.
func Open(dir, password string) (*Vault, error) {
	p, err := profile.Load(filepath.Join(dir, "profile.js"))
	if err != nil {
		return nil, err
	}

	if err := p.Unlock(password); err != nil {
		return nil, err
	}

	catalog, err := loadCatalog(dir, p)
	if err != nil {
		return nil, err
	}

	return &Vault{Profile: p, Catalog: catalog}, nil
}

// loadCatalog reads folders.js (required) and every present band file,
// decrypting each entry in file-traversal order.
func loadCatalog(dir string, p *profile.Profile) (model.Catalog, error) {
	var catalog model.Catalog

	folderEntries, err := readOrderedFile(filepath.Join(dir, "folders.js"))
	if err != nil {
		return model.Catalog{}, err
	}

	for _, oe := range folderEntries {
		var raw rawFolder
		if err := strictDecode(oe.Value, &raw); err != nil {
			return model.Catalog{}, err
		}

		folder, err := decryptFolder(p, oe.Key, raw)
		if err != nil {
			return model.Catalog{}, err
		}
		catalog.Folders = append(catalog.Folders, folder)
	}

	for _, name := range bandFileNames {
		path := filepath.Join(dir, name)
		bandEntries, err := readOrderedFile(path)
		if err != nil {
			if isFileNotFound(err) {
				continue
			}
			return model.Catalog{}, err
		}

		for _, oe := range bandEntries {
			var raw rawBandEntry
			if err := strictDecode(oe.Value, &raw); err != nil {
				return model.Catalog{}, err
			}

			entry, err := decryptEntry(p, oe.Key, raw)
			if err != nil {
				return model.Catalog{}, err
			}
			catalog.Entries = append(catalog.Entries, entry)
		}
	}

	return catalog, nil
}

// readOrderedFile strips a vault file's JS wrapping and decodes its JSON
// object, preserving key order.
func readOrderedFile(path string) ([]orderedEntry, error) {
	data, err := jsfile.ReadAndStrip(path)
	if err != nil {
		return nil, err
	}
	return decodeOrderedObject(data)
}
