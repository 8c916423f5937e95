// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package profile implements the Profile state machine: loading a
// profile.js file's metadata and locked key ciphertexts, then unlocking it
// with the vault's master password to reveal the master and overview key
// pairs every entry and folder is ultimately decrypted with.
package profile

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/kindahl/opvault/errs"
	"github.com/kindahl/opvault/jsfile"
	"github.com/kindahl/opvault/keyring"
)

// State is the Profile's position in its Empty -> Loaded -> Unlocked (->
// Locked) lifecycle.
type State int

const (
	StateEmpty State = iota
	StateLoaded
	StateUnlocked
	StateLocked
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StateLoaded:
		return "Loaded"
	case StateUnlocked:
		return "Unlocked"
	case StateLocked:
		return "Locked"
	default:
		return "Unknown"
	}
}

// Profile holds one Agile Keychain Cloud profile's metadata, its two locked
// key ciphertexts, and — once Unlock succeeds — the two unlocked key pairs
// every vault decrypt operation is built on.
type Profile struct {
	state State

	UUID          uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Name          string
	LastUpdatedBy string
	Iterations    uint32
	Salt          []byte

	lockedMasterKey   []byte
	lockedOverviewKey []byte

	MasterKey   keyring.KeyPair
	OverviewKey keyring.KeyPair
}

// rawProfile mirrors profile.js's strict schema (§6.3 of the spec): any key
// beyond these nine is rejected.
type rawProfile struct {
	UUID          string `json:"uuid"`
	CreatedAt     int64  `json:"createdAt"`
	UpdatedAt     int64  `json:"updatedAt"`
	Iterations    uint32 `json:"iterations"`
	Salt          string `json:"salt"`
	MasterKey     string `json:"masterKey"`
	OverviewKey   string `json:"overviewKey"`
	ProfileName   string `json:"profileName"`
	LastUpdatedBy string `json:"lastUpdatedBy"`
}

// Load reads the profile.js file at path, strips its JavaScript wrapping,
// and populates a new Profile's metadata and locked key ciphertexts. This
// transitions Empty -> Loaded. The Profile is not yet usable for decryption
// until Unlock succeeds.
//
// path MUST point directly at a profile.js-shaped file; pointing it at an
// unrelated file (e.g. an .attachment) surfaces as a FormatError once the
// JS-stripping or JSON decode fails, and a missing path as a
// FileNotFoundError.
func Load(path string) (*Profile, error) {
	data, err := jsfile.ReadAndStrip(path)
	if err != nil {
		return nil, err
	}

	var raw rawProfile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, errs.WrapFormat(err, "decoding profile.js")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errs.Format("unexpected trailing data after profile.js's JSON value")
	}

	if len(raw.UUID) != 32 {
		return nil, errs.Format("profile.js uuid %q is not a valid 32-hex UUID", raw.UUID)
	}
	id, err := uuid.Parse(raw.UUID)
	if err != nil {
		return nil, errs.WrapFormat(err, "profile.js uuid %q is not a valid 32-hex UUID", raw.UUID)
	}

	salt, err := base64.StdEncoding.DecodeString(raw.Salt)
	if err != nil {
		return nil, errs.WrapFormat(err, "profile.js salt is not valid base64")
	}

	masterKey, err := base64.StdEncoding.DecodeString(raw.MasterKey)
	if err != nil {
		return nil, errs.WrapFormat(err, "profile.js masterKey is not valid base64")
	}

	overviewKey, err := base64.StdEncoding.DecodeString(raw.OverviewKey)
	if err != nil {
		return nil, errs.WrapFormat(err, "profile.js overviewKey is not valid base64")
	}

	p := &Profile{
		state:             StateLoaded,
		UUID:              id,
		CreatedAt:         time.Unix(raw.CreatedAt, 0).UTC(),
		UpdatedAt:         time.Unix(raw.UpdatedAt, 0).UTC(),
		Name:              raw.ProfileName,
		LastUpdatedBy:     raw.LastUpdatedBy,
		Iterations:        raw.Iterations,
		Salt:              salt,
		lockedMasterKey:   masterKey,
		lockedOverviewKey: overviewKey,
	}
	return p, nil
}

// Unlock derives the password key pair and uses it to unwrap the master and
// overview key pairs, transitioning Loaded -> Unlocked. An integrity
// failure on either unwrap is indistinguishable from a wrong password and
// is reported as a Password error, never as the underlying Integrity error.
func (p *Profile) Unlock(password string) error {
	if p.state != StateLoaded {
		return errs.Internal("Unlock called from state %v, want Loaded", p.state)
	}

	derived := keyring.DeriveFromPassword(password, p.Salt, p.Iterations)

	masterKey, err := keyring.Unwrap(p.lockedMasterKey, derived)
	if err != nil {
		return err
	}

	overviewKey, err := keyring.Unwrap(p.lockedOverviewKey, derived)
	if err != nil {
		return err
	}

	p.MasterKey = masterKey
	p.OverviewKey = overviewKey
	p.state = StateUnlocked
	return nil
}

// Lock zeroes the four unlocked key halves and transitions Unlocked ->
// Locked. The Profile's metadata remains readable and IsLocked reports true
// afterwards. Decrypt operations do not consult the state; a decrypt under
// the zeroed key pairs fails its HMAC check with an Integrity error.
func (p *Profile) Lock() {
	p.MasterKey.Zero()
	p.OverviewKey.Zero()
	p.state = StateLocked
}

// IsLocked reports whether the master key's encryption half is all-zero,
// the sentinel for "no usable key material".
func (p *Profile) IsLocked() bool {
	return p.MasterKey.Enc == [keyring.KeySize]byte{}
}

// State returns the Profile's current lifecycle state.
func (p *Profile) State() State {
	return p.state
}
