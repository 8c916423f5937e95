// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// URLEntry is one of the (possibly many) labeled URLs an entry's overview
// JSON may carry under "URLs".
type URLEntry struct {
	Label string
	URL   string
}

// SectionField is one field inside an Entry's details "sections" array. The
// details JSON spells these with short keys (k, n, t, v, a); Attrs carries
// through whatever extra sub-object "a" held without interpreting it.
type SectionField struct {
	Kind  string
	Name  string
	Title string
	Value string
	Attrs map[string]string
}

// Section groups SectionFields under a name/title, mirroring the details
// JSON's top-level "sections" array.
type Section struct {
	Name   string
	Title  string
	Fields []SectionField
}

// FormField is one entry in the details JSON's top-level "fields" array,
// which describes an HTML form field rather than a freeform section field
// and so uses the long key spellings (type, name, value, designation).
type FormField struct {
	Type        string
	Name        string
	Value       string
	Designation string
}

// Form describes the HTML login form an entry was captured from, decoded
// from the details JSON's "htmlForm" object.
type Form struct {
	Action string
	Name   string
	ID     string
	Method string
}

// PasswordHistoryItem is one prior password value, with the time it was
// replaced.
type PasswordHistoryItem struct {
	Value string
	Time  time.Time
}

// Entry is one decrypted vault item. Once built it is immutable: all of its
// slices and the optional Form are populated exactly once.
type Entry struct {
	UUID       uuid.UUID
	FolderUUID *uuid.UUID
	Category   Category

	CreatedAt time.Time
	UpdatedAt time.Time
	Tx        time.Time

	Trashed bool
	Fave    float64

	Title string
	Info  string
	URL   string
	URLs  []URLEntry
	Tags  []string
	Notes string

	Fields   []FormField
	Sections []Section
	Form     *Form

	PasswordHistory []PasswordHistoryItem

	// RawHMAC is the entry's top-level "hmac" field, stored opaquely: its
	// authenticity role is unclear since every subfield already carries its
	// own MAC, so it is neither interpreted nor re-verified here.
	RawHMAC []byte
}
