// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kindahl/opvault/errs"
)

func TestBuildFolder(t *testing.T) {
	id := uuid.New()
	now := time.Unix(1000, 0).UTC()

	f, err := BuildFolder(id, now, now, now, true, []byte(`{"title":"Work"}`))
	if err != nil {
		t.Fatalf("BuildFolder: %v", err)
	}
	if f.Title != "Work" || !f.Smart || f.UUID != id {
		t.Errorf("unexpected folder: %+v", f)
	}
}

func TestBuildFolderRejectsUnknownKey(t *testing.T) {
	id := uuid.New()
	now := time.Unix(0, 0)
	_, err := BuildFolder(id, now, now, now, false, []byte(`{"title":"Work","bogus":1}`))
	if !errs.Is(err, errs.KindFormat) {
		t.Fatalf("expected a format error, got %v", err)
	}
}

func TestBuildEntryLogin(t *testing.T) {
	id := uuid.New()
	now := time.Unix(1391472000, 0).UTC()

	overview := []byte(`{"title":"Hulu","url":"http://www.hulu.com/","URLs":[{"label":"website","url":"http://www.hulu.com/"}],"tags":["streaming"]}`)
	details := []byte(`{
		"fields":[{"type":"T","name":"password","value":"frirp7i1ob7wig4d","designation":"password"}],
		"sections":[{"name":"Section_1","title":"More","fields":[{"k":"string","n":"custom","t":"Custom Field","v":"hello"}]}],
		"notesPlain":"some notes",
		"passwordHistory":[{"value":"oldpw","time":1390000000}]
	}`)

	e, err := BuildEntry(id, nil, CategoryLogin, now, now, now, false, 0, []byte{0xAA}, overview, details)
	if err != nil {
		t.Fatalf("BuildEntry: %v", err)
	}

	if e.Title != "Hulu" || e.URL != "http://www.hulu.com/" {
		t.Errorf("unexpected overview fields: %+v", e)
	}
	if len(e.URLs) != 1 || e.URLs[0].Label != "website" {
		t.Errorf("unexpected URLs: %+v", e.URLs)
	}
	if len(e.Fields) != 1 || e.Fields[0].Value != "frirp7i1ob7wig4d" {
		t.Errorf("unexpected fields: %+v", e.Fields)
	}
	if len(e.Sections) != 1 || len(e.Sections[0].Fields) != 1 || e.Sections[0].Fields[0].Value != "hello" {
		t.Errorf("unexpected sections: %+v", e.Sections)
	}
	if e.Notes != "some notes" {
		t.Errorf("unexpected notes: %q", e.Notes)
	}
	if len(e.PasswordHistory) != 1 || e.PasswordHistory[0].Value != "oldpw" {
		t.Errorf("unexpected password history: %+v", e.PasswordHistory)
	}
}

func TestBuildEntryRejectsUnknownOverviewKey(t *testing.T) {
	id := uuid.New()
	now := time.Unix(0, 0)
	_, err := BuildEntry(id, nil, CategoryLogin, now, now, now, false, 0, nil, []byte(`{"bogus":1}`), []byte(`{}`))
	if !errs.Is(err, errs.KindFormat) {
		t.Fatalf("expected a format error, got %v", err)
	}
}

func TestBuildEntryRejectsUnknownDetailsKey(t *testing.T) {
	id := uuid.New()
	now := time.Unix(0, 0)
	_, err := BuildEntry(id, nil, CategoryLogin, now, now, now, false, 0, nil, []byte(`{}`), []byte(`{"bogus":1}`))
	if !errs.Is(err, errs.KindFormat) {
		t.Fatalf("expected a format error, got %v", err)
	}
}
