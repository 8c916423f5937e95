// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/kindahl/opvault/errs"
)

// strictUnmarshal decodes data into v, rejecting any JSON object key that v's
// struct tags do not recognize and any trailing data after the single value.
// This is how every decrypted JSON blob's schema is enforced: DomainBuilder
// never silently drops an unrecognized key.
func strictUnmarshal(data []byte, v interface{}) error {
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

// rawURLEntry mirrors one element of an overview's "URLs" array.
type rawURLEntry struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// rawOverview mirrors the decrypted overview JSON shape shared by folders
// and entries (§6.6). The "ps" field's semantics are undocumented upstream
// and are decoded but never interpreted. "predicate_b64", present on some
// smart-folder overviews, sometimes holds an Apple bplist00 blob; it is
// accepted so strict-schema validation doesn't reject an otherwise valid
// smart folder, but deliberately left unparsed.
type rawOverview struct {
	Title        string        `json:"title,omitempty"`
	PS           string        `json:"ps,omitempty"`
	Tags         []string      `json:"tags,omitempty"`
	AInfo        string        `json:"ainfo,omitempty"`
	URL          string        `json:"url,omitempty"`
	URLs         []rawURLEntry `json:"URLs,omitempty"`
	PredicateB64 string        `json:"predicate_b64,omitempty"`
}

// rawField covers both spellings a details field object may use: the short
// keys (k, n, t, v, a) found inside a section, and the long keys (type,
// name, value, designation) found in the top-level form-field list.
type rawField struct {
	Kind        string                     `json:"k,omitempty"`
	Type        string                     `json:"type,omitempty"`
	Name        string                     `json:"n,omitempty"`
	LongName    string                     `json:"name,omitempty"`
	Title       string                     `json:"t,omitempty"`
	Value       json.RawMessage            `json:"v,omitempty"`
	LongValue   string                     `json:"value,omitempty"`
	Designation string                     `json:"designation,omitempty"`
	Attrs       map[string]json.RawMessage `json:"a,omitempty"`
}

func (f rawField) kind() string {
	if f.Kind != "" {
		return f.Kind
	}
	return f.Type
}

func (f rawField) name() string {
	if f.Name != "" {
		return f.Name
	}
	return f.LongName
}

func (f rawField) value() string {
	if len(f.Value) > 0 {
		var s string
		if err := json.Unmarshal(f.Value, &s); err == nil {
			return s
		}
		return string(f.Value)
	}
	return f.LongValue
}

func (f rawField) attrs() map[string]string {
	if len(f.Attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(f.Attrs))
	for k, v := range f.Attrs {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[k] = s
		} else {
			out[k] = string(v)
		}
	}
	return out
}

// rawSection mirrors one element of the details JSON's "sections" array.
type rawSection struct {
	Name   string     `json:"name,omitempty"`
	Title  string     `json:"title,omitempty"`
	Fields []rawField `json:"fields,omitempty"`
}

// rawHTMLForm mirrors the details JSON's "htmlForm" object.
type rawHTMLForm struct {
	Action string `json:"htmlAction,omitempty"`
	Name   string `json:"htmlName,omitempty"`
	ID     string `json:"htmlID,omitempty"`
	Method string `json:"htmlMethod,omitempty"`
}

// rawPasswordHistoryItem mirrors one element of "passwordHistory".
type rawPasswordHistoryItem struct {
	Value string `json:"value"`
	Time  int64  `json:"time"`
}

// rawDetails mirrors the decrypted details JSON shape (§6.7).
type rawDetails struct {
	Sections        []rawSection             `json:"sections,omitempty"`
	Fields          []rawField               `json:"fields,omitempty"`
	HTMLForm        *rawHTMLForm             `json:"htmlForm,omitempty"`
	NotesPlain      string                   `json:"notesPlain,omitempty"`
	PasswordHistory []rawPasswordHistoryItem `json:"passwordHistory,omitempty"`
}

// BuildFolder assembles a Folder from folders.js's metadata fields and the
// decrypted overview JSON, whose "title" key supplies Folder.Title. Folder
// decryption never touches a per-item key; only the overview key is used.
func BuildFolder(id uuid.UUID, created, updated, tx time.Time, smart bool, overviewJSON []byte) (Folder, error) {
	var ov rawOverview
	if err := strictUnmarshal(overviewJSON, &ov); err != nil {
		return Folder{}, err
	}

	return Folder{
		UUID:      id,
		CreatedAt: created,
		UpdatedAt: updated,
		Tx:        tx,
		Title:     ov.Title,
		Smart:     smart,
	}, nil
}

// BuildEntry assembles an Entry from band_*.js's metadata fields and the
// decrypted overview and details JSON.
func BuildEntry(
	id uuid.UUID,
	folderID *uuid.UUID,
	category Category,
	created, updated, tx time.Time,
	trashed bool,
	fave float64,
	rawHMAC []byte,
	overviewJSON, detailsJSON []byte,
) (Entry, error) {
	var ov rawOverview
	if err := strictUnmarshal(overviewJSON, &ov); err != nil {
		return Entry{}, err
	}

	var det rawDetails
	if err := strictUnmarshal(detailsJSON, &det); err != nil {
		return Entry{}, err
	}

	e := Entry{
		UUID:       id,
		FolderUUID: folderID,
		Category:   category,
		CreatedAt:  created,
		UpdatedAt:  updated,
		Tx:         tx,
		Trashed:    trashed,
		Fave:       fave,
		Title:      ov.Title,
		Info:       ov.AInfo,
		URL:        ov.URL,
		Tags:       ov.Tags,
		Notes:      det.NotesPlain,
		RawHMAC:    rawHMAC,
	}

	for _, u := range ov.URLs {
		e.URLs = append(e.URLs, URLEntry{Label: u.Label, URL: u.URL})
	}

	for _, f := range det.Fields {
		e.Fields = append(e.Fields, FormField{
			Type:        f.kind(),
			Name:        f.name(),
			Value:       f.value(),
			Designation: f.Designation,
		})
	}

	for _, s := range det.Sections {
		section := Section{Name: s.Name, Title: s.Title}
		for _, f := range s.Fields {
			section.Fields = append(section.Fields, SectionField{
				Kind:  f.kind(),
				Name:  f.name(),
				Title: f.Title,
				Value: f.value(),
				Attrs: f.attrs(),
			})
		}
		e.Sections = append(e.Sections, section)
	}

	if det.HTMLForm != nil {
		e.Form = &Form{
			Action: det.HTMLForm.Action,
			Name:   det.HTMLForm.Name,
			ID:     det.HTMLForm.ID,
			Method: det.HTMLForm.Method,
		}
	}

	for _, h := range det.PasswordHistory {
		e.PasswordHistory = append(e.PasswordHistory, PasswordHistoryItem{
			Value: h.Value,
			Time:  time.Unix(h.Time, 0).UTC(),
		})
	}

	return e, nil
}
