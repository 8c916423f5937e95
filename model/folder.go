// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// Folder groups entries together. Smart folders carry a predicate
// (sometimes an Apple bplist00 blob under predicate_b64) that this importer
// deliberately does not interpret; see the Open Questions in DESIGN.md.
type Folder struct {
	UUID      uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Tx        time.Time
	Title     string
	Smart     bool
}
