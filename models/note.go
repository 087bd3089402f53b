// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Note is a single user-owned note as persisted in the "notes" table.
type Note struct {
	// ID is generated by the storage on creation and never changes.
	ID int64 `json:"id"`

	// UserID identifies the owner. Every query except a lookup by ID is
	// scoped by this value.
	UserID int64 `json:"userId"`

	// Title is the required, user-supplied heading of the note.
	Title string `json:"title"`

	// Description is optional free text. An empty string means "no description".
	Description string `json:"description"`

	// IsStarred is false on creation and flipped by the star toggle.
	IsStarred bool `json:"isStarred"`

	// CreatedAt is set once by the storage clock.
	CreatedAt time.Time `json:"createdAt"`
}

// TableName is the table the store queries and the migrations create.
func (n Note) TableName() string {
	return "notes"
}

// NewNote carries the fields required to create a note.
type NewNote struct {
	UserID      int64  `json:"userId" validate:"gt=0"`
	Title       string `json:"title" validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"max=10000"`
}

// NoteUpdate describes a partial update of a note.
// Only non-nil fields are written.
type NoteUpdate struct {
	Title       *string `json:"title,omitempty" form:"title" validate:"omitnil,notblank,max=255"`
	Description *string `json:"description,omitempty" form:"description" validate:"omitnil,max=10000"`
	IsStarred   *bool   `json:"isStarred,omitempty" form:"isStarred"`
}

// IsEmpty reports whether the update sets no fields at all.
func (u NoteUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.IsStarred == nil
}

// Pagination is the limit/offset window applied to an owner's notes.
type Pagination struct {
	Limit  int
	Offset int
}

// NotesPage is one window of an owner's notes together with the total number
// of notes the owner has, independent of the window.
type NotesPage struct {
	Notes      []Note
	TotalCount int64
}

// NoteKey addresses a note on behalf of a user. UserID may be zero for
// anonymous lookups by id.
type NoteKey struct {
	ID     int64 `json:"id" validate:"gt=0"`
	UserID int64 `json:"userId" validate:"gt=0"`
}
