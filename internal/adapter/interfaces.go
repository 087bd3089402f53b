// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the notes HTTP API.
//
// [NotesAdapter] hides the REST routes, form encoding and bearer header
// management from the CLI. Non-2xx responses are mapped by mapHTTPError to
// the sentinel errors of this package so callers can branch with
// [errors.Is]; form validation failures come back as [*ValidationError].
package adapter

import (
	"context"

	"github.com/MKhiriev/notes-keeper/models"
)

// NotesAdapter is a typed client for every route of the notes HTTP API.
type NotesAdapter interface {
	// SetToken stores the bearer token attached to all subsequent requests.
	SetToken(token string)
	Token() string

	// ListNotes fetches one page of the caller's notes. Zero Page or Limit
	// fall back to the server defaults.
	ListNotes(ctx context.Context, req models.ListNotesRequest) (models.NotesListResponse, error)
	CreateNote(ctx context.Context, form models.NoteForm) (models.Note, error)

	// GetNote fetches a note by id. The token is sent when set; the server
	// answers ErrUnauthorized for notes of other users.
	GetNote(ctx context.Context, noteID int64) (models.Note, error)
	UpdateNote(ctx context.Context, noteID int64, update models.NoteUpdate) (models.Note, error)

	// DeleteNote reports whether a note was removed. Deleting a missing note
	// is not an error.
	DeleteNote(ctx context.Context, noteID int64) (bool, error)
	ToggleStar(ctx context.Context, noteID int64) (models.Note, error)

	Version(ctx context.Context) (string, error)
	Health(ctx context.Context) error
}
