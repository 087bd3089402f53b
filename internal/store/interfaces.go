package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/notes-keeper/models"
)

// NoteRepository is the persistence contract for notes.
//
// Every method except GetNoteByID is scoped by the owner's user id; rows of
// other users are invisible to it and behave as missing.
type NoteRepository interface {
	// CreateNote inserts a note and returns it with the generated id,
	// is_starred = false and the storage-assigned created_at.
	CreateNote(ctx context.Context, note models.NewNote) (models.Note, error)

	// GetNoteByID returns the note with the given id regardless of owner,
	// or ErrNoteNotFound. Callers must check UserID themselves.
	GetNoteByID(ctx context.Context, id int64) (models.Note, error)

	// GetNotesByUserID returns one window of the owner's notes ordered
	// starred first, then newest first, together with the owner's total
	// note count.
	GetNotesByUserID(ctx context.Context, userID int64, pagination models.Pagination) (models.NotesPage, error)

	// ToggleStar atomically negates is_starred of the owner's note and
	// returns the updated note, or ErrNoteNotFound.
	ToggleStar(ctx context.Context, noteID, userID int64) (models.Note, error)

	// UpdateNote writes the non-nil fields of update to the owner's note.
	UpdateNote(ctx context.Context, id, userID int64, update models.NoteUpdate) (models.Note, error)

	// DeleteNote physically removes the owner's note and reports whether a
	// row was removed.
	DeleteNote(ctx context.Context, id, userID int64) (bool, error)
}

// HealthChecker reports whether the storage is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
