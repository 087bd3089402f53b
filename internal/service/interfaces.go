package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=NotesServiceWrapper

import (
	"context"

	"github.com/MKhiriev/notes-keeper/models"
)

// NotesService is the use-case layer over the notes store. Every call except
// GetNote with an anonymous caller acts on behalf of an owner.
type NotesService interface {
	CreateNote(ctx context.Context, note models.NewNote) (models.Note, error)

	// GetNote fetches a note by id and checks that userID owns it.
	GetNote(ctx context.Context, noteID, userID int64) (models.Note, error)
	ListNotes(ctx context.Context, userID int64, req models.ListNotesRequest) (models.NotesListResponse, error)

	ToggleStar(ctx context.Context, noteID, userID int64) (models.Note, error)
	UpdateNote(ctx context.Context, noteID, userID int64, update models.NoteUpdate) (models.Note, error)
	DeleteNote(ctx context.Context, noteID, userID int64) (bool, error)
}

// NotesServiceWrapper defines middleware composition for NotesService.
// Implementations wrap an existing NotesService to add behavior such as
// validation.
type NotesServiceWrapper interface {
	Wrap(NotesService) NotesService
}

// IdentityService turns a bearer token into the caller's user id and issues
// tokens for the developer CLI.
type IdentityService interface {
	CreateToken(ctx context.Context, userID int64) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// HealthService reports whether the backing storage answers.
type HealthService interface {
	Check(ctx context.Context) error
}
