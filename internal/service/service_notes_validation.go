package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/notes-keeper/internal/validators"
	"github.com/MKhiriev/notes-keeper/models"
)

// NotesValidationService rejects malformed input before it reaches the
// wrapped NotesService. Every failure wraps ErrInvalidDataProvided; field
// level failures additionally carry validators.FieldErrors.
type NotesValidationService struct {
	inner     NotesService
	validator validators.Validator
}

func NewNotesValidationService() NotesServiceWrapper {
	return &NotesValidationService{
		validator: validators.NewNoteValidator(),
	}
}

func (v *NotesValidationService) CreateNote(ctx context.Context, note models.NewNote) (models.Note, error) {
	if err := v.validator.Validate(ctx, note); err != nil {
		return models.Note{}, invalid(err)
	}

	return v.inner.CreateNote(ctx, note)
}

// GetNote only checks the note id: an anonymous caller is allowed here and
// is refused by the ownership check instead.
func (v *NotesValidationService) GetNote(ctx context.Context, noteID, userID int64) (models.Note, error) {
	if err := v.validator.Validate(ctx, models.NoteKey{ID: noteID, UserID: userID}, validators.FieldNoteID); err != nil {
		return models.Note{}, invalid(err)
	}

	return v.inner.GetNote(ctx, noteID, userID)
}

func (v *NotesValidationService) ListNotes(ctx context.Context, userID int64, req models.ListNotesRequest) (models.NotesListResponse, error) {
	if err := v.validator.Validate(ctx, models.NoteKey{UserID: userID}, validators.FieldUserID); err != nil {
		return models.NotesListResponse{}, invalid(err)
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.NotesListResponse{}, invalid(err)
	}

	return v.inner.ListNotes(ctx, userID, req)
}

func (v *NotesValidationService) ToggleStar(ctx context.Context, noteID, userID int64) (models.Note, error) {
	if err := v.validator.Validate(ctx, models.NoteKey{ID: noteID, UserID: userID}); err != nil {
		return models.Note{}, invalid(err)
	}

	return v.inner.ToggleStar(ctx, noteID, userID)
}

func (v *NotesValidationService) UpdateNote(ctx context.Context, noteID, userID int64, update models.NoteUpdate) (models.Note, error) {
	if err := v.validator.Validate(ctx, models.NoteKey{ID: noteID, UserID: userID}); err != nil {
		return models.Note{}, invalid(err)
	}
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Note{}, invalid(err)
	}

	return v.inner.UpdateNote(ctx, noteID, userID, update)
}

func (v *NotesValidationService) DeleteNote(ctx context.Context, noteID, userID int64) (bool, error) {
	if err := v.validator.Validate(ctx, models.NoteKey{ID: noteID, UserID: userID}); err != nil {
		return false, invalid(err)
	}

	return v.inner.DeleteNote(ctx, noteID, userID)
}

func (v *NotesValidationService) Wrap(wrapped NotesService) NotesService {
	v.inner = wrapped
	return v
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}
