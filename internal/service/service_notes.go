// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/store"
	"github.com/MKhiriev/notes-keeper/models"
)

// notesService implements NotesService on top of a store.NoteRepository.
// Input validation is left to NotesValidationService.
type notesService struct {
	noteRepository store.NoteRepository

	logger *logger.Logger
}

func NewNotesService(noteRepository store.NoteRepository, logger *logger.Logger) NotesService {
	return &notesService{
		noteRepository: noteRepository,
		logger:         logger,
	}
}

func (s *notesService) CreateNote(ctx context.Context, note models.NewNote) (models.Note, error) {
	log := logger.FromContext(ctx)

	created, err := s.noteRepository.CreateNote(ctx, note)
	if err != nil {
		log.Err(err).Str("func", "notesService.CreateNote").Int64("user_id", note.UserID).Msg("error creating note")
		return models.Note{}, fmt.Errorf("error creating note: %w", err)
	}

	return created, nil
}

// GetNote returns store.ErrNoteNotFound when the id is unknown and
// ErrUnauthorizedAccessToDifferentUserData when the note belongs to someone
// else. An anonymous caller (userID 0) never owns a note.
func (s *notesService) GetNote(ctx context.Context, noteID, userID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	note, err := s.noteRepository.GetNoteByID(ctx, noteID)
	if err != nil {
		if !errors.Is(err, store.ErrNoteNotFound) {
			log.Err(err).Str("func", "notesService.GetNote").Int64("note_id", noteID).Msg("error getting note")
		}
		return models.Note{}, fmt.Errorf("error getting note: %w", err)
	}

	if note.UserID != userID {
		log.Warn().Str("func", "notesService.GetNote").
			Int64("note_id", noteID).
			Int64("user_id", userID).
			Msg("attempt to read a note of a different user")
		return models.Note{}, ErrUnauthorizedAccessToDifferentUserData
	}

	return note, nil
}

func (s *notesService) ListNotes(ctx context.Context, userID int64, req models.ListNotesRequest) (models.NotesListResponse, error) {
	log := logger.FromContext(ctx)

	page, err := s.noteRepository.GetNotesByUserID(ctx, userID, req.Pagination())
	if err != nil {
		log.Err(err).Str("func", "notesService.ListNotes").
			Int64("user_id", userID).
			Int("page", req.Page).
			Int("limit", req.Limit).
			Msg("error listing notes")
		return models.NotesListResponse{}, fmt.Errorf("error listing notes: %w", err)
	}

	notes := page.Notes
	if notes == nil {
		notes = []models.Note{}
	}

	return models.NotesListResponse{
		Notes:      notes,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalCount: page.TotalCount,
		TotalPages: totalPages(page.TotalCount, req.Limit),
	}, nil
}

func (s *notesService) ToggleStar(ctx context.Context, noteID, userID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	note, err := s.noteRepository.ToggleStar(ctx, noteID, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNoteNotFound) {
			log.Err(err).Str("func", "notesService.ToggleStar").Int64("note_id", noteID).Int64("user_id", userID).Msg("error toggling star")
		}
		return models.Note{}, fmt.Errorf("error toggling star: %w", err)
	}

	return note, nil
}

func (s *notesService) UpdateNote(ctx context.Context, noteID, userID int64, update models.NoteUpdate) (models.Note, error) {
	log := logger.FromContext(ctx)

	note, err := s.noteRepository.UpdateNote(ctx, noteID, userID, update)
	if err != nil {
		if !errors.Is(err, store.ErrNoteNotFound) {
			log.Err(err).Str("func", "notesService.UpdateNote").Int64("note_id", noteID).Int64("user_id", userID).Msg("error updating note")
		}
		return models.Note{}, fmt.Errorf("error updating note: %w", err)
	}

	return note, nil
}

func (s *notesService) DeleteNote(ctx context.Context, noteID, userID int64) (bool, error) {
	log := logger.FromContext(ctx)

	deleted, err := s.noteRepository.DeleteNote(ctx, noteID, userID)
	if err != nil {
		log.Err(err).Str("func", "notesService.DeleteNote").Int64("note_id", noteID).Int64("user_id", userID).Msg("error deleting note")
		return false, fmt.Errorf("error deleting note: %w", err)
	}

	return deleted, nil
}

// totalPages is ceil(total/limit), and 0 for a zero limit.
func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	l := int64(limit)
	return (total + l - 1) / l
}
