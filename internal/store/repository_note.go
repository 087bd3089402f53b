// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/models"
)

// noteRepository is the SQL implementation of [NoteRepository]. The same code
// serves PostgreSQL and SQLite; dialect differences live in [DB].
//
// Every method obtains a context-scoped logger via [logger.FromContext] so
// that database failures are traced together with the request's trace id.
type noteRepository struct {
	*DB
	logger *logger.Logger
}

// NewNoteRepository constructs a [NoteRepository] backed by db.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Str("driver", db.driver).Msg("creating note repository")
	return &noteRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateNote inserts a note with a single INSERT ... RETURNING.
func (r *noteRepository) CreateNote(ctx context.Context, newNote models.NewNote) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildInsertNoteQuery(newNote)
	if err != nil {
		log.Err(err).Str("func", "noteRepository.CreateNote").Msg("failed to build query")
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	note, err := scanNote(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.CreateNote").
			Int64("user_id", newNote.UserID).
			Stringer("classification", r.errorClassificator.Classify(err)).
			Str("pg_code", postgresError(err)).
			Msg("failed to insert note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return note, nil
}

// GetNoteByID fetches a note by its identifier only.
func (r *noteRepository) GetNoteByID(ctx context.Context, id int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildSelectNoteByIDQuery(id)
	if err != nil {
		log.Err(err).Str("func", "noteRepository.GetNoteByID").Msg("failed to build query")
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var note models.Note
	err = r.retryRead(ctx, func() error {
		var scanErr error
		note, scanErr = scanNote(r.DB.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, ErrNoteNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.GetNoteByID").
			Int64("note_id", id).
			Msg("failed to get note by id")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return note, nil
}

// GetNotesByUserID runs the page query and the count query concurrently.
// The two statements are not executed in one transaction, so a concurrent
// insert may make TotalCount disagree with the page by one.
func (r *noteRepository) GetNotesByUserID(ctx context.Context, userID int64, pagination models.Pagination) (models.NotesPage, error) {
	log := logger.FromContext(ctx)

	if pagination.Limit < 0 || pagination.Offset < 0 {
		return models.NotesPage{}, fmt.Errorf("%w: limit=%d offset=%d", ErrInvalidPagination, pagination.Limit, pagination.Offset)
	}

	page := models.NotesPage{Notes: []models.Note{}}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := r.countNotes(gctx, userID)
		if err != nil {
			return err
		}
		page.TotalCount = total
		return nil
	})

	// a zero limit only asks for the count
	if pagination.Limit > 0 {
		g.Go(func() error {
			notes, err := r.selectNotes(gctx, userID, pagination)
			if err != nil {
				return err
			}
			page.Notes = notes
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Err(err).
			Str("func", "noteRepository.GetNotesByUserID").
			Int64("user_id", userID).
			Int("limit", pagination.Limit).
			Int("offset", pagination.Offset).
			Msg("failed to get notes page")
		return models.NotesPage{}, err
	}

	return page, nil
}

func (r *noteRepository) selectNotes(ctx context.Context, userID int64, pagination models.Pagination) ([]models.Note, error) {
	query, args, err := r.buildSelectNotesByUserQuery(userID, pagination)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var notes []models.Note
	err = r.retryRead(ctx, func() error {
		var queryErr error
		notes, queryErr = r.queryNotes(ctx, query, args...)
		return queryErr
	})
	if err != nil {
		return nil, err
	}

	return notes, nil
}

func (r *noteRepository) queryNotes(ctx context.Context, query string, args ...any) ([]models.Note, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, 16)
	for rows.Next() {
		note, scanErr := scanNote(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		notes = append(notes, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return notes, nil
}

func (r *noteRepository) countNotes(ctx context.Context, userID int64) (int64, error) {
	query, args, err := r.buildCountNotesByUserQuery(userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	err = r.retryRead(ctx, func() error {
		return r.DB.QueryRowContext(ctx, query, args...).Scan(&total)
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return total, nil
}

// ToggleStar flips is_starred in one conditional UPDATE ... RETURNING.
func (r *noteRepository) ToggleStar(ctx context.Context, noteID, userID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildToggleStarQuery(noteID, userID)
	if err != nil {
		log.Err(err).Str("func", "noteRepository.ToggleStar").Msg("failed to build query")
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	note, err := scanNote(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, ErrNoteNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.ToggleStar").
			Int64("note_id", noteID).
			Int64("user_id", userID).
			Str("pg_code", postgresError(err)).
			Msg("failed to toggle star")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return note, nil
}

// UpdateNote writes the non-nil fields of update.
func (r *noteRepository) UpdateNote(ctx context.Context, id, userID int64, update models.NoteUpdate) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildUpdateNoteQuery(id, userID, update)
	if errors.Is(err, ErrNothingToUpdate) {
		return models.Note{}, err
	}
	if err != nil {
		log.Err(err).Str("func", "noteRepository.UpdateNote").Msg("failed to build query")
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	note, err := scanNote(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, ErrNoteNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.UpdateNote").
			Int64("note_id", id).
			Int64("user_id", userID).
			Str("pg_code", postgresError(err)).
			Msg("failed to update note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return note, nil
}

// DeleteNote removes the owner's note. Deleting a missing note is not an error.
func (r *noteRepository) DeleteNote(ctx context.Context, id, userID int64) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildDeleteNoteQuery(id, userID)
	if err != nil {
		log.Err(err).Str("func", "noteRepository.DeleteNote").Msg("failed to build query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.DeleteNote").
			Int64("note_id", id).
			Int64("user_id", userID).
			Str("pg_code", postgresError(err)).
			Msg("failed to delete note")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "noteRepository.DeleteNote").Msg("failed to get affected rows")
		return false, fmt.Errorf("%w: %w", ErrGettingAffectedRows, err)
	}

	return affected > 0, nil
}
