// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/notes-keeper/models"
)

var notesTable = models.Note{}.TableName()

var noteColumns = []string{
	"id",
	"user_id",
	"title",
	"description",
	"is_starred",
	"created_at",
}

// notesOrder is the page order: starred first, newest first, and the
// identifier as a final key so that notes created within the same clock tick
// still come back in a stable order.
var notesOrder = []string{
	"is_starred DESC",
	"created_at DESC",
	"id DESC",
}

func returningNoteColumns() string {
	return "RETURNING " + strings.Join(noteColumns, ", ")
}

func (db *DB) buildInsertNoteQuery(note models.NewNote) (string, []any, error) {
	return db.builder.
		Insert(notesTable).
		Columns("user_id", "title", "description").
		Values(note.UserID, note.Title, nullableString(note.Description)).
		Suffix(returningNoteColumns()).
		ToSql()
}

func (db *DB) buildSelectNoteByIDQuery(id int64) (string, []any, error) {
	return db.builder.
		Select(noteColumns...).
		From(notesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func (db *DB) buildSelectNotesByUserQuery(userID int64, pagination models.Pagination) (string, []any, error) {
	return db.builder.
		Select(noteColumns...).
		From(notesTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy(notesOrder...).
		Limit(uint64(pagination.Limit)).
		Offset(uint64(pagination.Offset)).
		ToSql()
}

func (db *DB) buildCountNotesByUserQuery(userID int64) (string, []any, error) {
	return db.builder.
		Select("COUNT(*)").
		From(notesTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// buildToggleStarQuery negates the stored flag inside the database so that
// concurrent toggles serialize on the row instead of racing on a read value.
func (db *DB) buildToggleStarQuery(noteID, userID int64) (string, []any, error) {
	return db.builder.
		Update(notesTable).
		Set("is_starred", sq.Expr("NOT is_starred")).
		Where(sq.Eq{"id": noteID, "user_id": userID}).
		Suffix(returningNoteColumns()).
		ToSql()
}

func (db *DB) buildUpdateNoteQuery(id, userID int64, update models.NoteUpdate) (string, []any, error) {
	clauses := make(map[string]any, 3)
	if update.Title != nil {
		clauses["title"] = *update.Title
	}
	if update.Description != nil {
		clauses["description"] = nullableString(*update.Description)
	}
	if update.IsStarred != nil {
		clauses["is_starred"] = *update.IsStarred
	}

	if len(clauses) == 0 {
		return "", nil, ErrNothingToUpdate
	}

	return db.builder.
		Update(notesTable).
		SetMap(clauses).
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix(returningNoteColumns()).
		ToSql()
}

func (db *DB) buildDeleteNoteQuery(id, userID int64) (string, []any, error) {
	return db.builder.
		Delete(notesTable).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
}

// nullableString stores an empty description as NULL.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
