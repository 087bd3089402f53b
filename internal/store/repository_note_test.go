package store

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/notes-keeper/internal/config"
	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/models"
)

const selectNoteSQL = `SELECT id, user_id, title, description, is_starred, created_at FROM notes`

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newDBFromSQL(db *sql.DB) *DB {
	return newDB(db, config.DriverPostgres, logger.Nop())
}

func newTestRepo(t *testing.T, db *sql.DB) NoteRepository {
	t.Helper()
	return NewNoteRepository(newDBFromSQL(db), logger.Nop())
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var noteRowColumns = []string{"id", "user_id", "title", "description", "is_starred", "created_at"}

func noteRows(notes ...models.Note) *sqlmock.Rows {
	rows := sqlmock.NewRows(noteRowColumns)
	for _, n := range notes {
		var description driver.Value
		if n.Description != "" {
			description = n.Description
		}
		rows.AddRow(n.ID, n.UserID, n.Title, description, n.IsStarred, n.CreatedAt)
	}
	return rows
}

func TestCreateNote(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	insertSQL := `^INSERT INTO notes \(user_id,\s?title,\s?description\) VALUES \(\$1,\s?\$2,\s?\$3\) RETURNING id, user_id, title, description, is_starred, created_at$`

	tests := []struct {
		name    string
		input   models.NewNote
		setup   func(mock sqlmock.Sqlmock)
		want    models.Note
		wantErr error
	}{
		{
			name:  "success with description",
			input: models.NewNote{UserID: 1, Title: "A", Description: "d"},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(insertSQL).
					WithArgs(int64(1), "A", "d").
					WillReturnRows(noteRows(models.Note{ID: 7, UserID: 1, Title: "A", Description: "d", CreatedAt: now}))
			},
			want: models.Note{ID: 7, UserID: 1, Title: "A", Description: "d", CreatedAt: now},
		},
		{
			name:  "empty description is stored as NULL",
			input: models.NewNote{UserID: 1, Title: "A"},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(insertSQL).
					WithArgs(int64(1), "A", nil).
					WillReturnRows(noteRows(models.Note{ID: 8, UserID: 1, Title: "A", CreatedAt: now}))
			},
			want: models.Note{ID: 8, UserID: 1, Title: "A", CreatedAt: now},
		},
		{
			name:  "constraint violation",
			input: models.NewNote{UserID: 1, Title: "A"},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(insertSQL).WillReturnError(pgError(pgerrcode.NotNullViolation))
			},
			wantErr: ErrExecutingQuery,
		},
		{
			name:  "connection failure",
			input: models.NewNote{UserID: 1, Title: "A"},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(insertSQL).WillReturnError(driver.ErrBadConn)
			},
			wantErr: ErrExecutingQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := newTestRepo(t, db)
			tt.setup(mock)

			got, err := repo.CreateNote(testContext(), tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, models.Note{}, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				assert.False(t, got.IsStarred)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateNote_KeepsDriverCause(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	mock.ExpectQuery(`^INSERT INTO notes`).WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateNote(testContext(), models.NewNote{UserID: 1, Title: "A"})

	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, pgerrcode.UniqueViolation, pgErr.Code)
}

func TestCreateNote_LogsPostgresCode(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestRepo(t, db)

	var buf bytes.Buffer
	l := zerolog.New(&buf)
	ctx := l.WithContext(context.Background())

	mock.ExpectQuery(`^INSERT INTO notes`).WillReturnError(pgError(pgerrcode.CheckViolation))

	_, err := repo.CreateNote(ctx, models.NewNote{UserID: 1, Title: "A"})

	require.ErrorIs(t, err, ErrExecutingQuery)
	assert.Contains(t, buf.String(), `"pg_code":"23514"`)
	assert.Contains(t, buf.String(), `"func":"noteRepository.CreateNote"`)
}

func TestGetNoteByID(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(selectNoteSQL + ` WHERE id = $1`)

	t.Run("found regardless of owner", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(query).
			WithArgs(int64(5)).
			WillReturnRows(noteRows(models.Note{ID: 5, UserID: 99, Title: "other", IsStarred: true, CreatedAt: now}))

		got, err := repo.GetNoteByID(testContext(), 5)
		require.NoError(t, err)
		assert.Equal(t, int64(99), got.UserID)
		assert.True(t, got.IsStarred)
		assert.Empty(t, got.Description)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(query).WithArgs(int64(5)).WillReturnRows(sqlmock.NewRows(noteRowColumns))

		_, err := repo.GetNoteByID(testContext(), 5)
		require.ErrorIs(t, err, ErrNoteNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("storage error", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(query).WithArgs(int64(5)).WillReturnError(errors.New("boom"))

		_, err := repo.GetNoteByID(testContext(), 5)
		require.ErrorIs(t, err, ErrScanningRow)
		assert.NotErrorIs(t, err, ErrNoteNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("retryable error is retried", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(query).WithArgs(int64(5)).WillReturnError(pgError(pgerrcode.SerializationFailure))
		mock.ExpectQuery(query).
			WithArgs(int64(5)).
			WillReturnRows(noteRows(models.Note{ID: 5, UserID: 1, Title: "t", CreatedAt: now}))

		got, err := repo.GetNoteByID(testContext(), 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetNotesByUserID(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	pageSQL := regexp.QuoteMeta(selectNoteSQL + ` WHERE user_id = $1 ORDER BY is_starred DESC, created_at DESC, id DESC LIMIT 10 OFFSET 0`)
	countSQL := regexp.QuoteMeta(`SELECT COUNT(*) FROM notes WHERE user_id = $1`)

	t.Run("page and total", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.MatchExpectationsInOrder(false)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(pageSQL).
			WithArgs(int64(1)).
			WillReturnRows(noteRows(
				models.Note{ID: 2, UserID: 1, Title: "starred", IsStarred: true, CreatedAt: now.Add(-time.Hour)},
				models.Note{ID: 3, UserID: 1, Title: "recent", CreatedAt: now},
			))
		mock.ExpectQuery(countSQL).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))

		page, err := repo.GetNotesByUserID(testContext(), 1, models.Pagination{Limit: 10, Offset: 0})
		require.NoError(t, err)
		require.Len(t, page.Notes, 2)
		assert.Equal(t, int64(2), page.Notes[0].ID)
		assert.Equal(t, int64(3), page.Notes[1].ID)
		assert.Equal(t, int64(12), page.TotalCount)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero limit only counts", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(countSQL).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

		page, err := repo.GetNotesByUserID(testContext(), 1, models.Pagination{Limit: 0, Offset: 20})
		require.NoError(t, err)
		assert.NotNil(t, page.Notes)
		assert.Empty(t, page.Notes)
		assert.Equal(t, int64(4), page.TotalCount)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative pagination", func(t *testing.T) {
		for _, p := range []models.Pagination{{Limit: -1}, {Limit: 10, Offset: -5}} {
			db, mock := newTestDB(t)
			repo := newTestRepo(t, db)

			_, err := repo.GetNotesByUserID(testContext(), 1, p)
			require.ErrorIs(t, err, ErrInvalidPagination)
			require.NoError(t, mock.ExpectationsWereMet())
		}
	})

	t.Run("count failure", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.MatchExpectationsInOrder(false)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(pageSQL).WithArgs(int64(1)).WillReturnRows(noteRows())
		mock.ExpectQuery(countSQL).WithArgs(int64(1)).WillReturnError(errors.New("count failed"))

		_, err := repo.GetNotesByUserID(testContext(), 1, models.Pagination{Limit: 10})
		require.ErrorIs(t, err, ErrExecutingQuery)
	})

	t.Run("row iteration failure", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.MatchExpectationsInOrder(false)
		repo := newTestRepo(t, db)

		rows := noteRows(models.Note{ID: 1, UserID: 1, Title: "x", CreatedAt: now}).
			RowError(0, errors.New("broken row"))
		mock.ExpectQuery(pageSQL).WithArgs(int64(1)).WillReturnRows(rows)
		mock.ExpectQuery(countSQL).WithArgs(int64(1)).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

		_, err := repo.GetNotesByUserID(testContext(), 1, models.Pagination{Limit: 10})
		require.ErrorIs(t, err, ErrScanningRows)
	})
}

func TestToggleStar(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	toggleSQL := `^UPDATE notes SET is_starred = NOT is_starred WHERE \(?id = \$1 AND user_id = \$2\)? RETURNING id, user_id, title, description, is_starred, created_at$`

	t.Run("flips in one statement", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(toggleSQL).
			WithArgs(int64(10), int64(1)).
			WillReturnRows(noteRows(models.Note{ID: 10, UserID: 1, Title: "A", IsStarred: true, CreatedAt: now}))

		got, err := repo.ToggleStar(testContext(), 10, 1)
		require.NoError(t, err)
		assert.True(t, got.IsStarred)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong owner is not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(toggleSQL).
			WithArgs(int64(10), int64(2)).
			WillReturnRows(sqlmock.NewRows(noteRowColumns))

		_, err := repo.ToggleStar(testContext(), 10, 2)
		require.ErrorIs(t, err, ErrNoteNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("storage failure", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(toggleSQL).WillReturnError(pgError(pgerrcode.DeadlockDetected))

		_, err := repo.ToggleStar(testContext(), 10, 1)
		require.ErrorIs(t, err, ErrExecutingQuery)
		// mutations are not retried
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateNote(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	title := "new title"
	description := "new description"

	t.Run("only non-nil fields", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(`^UPDATE notes SET description = \$1, title = \$2 WHERE \(?id = \$3 AND user_id = \$4\)? RETURNING`).
			WithArgs(description, title, int64(3), int64(1)).
			WillReturnRows(noteRows(models.Note{ID: 3, UserID: 1, Title: title, Description: description, CreatedAt: now}))

		got, err := repo.UpdateNote(testContext(), 3, 1, models.NoteUpdate{Title: &title, Description: &description})
		require.NoError(t, err)
		assert.Equal(t, title, got.Title)
		assert.Equal(t, description, got.Description)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("star flag", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)
		starred := true

		mock.ExpectQuery(`^UPDATE notes SET is_starred = \$1 WHERE`).
			WithArgs(true, int64(3), int64(1)).
			WillReturnRows(noteRows(models.Note{ID: 3, UserID: 1, Title: "t", IsStarred: true, CreatedAt: now}))

		got, err := repo.UpdateNote(testContext(), 3, 1, models.NoteUpdate{IsStarred: &starred})
		require.NoError(t, err)
		assert.True(t, got.IsStarred)
	})

	t.Run("empty update", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		_, err := repo.UpdateNote(testContext(), 3, 1, models.NoteUpdate{})
		require.ErrorIs(t, err, ErrNothingToUpdate)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestRepo(t, db)

		mock.ExpectQuery(`^UPDATE notes SET title = \$1 WHERE`).
			WithArgs(title, int64(3), int64(2)).
			WillReturnRows(sqlmock.NewRows(noteRowColumns))

		_, err := repo.UpdateNote(testContext(), 3, 2, models.NoteUpdate{Title: &title})
		require.ErrorIs(t, err, ErrNoteNotFound)
	})
}

func TestDeleteNote(t *testing.T) {
	deleteSQL := `^DELETE FROM notes WHERE \(?id = \$1 AND user_id = \$2\)?$`

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		want    bool
		wantErr error
	}{
		{
			name: "removed",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(deleteSQL).WithArgs(int64(4), int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
			},
			want: true,
		},
		{
			name: "nothing to remove",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(deleteSQL).WithArgs(int64(4), int64(1)).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			want: false,
		},
		{
			name: "exec failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(deleteSQL).WillReturnError(errors.New("boom"))
			},
			wantErr: ErrExecutingStatement,
		},
		{
			name: "rows affected failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(deleteSQL).WillReturnResult(sqlmock.NewErrorResult(errors.New("no count")))
			},
			wantErr: ErrGettingAffectedRows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := newTestRepo(t, db)
			tt.setup(mock)

			got, err := repo.DeleteNote(testContext(), 4, 1)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
