package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/notes-keeper/models"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// sqliteTimeLayouts are the text layouts SQLite may hand back for created_at
// when the driver does not convert the column itself.
var sqliteTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// timestamp scans time values from drivers that return either time.Time
// (pgx, go-sqlite3 for DATETIME columns) or text.
type timestamp struct {
	time.Time
}

// Scan implements [sql.Scanner].
func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (t *timestamp) parse(s string) error {
	for _, layout := range sqliteTimeLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp format %q", s)
}

func scanNote(row rowScanner) (models.Note, error) {
	var (
		note        models.Note
		description sql.NullString
		createdAt   timestamp
	)

	if err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&description,
		&note.IsStarred,
		&createdAt,
	); err != nil {
		return models.Note{}, err
	}

	note.Description = description.String
	note.CreatedAt = createdAt.Time

	return note, nil
}
