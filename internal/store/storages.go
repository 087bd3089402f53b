package store

// Storages bundles every storage dependency of the service layer.
type Storages struct {
	NoteRepository NoteRepository
	HealthChecker  HealthChecker
}

// NewStorages builds the repositories on top of an opened database.
func NewStorages(db *DB) *Storages {
	return &Storages{
		NoteRepository: NewNoteRepository(db, db.logger),
		HealthChecker:  db,
	}
}
