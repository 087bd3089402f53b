package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoteNotFound is returned when no note matches the requested id
	// (and owner, for owner-scoped operations).
	ErrNoteNotFound = errors.New("note not found")

	// ErrInvalidPagination is returned when a negative limit or offset is
	// passed to a paginated query.
	ErrInvalidPagination = errors.New("invalid pagination")

	// ErrNothingToUpdate is returned when an update carries no fields.
	ErrNothingToUpdate = errors.New("nothing to update")

	// ErrUnsupportedDriver is returned when the configured database driver
	// is neither PostgreSQL nor SQLite.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or a statement
	// with a RETURNING clause fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// without a result set (DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan note row")

	// ErrScanningRows is returned when iterating a multi-row result fails,
	// typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan note rows")

	// ErrGettingAffectedRows is returned when the driver cannot report how
	// many rows a statement changed.
	ErrGettingAffectedRows = errors.New("failed to get affected rows")

	// ErrPingingDB is returned when the database does not answer a ping.
	ErrPingingDB = errors.New("database is unreachable")
)
