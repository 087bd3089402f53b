package models

const (
	// DefaultPage is the page used when the request does not specify one.
	DefaultPage = 1
	// DefaultPageLimit is the page size used when the request does not specify one.
	DefaultPageLimit = 10
	// MaxPageLimit is the largest page size served. The HTTP layer clamps
	// larger limits to it; the service rejects them.
	MaxPageLimit = 100

	// ToggleStarIntent is the only accepted value of the star form's "intent" field.
	ToggleStarIntent = "toggleStar"
)

// ListNotesRequest is the 1-based page request of the notes list endpoint.
type ListNotesRequest struct {
	Page  int `json:"page" form:"page" validate:"gte=1"`
	Limit int `json:"limit" form:"limit" validate:"gte=0,lte=100"`
}

// Pagination converts the page request into a limit/offset window.
func (r ListNotesRequest) Pagination() Pagination {
	return Pagination{
		Limit:  r.Limit,
		Offset: (r.Page - 1) * r.Limit,
	}
}

// NoteForm holds the form-encoded fields of the create-note submission.
type NoteForm struct {
	Title       string `form:"title" validate:"required,notblank,max=255"`
	Description string `form:"description" validate:"max=10000"`
}

// ToNewNote builds the create input for the given owner.
func (f NoteForm) ToNewNote(userID int64) NewNote {
	return NewNote{
		UserID:      userID,
		Title:       f.Title,
		Description: f.Description,
	}
}

// StarForm holds the form-encoded fields of the star toggle submission.
// IsStarred is accepted for compatibility with existing clients but ignored:
// the new value is always the negation of the stored one.
type StarForm struct {
	NoteID    string `form:"noteId"`
	IsStarred string `form:"isStarred"`
	Intent    string `form:"intent"`
}
