package models

// NotesListResponse is the body of the notes list endpoint.
type NotesListResponse struct {
	Notes      []Note `json:"notes"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalCount int64  `json:"totalCount"`
	TotalPages int64  `json:"totalPages"`
}

// NoteResult is the body returned by mutating endpoints (create, star
// toggle, update). On validation failure Success is false and Errors
// carries the messages keyed by form field.
type NoteResult struct {
	Success bool                `json:"success"`
	Note    *Note               `json:"note,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// NoteDetailResponse is the body of the note detail endpoint.
type NoteDetailResponse struct {
	Note Note `json:"note"`
}

// DeleteResult is the body of the delete endpoint. Deleted is false when no
// note matched, which is not an error.
type DeleteResult struct {
	Success bool `json:"success"`
	Deleted bool `json:"deleted"`
}

// ErrorResponse is the generic JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
