// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/notes-keeper/internal/app"
	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/utils"
	"github.com/MKhiriev/notes-keeper/internal/validators"
	"github.com/MKhiriev/notes-keeper/models"
)

var (
	errInvalidNoteID     = errors.New("invalid note id")
	errInvalidPagination = errors.New("invalid pagination parameters")
	errInvalidStarForm   = errors.New("invalid star form")
)

// listNotes serves GET /notes?page=&limit=. Missing parameters default to
// page 1 and limit 10.
func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err, "Handler.listNotes", nil)
		return
	}

	req, err := parseListNotesRequest(r)
	if err != nil {
		utils.WriteError(w, app.MsgInvalidPagination, http.StatusBadRequest)
		return
	}

	resp, err := h.services.NotesService.ListNotes(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err, "Handler.listNotes", map[int]string{
			http.StatusBadRequest:          app.MsgInvalidPagination,
			http.StatusInternalServerError: app.MsgFailedToLoadNotes,
		})
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// createNote serves POST /notes with form fields "title" and "description".
func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err, "Handler.createNote", nil)
		return
	}

	if err = r.ParseForm(); err != nil {
		logger.FromRequest(r).Debug().Err(err).Str("func", "Handler.createNote").Msg("invalid form")
		utils.WriteError(w, app.MsgInvalidRequest, http.StatusBadRequest)
		return
	}

	form := models.NoteForm{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
	}

	note, err := h.services.NotesService.CreateNote(r.Context(), form.ToNewNote(userID))
	if err != nil {
		writeNoteError(w, r, err, "Handler.createNote", map[int]string{
			http.StatusInternalServerError: app.MsgFailedToCreateNote,
		})
		return
	}

	utils.WriteJSON(w, models.NoteResult{Success: true, Note: &note}, http.StatusOK)
}

// getNote serves GET /notes/{id}. The caller may be anonymous; only the
// owner gets the note.
func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	noteID, err := noteIDFromURL(r)
	if err != nil {
		utils.WriteError(w, app.MsgInvalidNoteID, http.StatusBadRequest)
		return
	}

	// zero means anonymous and never matches an owner
	userID, _ := utils.GetUserIDFromContext(r.Context())

	note, err := h.services.NotesService.GetNote(r.Context(), noteID, userID)
	if err != nil {
		writeError(w, r, err, "Handler.getNote", map[int]string{
			http.StatusBadRequest:          app.MsgInvalidNoteID,
			http.StatusUnauthorized:        app.MsgNotOwner,
			http.StatusInternalServerError: app.MsgFailedToLoadNote,
		})
		return
	}

	utils.WriteJSON(w, models.NoteDetailResponse{Note: note}, http.StatusOK)
}

// updateNote serves PATCH /notes/{id}. Only the form fields present in the
// request are changed.
func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err, "Handler.updateNote", nil)
		return
	}

	noteID, err := noteIDFromURL(r)
	if err != nil {
		utils.WriteError(w, app.MsgInvalidNoteID, http.StatusBadRequest)
		return
	}

	if err = r.ParseForm(); err != nil {
		logger.FromRequest(r).Debug().Err(err).Str("func", "Handler.updateNote").Msg("invalid form")
		utils.WriteError(w, app.MsgInvalidRequest, http.StatusBadRequest)
		return
	}

	update, fieldErrs := parseNoteUpdate(r)
	if fieldErrs != nil {
		utils.WriteJSON(w, models.NoteResult{Success: false, Errors: fieldErrs}, http.StatusBadRequest)
		return
	}

	note, err := h.services.NotesService.UpdateNote(r.Context(), noteID, userID, update)
	if err != nil {
		writeNoteError(w, r, err, "Handler.updateNote", map[int]string{
			http.StatusInternalServerError: app.MsgFailedToUpdateNote,
		})
		return
	}

	utils.WriteJSON(w, models.NoteResult{Success: true, Note: &note}, http.StatusOK)
}

// deleteNote serves DELETE /notes/{id}. Deleting a missing note is not an
// error: the response reports deleted=false.
func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err, "Handler.deleteNote", nil)
		return
	}

	noteID, err := noteIDFromURL(r)
	if err != nil {
		utils.WriteError(w, app.MsgInvalidNoteID, http.StatusBadRequest)
		return
	}

	deleted, err := h.services.NotesService.DeleteNote(r.Context(), noteID, userID)
	if err != nil {
		writeError(w, r, err, "Handler.deleteNote", map[int]string{
			http.StatusBadRequest:          app.MsgInvalidNoteID,
			http.StatusInternalServerError: app.MsgFailedToDeleteNote,
		})
		return
	}

	utils.WriteJSON(w, models.DeleteResult{Success: true, Deleted: deleted}, http.StatusOK)
}

// toggleStar serves POST /api/notes/star with form fields "noteId" and
// "intent=toggleStar". The submitted "isStarred" is ignored: the stored
// value is always negated.
func (h *Handler) toggleStar(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, r, err, "Handler.toggleStar", nil)
		return
	}

	if err = r.ParseForm(); err != nil {
		utils.WriteError(w, app.MsgInvalidRequest, http.StatusBadRequest)
		return
	}

	form := models.StarForm{
		NoteID:    r.PostFormValue("noteId"),
		IsStarred: r.PostFormValue("isStarred"),
		Intent:    r.PostFormValue("intent"),
	}

	noteID, err := parseStarForm(r, form)
	if err != nil {
		message := app.MsgInvalidRequest
		if errors.Is(err, errInvalidNoteID) {
			message = app.MsgInvalidNoteID
		}
		utils.WriteError(w, message, http.StatusBadRequest)
		return
	}

	note, err := h.services.NotesService.ToggleStar(r.Context(), noteID, userID)
	if err != nil {
		writeError(w, r, err, "Handler.toggleStar", map[int]string{
			http.StatusBadRequest:          app.MsgInvalidNoteID,
			http.StatusInternalServerError: app.MsgFailedToToggleStar,
		})
		return
	}

	utils.WriteJSON(w, models.NoteResult{Success: true, Note: &note}, http.StatusOK)
}

func noteIDFromURL(r *http.Request) (int64, error) {
	return parseNoteID(chi.URLParam(r, "id"))
}

func parseNoteID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidNoteID
	}
	return id, nil
}

func parseListNotesRequest(r *http.Request) (models.ListNotesRequest, error) {
	query := r.URL.Query()
	req := models.ListNotesRequest{Page: models.DefaultPage, Limit: models.DefaultPageLimit}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return models.ListNotesRequest{}, errInvalidPagination
		}
		req.Page = page
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return models.ListNotesRequest{}, errInvalidPagination
		}
		// oversized pages are served at the maximum size
		req.Limit = min(limit, models.MaxPageLimit)
	}

	return req, nil
}

// parseStarForm requires intent=toggleStar and a present noteId.
func parseStarForm(r *http.Request, form models.StarForm) (int64, error) {
	if form.Intent != models.ToggleStarIntent {
		return 0, errInvalidStarForm
	}
	if _, present := r.PostForm["noteId"]; !present {
		return 0, errInvalidStarForm
	}

	return parseNoteID(form.NoteID)
}

// parseNoteUpdate collects the fields present in the form. A malformed
// isStarred is reported as a field error.
func parseNoteUpdate(r *http.Request) (models.NoteUpdate, validators.FieldErrors) {
	var update models.NoteUpdate

	if values, ok := r.PostForm["title"]; ok && len(values) > 0 {
		title := values[0]
		update.Title = &title
	}

	if values, ok := r.PostForm["description"]; ok && len(values) > 0 {
		description := values[0]
		update.Description = &description
	}

	if values, ok := r.PostForm["isStarred"]; ok && len(values) > 0 {
		starred, err := strconv.ParseBool(values[0])
		if err != nil {
			fieldErrs := make(validators.FieldErrors)
			fieldErrs.Add("isStarred", "isStarred must be a boolean")
			return models.NoteUpdate{}, fieldErrs
		}
		update.IsStarred = &starred
	}

	return update, nil
}
