// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/MKhiriev/notes-keeper/internal/service"
	"github.com/MKhiriev/notes-keeper/internal/store"
	"github.com/MKhiriev/notes-keeper/internal/validators"
	"github.com/MKhiriev/notes-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── GET /notes ───────────────────────────────────────────────────────────────

func TestListNotes(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		token      string
		wantReq    *models.ListNotesRequest
		serviceErr error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "defaults",
			path:       "/notes",
			token:      tokenUser1,
			wantReq:    &models.ListNotesRequest{Page: 1, Limit: 10},
			wantStatus: http.StatusOK,
		},
		{
			name:       "explicit page and limit",
			path:       "/notes?page=2&limit=5",
			token:      tokenUser1,
			wantReq:    &models.ListNotesRequest{Page: 2, Limit: 5},
			wantStatus: http.StatusOK,
		},
		{
			name:       "limit above maximum is clamped",
			path:       "/notes?page=3&limit=500",
			token:      tokenUser1,
			wantReq:    &models.ListNotesRequest{Page: 3, Limit: models.MaxPageLimit},
			wantStatus: http.StatusOK,
		},
		{
			name:       "negative limit reaches validation",
			path:       "/notes?limit=-1",
			token:      tokenUser1,
			wantReq:    &models.ListNotesRequest{Page: 1, Limit: -1},
			serviceErr: fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.FieldErrors{"limit": {"limit must be greater than or equal to 0"}}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid pagination parameters"}`,
		},
		{
			name:       "non-numeric page",
			path:       "/notes?page=abc",
			token:      tokenUser1,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid pagination parameters"}`,
		},
		{
			name:       "out of range rejected by service",
			path:       "/notes?page=0",
			token:      tokenUser1,
			wantReq:    &models.ListNotesRequest{Page: 0, Limit: 10},
			serviceErr: fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.FieldErrors{"page": {"page must be greater than or equal to 1"}}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid pagination parameters"}`,
		},
		{
			name:       "storage failure",
			path:       "/notes",
			token:      tokenUser1,
			wantReq:    &models.ListNotesRequest{Page: 1, Limit: 10},
			serviceErr: fmt.Errorf("error listing notes: %w", store.ErrExecutingQuery),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to load notes"}`,
		},
		{
			name:       "no token",
			path:       "/notes",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Unauthorized"}`,
		},
		{
			name:       "invalid token",
			path:       "/notes",
			token:      "forged",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Unauthorized"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, deps := newTestRouter(t)

			if tt.wantReq != nil {
				resp := models.NotesListResponse{
					Notes:      []models.Note{testNote()},
					Page:       tt.wantReq.Page,
					Limit:      tt.wantReq.Limit,
					TotalCount: 1,
					TotalPages: 1,
				}
				if tt.serviceErr != nil {
					resp = models.NotesListResponse{}
				}
				deps.notes.EXPECT().ListNotes(gomock.Any(), int64(1), *tt.wantReq).Return(resp, tt.serviceErr)
			}

			rec := do(t, router, testRequest{method: http.MethodGet, path: tt.path, token: tt.token})

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestListNotes_Body(t *testing.T) {
	router, deps := newTestRouter(t)

	deps.notes.EXPECT().
		ListNotes(gomock.Any(), int64(1), models.ListNotesRequest{Page: 1, Limit: 10}).
		Return(models.NotesListResponse{Notes: []models.Note{testNote()}, Page: 1, Limit: 10, TotalCount: 15, TotalPages: 2}, nil)

	rec := do(t, router, testRequest{method: http.MethodGet, path: "/notes", token: tokenUser1})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"notes": [{"id":5,"userId":1,"title":"Groceries","description":"","isStarred":false,"createdAt":"2026-03-01T10:00:00Z"}],
		"page": 1, "limit": 10, "totalCount": 15, "totalPages": 2
	}`, rec.Body.String())
}

// ── POST /notes ──────────────────────────────────────────────────────────────

func TestCreateNote_Success(t *testing.T) {
	router, deps := newTestRouter(t)

	deps.notes.EXPECT().
		CreateNote(gomock.Any(), models.NewNote{UserID: 1, Title: "Groceries", Description: "milk"}).
		Return(testNote(), nil)

	rec := do(t, router, testRequest{
		method: http.MethodPost,
		path:   "/notes",
		token:  tokenUser1,
		form:   url.Values{"title": {"Groceries"}, "description": {"milk"}},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), `"title":"Groceries"`)
}

func TestCreateNote_ValidationFailure(t *testing.T) {
	router, deps := newTestRouter(t)

	fieldErrs := validators.FieldErrors{"title": {"title is required"}}
	deps.notes.EXPECT().
		CreateNote(gomock.Any(), gomock.Any()).
		Return(models.Note{}, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, fieldErrs))

	rec := do(t, router, testRequest{
		method: http.MethodPost,
		path:   "/notes",
		token:  tokenUser1,
		form:   url.Values{"title": {""}},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"errors":{"title":["title is required"]}}`, rec.Body.String())
}

func TestCreateNote_StorageFailure(t *testing.T) {
	router, deps := newTestRouter(t)

	deps.notes.EXPECT().
		CreateNote(gomock.Any(), gomock.Any()).
		Return(models.Note{}, fmt.Errorf("error creating note: %w: %w", store.ErrExecutingQuery, errors.New("pq: connection reset")))

	rec := do(t, router, testRequest{
		method: http.MethodPost,
		path:   "/notes",
		token:  tokenUser1,
		form:   url.Values{"title": {"x"}},
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to create note"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

// ── GET /notes/{id} ──────────────────────────────────────────────────────────

func TestGetNote(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		token      string
		wantUserID int64
		serviceErr error
		callsSvc   bool
		wantStatus int
		wantBody   string
	}{
		{
			name:       "owner",
			path:       "/notes/5",
			token:      tokenUser1,
			wantUserID: 1,
			callsSvc:   true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "different owner",
			path:       "/notes/5",
			token:      tokenUser2,
			wantUserID: 2,
			serviceErr: service.ErrUnauthorizedAccessToDifferentUserData,
			callsSvc:   true,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Unauthorized user. Note not belongs to this user"}`,
		},
		{
			name:       "anonymous",
			path:       "/notes/5",
			wantUserID: 0,
			serviceErr: service.ErrUnauthorizedAccessToDifferentUserData,
			callsSvc:   true,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Unauthorized user. Note not belongs to this user"}`,
		},
		{
			name:       "invalid token treated as anonymous",
			path:       "/notes/5",
			token:      "forged",
			wantUserID: 0,
			serviceErr: service.ErrUnauthorizedAccessToDifferentUserData,
			callsSvc:   true,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing",
			path:       "/notes/5",
			token:      tokenUser1,
			wantUserID: 1,
			serviceErr: fmt.Errorf("error getting note: %w", store.ErrNoteNotFound),
			callsSvc:   true,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Note not found"}`,
		},
		{
			name:       "non-integer id",
			path:       "/notes/abc",
			token:      tokenUser1,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid note ID"}`,
		},
		{
			name:       "zero id",
			path:       "/notes/0",
			token:      tokenUser1,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid note ID"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, deps := newTestRouter(t)

			if tt.callsSvc {
				note := testNote()
				if tt.serviceErr != nil {
					note = models.Note{}
				}
				deps.notes.EXPECT().GetNote(gomock.Any(), int64(5), tt.wantUserID).Return(note, tt.serviceErr)
			}

			rec := do(t, router, testRequest{method: http.MethodGet, path: tt.path, token: tt.token})

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"note":{"id":5`)
			}
		})
	}
}

// ── PATCH /notes/{id} ────────────────────────────────────────────────────────

func TestUpdateNote_OnlyPresentFields(t *testing.T) {
	router, deps := newTestRouter(t)

	updated := testNote()
	updated.Title = "Renamed"
	updated.IsStarred = true

	deps.notes.EXPECT().
		UpdateNote(gomock.Any(), int64(5), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, _ int64, update models.NoteUpdate) (models.Note, error) {
			require.NotNil(t, update.Title)
			assert.Equal(t, "Renamed", *update.Title)
			assert.Nil(t, update.Description)
			require.NotNil(t, update.IsStarred)
			assert.True(t, *update.IsStarred)
			return updated, nil
		})

	rec := do(t, router, testRequest{
		method: http.MethodPatch,
		path:   "/notes/5",
		token:  tokenUser1,
		form:   url.Values{"title": {"Renamed"}, "isStarred": {"true"}},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Renamed"`)
}

func TestUpdateNote_ClearDescription(t *testing.T) {
	router, deps := newTestRouter(t)

	deps.notes.EXPECT().
		UpdateNote(gomock.Any(), int64(5), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, _ int64, update models.NoteUpdate) (models.Note, error) {
			require.NotNil(t, update.Description)
			assert.Empty(t, *update.Description)
			return testNote(), nil
		})

	rec := do(t, router, testRequest{
		method: http.MethodPatch,
		path:   "/notes/5",
		token:  tokenUser1,
		form:   url.Values{"description": {""}},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateNote_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		form       url.Values
		serviceErr error
		callsSvc   bool
		wantStatus int
		wantBody   string
	}{
		{
			name:       "malformed isStarred",
			path:       "/notes/5",
			form:       url.Values{"isStarred": {"maybe"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"errors":{"isStarred":["isStarred must be a boolean"]}}`,
		},
		{
			name:       "bad id",
			path:       "/notes/x",
			form:       url.Values{"title": {"t"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid note ID"}`,
		},
		{
			name:       "empty update",
			path:       "/notes/5",
			form:       url.Values{},
			serviceErr: fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrNoFieldsToUpdate),
			callsSvc:   true,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid request"}`,
		},
		{
			name:       "not found for owner",
			path:       "/notes/5",
			form:       url.Values{"title": {"t"}},
			serviceErr: fmt.Errorf("error updating note: %w", store.ErrNoteNotFound),
			callsSvc:   true,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Note not found"}`,
		},
		{
			name:       "storage failure",
			path:       "/notes/5",
			form:       url.Values{"title": {"t"}},
			serviceErr: store.ErrScanningRow,
			callsSvc:   true,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to update note"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, deps := newTestRouter(t)

			if tt.callsSvc {
				deps.notes.EXPECT().UpdateNote(gomock.Any(), int64(5), int64(1), gomock.Any()).Return(models.Note{}, tt.serviceErr)
			}

			rec := do(t, router, testRequest{method: http.MethodPatch, path: tt.path, token: tokenUser1, form: tt.form})

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

// ── DELETE /notes/{id} ───────────────────────────────────────────────────────

func TestDeleteNote(t *testing.T) {
	for _, deleted := range []bool{true, false} {
		t.Run(fmt.Sprintf("deleted=%t", deleted), func(t *testing.T) {
			router, deps := newTestRouter(t)

			deps.notes.EXPECT().DeleteNote(gomock.Any(), int64(5), int64(1)).Return(deleted, nil)

			rec := do(t, router, testRequest{method: http.MethodDelete, path: "/notes/5", token: tokenUser1})

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"success":true,"deleted":%t}`, deleted), rec.Body.String())
		})
	}
}

func TestDeleteNote_StorageFailure(t *testing.T) {
	router, deps := newTestRouter(t)

	deps.notes.EXPECT().DeleteNote(gomock.Any(), int64(5), int64(1)).Return(false, store.ErrExecutingStatement)

	rec := do(t, router, testRequest{method: http.MethodDelete, path: "/notes/5", token: tokenUser1})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to delete note"}`, rec.Body.String())
}

// ── POST /api/notes/star ─────────────────────────────────────────────────────

func TestToggleStar(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		serviceErr error
		callsSvc   bool
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success ignores submitted isStarred",
			form:       url.Values{"noteId": {"5"}, "isStarred": {"false"}, "intent": {"toggleStar"}},
			callsSvc:   true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong intent",
			form:       url.Values{"noteId": {"5"}, "intent": {"delete"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid request"}`,
		},
		{
			name:       "missing intent",
			form:       url.Values{"noteId": {"5"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid request"}`,
		},
		{
			name:       "missing note id",
			form:       url.Values{"intent": {"toggleStar"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid request"}`,
		},
		{
			name:       "non-integer note id",
			form:       url.Values{"noteId": {"abc"}, "intent": {"toggleStar"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid note ID"}`,
		},
		{
			name:       "not found for owner",
			form:       url.Values{"noteId": {"5"}, "intent": {"toggleStar"}},
			serviceErr: fmt.Errorf("error toggling star: %w", store.ErrNoteNotFound),
			callsSvc:   true,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Note not found"}`,
		},
		{
			name:       "storage failure",
			form:       url.Values{"noteId": {"5"}, "intent": {"toggleStar"}},
			serviceErr: fmt.Errorf("error toggling star: %w", store.ErrExecutingQuery),
			callsSvc:   true,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to toggle star"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, deps := newTestRouter(t)

			if tt.callsSvc {
				starred := testNote()
				starred.IsStarred = true
				if tt.serviceErr != nil {
					starred = models.Note{}
				}
				deps.notes.EXPECT().ToggleStar(gomock.Any(), int64(5), int64(1)).Return(starred, tt.serviceErr)
			}

			rec := do(t, router, testRequest{method: http.MethodPost, path: "/api/notes/star", token: tokenUser1, form: tt.form})

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			} else {
				assert.True(t, strings.Contains(rec.Body.String(), `"isStarred":true`))
			}
		})
	}
}

func TestToggleStar_RequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(t, router, testRequest{
		method: http.MethodPost,
		path:   "/api/notes/star",
		form:   url.Values{"noteId": {"5"}, "intent": {"toggleStar"}},
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
