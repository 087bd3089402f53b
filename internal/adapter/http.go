package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/notes-keeper/internal/config"
	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/utils"
	"github.com/MKhiriev/notes-keeper/models"
)

type httpNotesAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPNotesAdapter constructs the REST implementation of [NotesAdapter].
// The base URL is taken from cfg.HTTPAddress; a bare "host:port" is treated
// as plain HTTP. cfg.Token, when set, is used as the initial bearer token.
func NewHTTPNotesAdapter(cfg config.ClientAdapter, logger *logger.Logger) (NotesAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	a := &httpNotesAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}
	a.SetToken(cfg.Token)

	a.client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		a.logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("duration", resp.Time()).
			Msg("notes api call")
		return nil
	})

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpNotesAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpNotesAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// ListNotes implements [NotesAdapter] with GET /notes?page=&limit=.
func (h *httpNotesAdapter) ListNotes(ctx context.Context, req models.ListNotesRequest) (models.NotesListResponse, error) {
	var page models.NotesListResponse

	r := h.authedRequest(ctx).SetResult(&page)
	if req.Page != 0 {
		r.SetQueryParam("page", strconv.Itoa(req.Page))
	}
	if req.Limit != 0 {
		r.SetQueryParam("limit", strconv.Itoa(req.Limit))
	}

	resp, err := r.Get("/notes")
	if err != nil {
		return models.NotesListResponse{}, fmt.Errorf("list notes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.NotesListResponse{}, err
	}

	return page, nil
}

// CreateNote implements [NotesAdapter] with a form-encoded POST /notes.
func (h *httpNotesAdapter) CreateNote(ctx context.Context, form models.NoteForm) (models.Note, error) {
	resp, err := h.authedRequest(ctx).
		SetFormData(map[string]string{
			"title":       form.Title,
			"description": form.Description,
		}).
		SetResult(&models.NoteResult{}).
		Post("/notes")
	if err != nil {
		return models.Note{}, fmt.Errorf("create note request: %w", err)
	}

	return noteFromResult(resp)
}

// GetNote implements [NotesAdapter] with GET /notes/{id}.
func (h *httpNotesAdapter) GetNote(ctx context.Context, noteID int64) (models.Note, error) {
	var detail models.NoteDetailResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&detail).
		Get(notePath(noteID))
	if err != nil {
		return models.Note{}, fmt.Errorf("get note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	return detail.Note, nil
}

// UpdateNote implements [NotesAdapter] with a form-encoded PATCH
// /notes/{id}. Only the non-nil fields of update are sent.
func (h *httpNotesAdapter) UpdateNote(ctx context.Context, noteID int64, update models.NoteUpdate) (models.Note, error) {
	form := make(map[string]string, 3)
	if update.Title != nil {
		form["title"] = *update.Title
	}
	if update.Description != nil {
		form["description"] = *update.Description
	}
	if update.IsStarred != nil {
		form["isStarred"] = strconv.FormatBool(*update.IsStarred)
	}

	resp, err := h.authedRequest(ctx).
		SetFormData(form).
		SetResult(&models.NoteResult{}).
		Patch(notePath(noteID))
	if err != nil {
		return models.Note{}, fmt.Errorf("update note request: %w", err)
	}

	return noteFromResult(resp)
}

// DeleteNote implements [NotesAdapter] with DELETE /notes/{id}.
func (h *httpNotesAdapter) DeleteNote(ctx context.Context, noteID int64) (bool, error) {
	var result models.DeleteResult

	resp, err := h.authedRequest(ctx).
		SetResult(&result).
		Delete(notePath(noteID))
	if err != nil {
		return false, fmt.Errorf("delete note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	return result.Deleted, nil
}

// ToggleStar implements [NotesAdapter] with the star form action. The
// server flips the stored flag, so no isStarred value is sent.
func (h *httpNotesAdapter) ToggleStar(ctx context.Context, noteID int64) (models.Note, error) {
	resp, err := h.authedRequest(ctx).
		SetFormData(map[string]string{
			"noteId": strconv.FormatInt(noteID, 10),
			"intent": models.ToggleStarIntent,
		}).
		SetResult(&models.NoteResult{}).
		Post("/api/notes/star")
	if err != nil {
		return models.Note{}, fmt.Errorf("toggle star request: %w", err)
	}

	return noteFromResult(resp)
}

func (h *httpNotesAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpNotesAdapter) Health(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/api/health")
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpNotesAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func notePath(noteID int64) string {
	return "/notes/" + strconv.FormatInt(noteID, 10)
}

func noteFromResult(resp *resty.Response) (models.Note, error) {
	if err := mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	result, ok := resp.Result().(*models.NoteResult)
	if !ok || result.Note == nil {
		return models.Note{}, fmt.Errorf("%w: response carries no note", ErrDecodingPayload)
	}

	return *result.Note, nil
}
