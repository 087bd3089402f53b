package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/notes-keeper/internal/app"
	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/service"
	"github.com/MKhiriev/notes-keeper/internal/store"
	"github.com/MKhiriev/notes-keeper/internal/utils"
	"github.com/MKhiriev/notes-keeper/internal/validators"
	"github.com/MKhiriev/notes-keeper/models"
)

// errorStatuses is matched top to bottom with errors.Is. Storage errors wrap
// their cause, so the context errors come first: a timed-out query is a 504,
// not a 500.
var errorStatuses = []struct {
	err    error
	status int
}{
	{context.DeadlineExceeded, http.StatusGatewayTimeout},
	{errRateLimited, http.StatusTooManyRequests},
	{ErrNoUserInContext, http.StatusUnauthorized},

	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrUnauthorizedAccessToDifferentUserData, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrStorageUnavailable, http.StatusServiceUnavailable},

	{store.ErrNoteNotFound, http.StatusNotFound},
	{store.ErrInvalidPagination, http.StatusBadRequest},
	{store.ErrNothingToUpdate, http.StatusBadRequest},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
	{store.ErrGettingAffectedRows, http.StatusInternalServerError},
}

var defaultErrorMessages = map[int]string{
	http.StatusBadRequest:         app.MsgInvalidRequest,
	http.StatusUnauthorized:       app.MsgUnauthorized,
	http.StatusNotFound:           app.MsgNoteNotFound,
	http.StatusTooManyRequests:    app.MsgTooManyRequests,
	http.StatusServiceUnavailable: app.MsgServiceUnavailable,
	http.StatusGatewayTimeout:     app.MsgRequestTimedOut,
}

func statusFromError(err error) int {
	for _, rule := range errorStatuses {
		if errors.Is(err, rule.err) {
			return rule.status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with {"error": message}. The message is taken from
// overrides by status, then from the defaults; a 500 without an override
// gets the generic status text.
func writeError(w http.ResponseWriter, r *http.Request, err error, funcName string, overrides map[int]string) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	}

	message, ok := overrides[status]
	if !ok {
		message, ok = defaultErrorMessages[status]
	}
	if !ok {
		message = http.StatusText(status)
	}

	utils.WriteError(w, message, status)
}

// writeNoteError is writeError for the mutating endpoints: validation
// failures that carry field messages are answered with
// {"success": false, "errors": {...}}.
func writeNoteError(w http.ResponseWriter, r *http.Request, err error, funcName string, overrides map[int]string) {
	if fieldErrs, ok := validators.AsFieldErrors(err); ok {
		logger.FromRequest(r).Debug().Err(err).Str("func", funcName).Msg("validation failed")
		utils.WriteJSON(w, models.NoteResult{Success: false, Errors: fieldErrs}, http.StatusBadRequest)
		return
	}

	writeError(w, r, err, funcName, overrides)
}
