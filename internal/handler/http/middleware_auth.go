package http

import (
	"net/http"

	"github.com/MKhiriev/notes-keeper/internal/app"
	"github.com/MKhiriev/notes-keeper/internal/logger"
	"github.com/MKhiriev/notes-keeper/internal/service"
	"github.com/MKhiriev/notes-keeper/internal/utils"
)

// auth requires a valid "Authorization: Bearer <JWT>" header and stores the
// caller's user id under utils.UserIDCtxKey. Any failure is answered with
// 401 {"error": "Unauthorized"}.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := h.userIDFromRequest(r)
		if err != nil {
			logger.FromRequest(r).Debug().Err(err).Str("func", "Handler.auth").Msg("request is not authenticated")
			utils.WriteError(w, app.MsgUnauthorized, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUserID(r.Context(), userID)))
	})
}

// optionalAuth stores the caller's user id when a valid token is present and
// lets anonymous requests through untouched.
func (h *Handler) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := h.userIDFromRequest(r)
		if err != nil {
			logger.FromRequest(r).Debug().Err(err).Str("func", "Handler.optionalAuth").Msg("continuing as anonymous caller")
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUserID(r.Context(), userID)))
	})
}

func (h *Handler) userIDFromRequest(r *http.Request) (int64, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return 0, ErrEmptyAuthorizationHeader
	}

	tokenString, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return 0, err
	}

	token, err := h.services.IdentityService.ParseToken(r.Context(), tokenString)
	if err != nil {
		return 0, err
	}
	if token.UserID <= 0 {
		return 0, service.ErrTokenIsExpiredOrInvalid
	}

	return token.UserID, nil
}

// callerID returns the id stored by auth. Handlers behind auth can rely on
// it being present.
func callerID(r *http.Request) (int64, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return 0, ErrNoUserInContext
	}
	return userID, nil
}
