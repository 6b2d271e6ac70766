package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/birthday-reminder/internal/api/dto"
	"github.com/hugh/birthday-reminder/internal/api/middleware"
	"github.com/hugh/birthday-reminder/internal/api/validation"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// internalError logs err and answers with the generic internal_error body.
func internalError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, op string, err error) {
	logger.Error(op+" failed",
		"error", err,
		"request_id", middleware.GetRequestID(r.Context()),
	)
	writeJSON(w, http.StatusInternalServerError, dto.ErrInternal)
}

// decodeAndValidate reads a JSON body into dst and checks its validate tags.
// An empty body decodes as an empty object. On failure the 400 response has
// already been written and false is returned.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, dto.InvalidFields("request body must be a valid JSON object"))
		return false
	}

	if fe := validation.Struct(dst); fe != nil {
		writeJSON(w, http.StatusBadRequest, dto.InvalidFields(fe.Message))
		return false
	}

	return true
}

// idParam parses a positive numeric URL parameter. ok is false for anything
// else.
func idParam(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func setTokenCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours
	})
}
