package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hugh/birthday-reminder/internal/api/dto"
	"github.com/hugh/birthday-reminder/internal/api/middleware"
	"github.com/hugh/birthday-reminder/internal/database/models"
	"github.com/hugh/birthday-reminder/internal/users"
)

type UserHandler struct {
	users  *users.Service
	logger *slog.Logger
}

func NewUserHandler(userService *users.Service, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: userService, logger: logger}
}

// targetID resolves the {id} parameter. Callers may only modify their own
// account; any other id is reported as a missing user.
func targetID(r *http.Request) (uint, bool) {
	id, ok := idParam(r, "id")
	if !ok || id != middleware.GetUserID(r.Context()) {
		return 0, false
	}
	return id, true
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	input := users.ProfileInput{Name: req.Name, Cellphone: req.Cellphone}
	if req.Source != nil {
		source := models.NotificationSource(*req.Source)
		input.Source = &source
	}
	if input.Name == nil && input.Cellphone == nil && input.Source == nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrNotChangesDetected)
		return
	}

	id, ok := targetID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, dto.ErrUserNotExists)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), id, input)
	h.respond(w, r, "update profile", user, err)
}

func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id, ok := targetID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, dto.ErrUserNotExists)
		return
	}

	user, err := h.users.UpdatePassword(r.Context(), id, req.Password)
	h.respond(w, r, "update password", user, err)
}

func (h *UserHandler) respond(w http.ResponseWriter, r *http.Request, op string, user *models.User, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, dto.NewUserDTO(user))
	case errors.Is(err, users.ErrNoChanges):
		writeJSON(w, http.StatusBadRequest, dto.ErrNotChangesDetected)
	case errors.Is(err, users.ErrUserNotFound):
		writeJSON(w, http.StatusBadRequest, dto.ErrUserNotExists)
	default:
		internalError(w, r, h.logger, op, err)
	}
}
