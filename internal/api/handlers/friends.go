package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hugh/birthday-reminder/internal/api/dto"
	"github.com/hugh/birthday-reminder/internal/api/middleware"
	"github.com/hugh/birthday-reminder/internal/database/models"
	"github.com/hugh/birthday-reminder/internal/friends"
)

const TotalCountHeader = "X-Total-Count"

type FriendHandler struct {
	friends *friends.Service
	logger  *slog.Logger
}

func NewFriendHandler(friendService *friends.Service, logger *slog.Logger) *FriendHandler {
	return &FriendHandler{friends: friendService, logger: logger}
}

func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := middleware.GetQueryParams(ctx, friends.ListConfig)

	list, total, err := h.friends.List(ctx, middleware.GetUserID(ctx), params)
	if err != nil {
		internalError(w, r, h.logger, "list friends", err)
		return
	}

	if params.Count {
		w.Header().Set(TotalCountHeader, strconv.FormatInt(total, 10))
	}
	writeJSON(w, http.StatusOK, dto.NewFriendList(list))
}

func (h *FriendHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, dto.ErrFriendNotFound)
		return
	}

	friend, err := h.friends.Get(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		if errors.Is(err, friends.ErrNotFound) {
			writeJSON(w, http.StatusBadRequest, dto.ErrFriendNotFound)
			return
		}
		internalError(w, r, h.logger, "get friend", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewFriendResponse(friend))
}

func (h *FriendHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.FriendRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	friend, err := h.friends.Create(r.Context(), middleware.GetUserID(r.Context()), friendInput(req))
	if err != nil {
		internalError(w, r, h.logger, "create friend", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.NewFriendResponse(friend))
}

func (h *FriendHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.FriendRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, dto.ErrFriendNotExists)
		return
	}

	friend, err := h.friends.Update(r.Context(), middleware.GetUserID(r.Context()), id, friendInput(req))
	if err != nil {
		if errors.Is(err, friends.ErrNotFound) {
			writeJSON(w, http.StatusBadRequest, dto.ErrFriendNotExists)
			return
		}
		internalError(w, r, h.logger, "update friend", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewFriendResponse(friend))
}

func (h *FriendHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, dto.ErrFriendNotExists)
		return
	}

	if err := h.friends.Delete(r.Context(), middleware.GetUserID(r.Context()), id); err != nil {
		if errors.Is(err, friends.ErrNotFound) {
			writeJSON(w, http.StatusBadRequest, dto.ErrFriendNotExists)
			return
		}
		internalError(w, r, h.logger, "delete friend", err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

func friendInput(req dto.FriendRequest) friends.Input {
	source := models.NotificationSource(req.Source)
	return friends.Input{
		Name:      req.Name,
		Source:    &source,
		Birthdate: req.ParsedBirthdate(),
	}
}
