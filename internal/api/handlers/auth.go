package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hugh/birthday-reminder/internal/api/dto"
	"github.com/hugh/birthday-reminder/internal/api/middleware"
	"github.com/hugh/birthday-reminder/internal/auth"
)

type AuthHandler struct {
	authService  auth.Authenticator
	logger       *slog.Logger
	secureCookie bool
}

func NewAuthHandler(authService auth.Authenticator, logger *slog.Logger, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger, secureCookie: secureCookie}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.authService.Register(r.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			writeJSON(w, http.StatusBadRequest, dto.ErrUserAlreadyExists)
			return
		}
		internalError(w, r, h.logger, "register", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.RegisterResponse{Sended: true})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.authService.Login(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			writeJSON(w, http.StatusBadRequest, dto.ErrUserNotExists)
		case errors.Is(err, auth.ErrUserNotActive):
			writeJSON(w, http.StatusBadRequest, dto.ErrUserNotActive)
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeJSON(w, http.StatusBadRequest, dto.ErrInvalidAuthentication)
		default:
			internalError(w, r, h.logger, "login", err)
		}
		return
	}

	setTokenCookie(w, resp.Token, h.secureCookie)
	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Token: resp.Token,
		User:  dto.NewUserDTO(resp.User),
	})
}

// Verify redeems an emailed verification code and answers with the session
// token as a bare JSON string.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.authService.Verify(r.Context(), req.Transaction)
	if err != nil {
		if errors.Is(err, auth.ErrCodeVerificationNotFound) {
			writeJSON(w, http.StatusBadRequest, dto.ErrCodeVerificationNotFound)
			return
		}
		internalError(w, r, h.logger, "verify", err)
		return
	}

	setTokenCookie(w, token, h.secureCookie)
	writeJSON(w, http.StatusCreated, token)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetUserByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeJSON(w, http.StatusBadRequest, dto.ErrUserNotExists)
			return
		}
		internalError(w, r, h.logger, "me", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewUserDTO(user))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	writeJSON(w, http.StatusOK, struct{}{})
}
