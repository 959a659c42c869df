package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/response"
	"hospital-management/pkg/validator"

	"github.com/sirupsen/logrus"
)

type SessionHandler struct {
	sessionUsecase usecase.SessionUsecase
	validator      *validator.CustomValidator
	log            *logrus.Logger
	cookieSecure   bool
}

func NewSessionHandler(sessionUsecase usecase.SessionUsecase, validator *validator.CustomValidator, log *logrus.Logger, cookieSecure bool) *SessionHandler {
	return &SessionHandler{
		sessionUsecase: sessionUsecase,
		validator:      validator,
		log:            log,
		cookieSecure:   cookieSecure,
	}
}

func (h *SessionHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Login form", nil)
}

// Login checks credentials and opens a session. The token is returned in
// the body and set as the session cookie.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorRedirect(w, http.StatusBadRequest, "Invalid request body", nil, middleware.LoginPath)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ErrorRedirect(w, http.StatusBadRequest, "Username and password are required.", h.validator.FormatValidationErrors(err), middleware.LoginPath)
		return
	}

	session, err := h.sessionUsecase.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingField):
			response.ErrorRedirect(w, http.StatusBadRequest, "Username and password are required.", nil, middleware.LoginPath)
		case errors.Is(err, usecase.ErrInvalidCredentials):
			response.ErrorRedirect(w, http.StatusUnauthorized, "Invalid username or password.", nil, middleware.LoginPath)
		case errors.Is(err, usecase.ErrRoleNotAssigned):
			h.clearCookie(w)
			response.ErrorRedirect(w, http.StatusForbidden, "Role not assigned. Contact admin.", nil, middleware.LoginPath)
		default:
			response.ErrorRedirect(w, http.StatusInternalServerError, "Failed to login", nil, middleware.LoginPath)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(session.ExpiresIn),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	response.SuccessRedirect(w, http.StatusOK, "Login successful", session, session.Redirect)
}

// Logout always ends at the login page, with or without a session.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	accountID, _ := middleware.GetAccountIDFromContext(r.Context())
	tokenID, _ := middleware.GetTokenIDFromContext(r.Context())

	if err := h.sessionUsecase.Logout(r.Context(), accountID, tokenID); err != nil {
		h.log.Warnf("Failed to close session %s: %+v", tokenID, err)
	}

	h.clearCookie(w)
	response.Redirect(w, r, middleware.LoginPath)
}

func (h *SessionHandler) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
