package handler

import (
	"encoding/json"
	"net/http"
	"unicode/utf8"

	"library_api/internal/app/service"
	"library_api/internal/common"

	"github.com/go-chi/chi/v5"
)

const (
	usernameMinLength = 3
	usernameMaxLength = 50
	passwordMinLength = 6
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Username == "" || req.Password == "" {
		common.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	if n := utf8.RuneCountInString(req.Username); n < usernameMinLength || n > usernameMaxLength {
		common.RespondWithError(w, http.StatusBadRequest, "Username must be between 3 and 50 characters")
		return
	}
	if utf8.RuneCountInString(req.Password) < passwordMinLength {
		common.RespondWithError(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	resp, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Username == "" || req.Password == "" {
		common.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
