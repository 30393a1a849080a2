package http

import (
	"encoding/json"
	"net/http"

	"flashsale/internal/user/application"
	"flashsale/internal/user/token"
	"flashsale/shared/apperrors"
)

type Handler struct {
	register *application.RegisterUserUseCase
	login    *application.LoginUseCase
	tokens   *token.Service
}

func NewHandler(register *application.RegisterUserUseCase, login *application.LoginUseCase, tokens *token.Service) *Handler {
	return &Handler{register: register, login: login, tokens: tokens}
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.register.Execute(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		apiErr := apperrors.ToAPIError(err)
		writeJSON(w, apiErr.Status, apiErr)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": user.ID.String(), "email": user.Email})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.login.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	tokenString, err := h.tokens.CreateToken(user.Username, user.ID.String())
	if err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": tokenString})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
