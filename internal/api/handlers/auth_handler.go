package handlers

import (
	"context"
	"net/http"

	"github.com/clinicore/clinic-backend/internal/application/services"
	"github.com/clinicore/clinic-backend/internal/domain/entities"
)

// AuthAPI is the surface of the auth service the handler needs
type AuthAPI interface {
	Register(ctx context.Context, input services.RegisterInput) (*entities.User, string, error)
	Login(ctx context.Context, email, password string) (*entities.User, string, error)
}

// AuthHandler handles registration and login requests
type AuthHandler struct {
	auth AuthAPI
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth AuthAPI) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.auth.Register(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. Unknown email, wrong password and
// unapproved doctor all come back as the same 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}
