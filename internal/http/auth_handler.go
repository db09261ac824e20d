package http

import (
	"encoding/json"
	"net/http"
	"time"

	"libraryapi/internal/auth"
	"libraryapi/internal/httpx"
)

const adminTokenTTL = 12 * time.Hour

// AuthHandler issues bearer tokens for the admin UI. There is a single admin
// principal, identified by a bcrypt hash provided through configuration.
type AuthHandler struct {
	secret       string
	passwordHash string
}

func NewAuthHandler(secret, passwordHash string) *AuthHandler {
	return &AuthHandler{secret: secret, passwordHash: passwordHash}
}

type loginReq struct {
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	if !auth.VerifyPassword(h.passwordHash, req.Password) {
		httpx.JSONError(r, w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid password", nil)
		return
	}

	token, err := auth.GenerateToken(h.secret, "admin", adminTokenTTL)
	if err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(r, w, map[string]string{"token": token})
}
