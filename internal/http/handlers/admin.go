package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/eagd-org/donation-server/internal/domain"
	"github.com/eagd-org/donation-server/internal/middleware"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type adminDTO struct {
	ID        string           `json:"id"`
	Username  string           `json:"username"`
	Email     string           `json:"email"`
	Role      domain.AdminRole `json:"role"`
	LastLogin any              `json:"last_login,omitempty"`
}

func adminToDTO(admin *domain.Admin) adminDTO {
	dto := adminDTO{
		ID:       admin.ID,
		Username: admin.Username,
		Email:    admin.Email,
		Role:     admin.Role,
	}
	if admin.LastLoginAt != nil {
		dto.LastLogin = admin.LastLoginAt
	}
	return dto
}

// AdminLogin validates credentials and returns a signed bearer token.
func (a *App) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		a.validationError(w, r, domain.NewValidationError("username", "required"))
		return
	}
	if req.Password == "" {
		a.validationError(w, r, domain.NewValidationError("password", "required"))
		return
	}

	token, admin, err := a.Auth.Login(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			a.error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		a.Logger.Error().Err(err).Msg("login failed")
		a.error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"admin":   adminToDTO(admin),
	})
}

type setupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// AdminSetup creates the first administrator account. Refused once any
// account exists.
func (a *App) AdminSetup(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	admin, err := a.Auth.Setup(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrAlreadyInitialized):
			a.error(w, http.StatusBadRequest, "Admin already exists. Use login endpoint instead.")
		case errors.As(err, &ve):
			a.validationError(w, r, ve)
		default:
			a.Logger.Error().Err(err).Msg("admin setup failed")
			a.error(w, http.StatusInternalServerError, "Failed to create admin")
		}
		return
	}

	a.json(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Default admin created successfully",
		"admin":   adminToDTO(admin),
	})
}

// AdminVerify echoes the identity resolved by the auth middleware, letting a
// console validate a held token.
func (a *App) AdminVerify(w http.ResponseWriter, r *http.Request) {
	admin := middleware.AdminFromContext(r.Context())
	if admin == nil {
		a.error(w, http.StatusUnauthorized, "Access token required")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"admin":   adminToDTO(admin),
	})
}
