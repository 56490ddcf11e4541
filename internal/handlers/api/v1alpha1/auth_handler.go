package v1alpha1

import (
	"net/http"

	"github.com/dmforge/initiative-api/internal/entities"
	"github.com/dmforge/initiative-api/internal/errors"
	"github.com/dmforge/initiative-api/internal/orchestrators/user"
)

// AuthHandlerConfig holds dependencies for the auth handler
type AuthHandlerConfig struct {
	UserService user.Service
}

// Validate ensures all required dependencies are present
func (c *AuthHandlerConfig) Validate() error {
	if c.UserService == nil {
		return errors.InvalidArgument("user service is required")
	}
	return nil
}

// AuthHandler serves registration and login.
type AuthHandler struct {
	userService user.Service
}

// NewAuthHandler creates a new auth handler with the given configuration
func NewAuthHandler(cfg *AuthHandlerConfig) (*AuthHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &AuthHandler{userService: cfg.UserService}, nil
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User  *entities.User `json:"user"`
	Token string         `json:"token"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	out, err := h.userService.Register(r.Context(), &user.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, sessionResponse{User: out.User, Token: out.Token})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	out, err := h.userService.GetUser(r.Context(), &user.GetUserInput{
		UserID: ownerFromContext(r.Context()),
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, struct {
		User *entities.User `json:"user"`
	}{User: out.User})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	out, err := h.userService.Login(r.Context(), &user.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sessionResponse{User: out.User, Token: out.Token})
}
