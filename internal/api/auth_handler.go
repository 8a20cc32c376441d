package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/simple-cms/internal/service"
)

// AuthHandler handles HTTP requests for registration and login
type AuthHandler struct {
	identityService *service.IdentityService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(identityService *service.IdentityService) *AuthHandler {
	return &AuthHandler{
		identityService: identityService,
	}
}

// Routes returns the routes for authentication
func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)

	return r
}

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new user
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	ack, err := h.identityService.Register(r.Context(), service.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeMutationError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, ack)
}

// Login authenticates a user and returns a session token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	result, err := h.identityService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeMutationError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}
