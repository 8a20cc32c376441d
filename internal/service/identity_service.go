package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tendant/simple-cms/internal/auth"
	"github.com/tendant/simple-cms/internal/domain"
	"github.com/tendant/simple-cms/internal/repository"
)

// RegisterRequest carries the fields of a new account
type RegisterRequest struct {
	Username string
	Email    string
	Password string
	Role     string
}

// LoginResult is returned on successful authentication
type LoginResult struct {
	Token string      `json:"token"`
	Role  domain.Role `json:"role"`
}

// IdentityService handles registration and authentication
type IdentityService struct {
	userRepo   repository.UserRepository
	issuer     *auth.TokenIssuer
	bcryptCost int
}

// NewIdentityService creates a new identity service
func NewIdentityService(
	userRepo repository.UserRepository,
	issuer *auth.TokenIssuer,
	bcryptCost int,
) *IdentityService {
	return &IdentityService{
		userRepo:   userRepo,
		issuer:     issuer,
		bcryptCost: bcryptCost,
	}
}

// Register creates a user with a hashed password
func (s *IdentityService) Register(ctx context.Context, req RegisterRequest) (*domain.Ack, error) {
	role := domain.Role(req.Role)
	if !role.IsValid() {
		return nil, domain.ErrInvalidRole
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, domain.ErrMissingIdentityField
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateIdentity
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User registered", "user_id", user.ID, "role", user.Role)
	return &domain.Ack{Message: "User registered successfully"}, nil
}

// Authenticate verifies credentials and issues a session token.
// Unknown email and wrong password fail with the same error.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(auth.Principal{UserID: user.ID, Role: user.Role})
	if err != nil {
		slog.Error("Failed to issue token", "err", err)
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{Token: token, Role: user.Role}, nil
}
