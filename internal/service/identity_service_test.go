package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-cms/internal/auth"
	"github.com/tendant/simple-cms/internal/domain"
	"github.com/tendant/simple-cms/internal/repository/memory"
	"github.com/tendant/simple-cms/internal/service"
)

func setupIdentityService() (*service.IdentityService, *auth.TokenIssuer) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	return service.NewIdentityService(memory.NewUserRepository(), issuer, 4), issuer
}

func TestIdentityService_RegisterAndAuthenticate(t *testing.T) {
	svc, issuer := setupIdentityService()
	ctx := context.Background()

	ack, err := svc.Register(ctx, service.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "pw", Role: "Creator",
	})
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", ack.Message)

	result, err := svc.Authenticate(ctx, "alice@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCreator, result.Role)

	p, err := issuer.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCreator, p.Role)
	assert.NotEmpty(t, p.UserID)
}

func TestIdentityService_Register_Duplicates(t *testing.T) {
	svc, _ := setupIdentityService()
	ctx := context.Background()

	_, err := svc.Register(ctx, service.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "pw", Role: "Reader",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, service.RegisterRequest{
		Username: "alice2", Email: "alice@example.com", Password: "pw", Role: "Reader",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)
	assert.Equal(t, "Username or email already exists", err.Error())

	_, err = svc.Register(ctx, service.RegisterRequest{
		Username: "alice", Email: "other@example.com", Password: "pw", Role: "Reader",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)
}

func TestIdentityService_Register_Validation(t *testing.T) {
	svc, _ := setupIdentityService()
	ctx := context.Background()

	_, err := svc.Register(ctx, service.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "pw", Role: "Editor",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	_, err = svc.Register(ctx, service.RegisterRequest{
		Username: "alice", Email: "", Password: "pw", Role: "Admin",
	})
	assert.ErrorIs(t, err, domain.ErrMissingIdentityField)
}

func TestIdentityService_Authenticate_SameErrorForBothFailures(t *testing.T) {
	svc, _ := setupIdentityService()
	ctx := context.Background()

	_, err := svc.Register(ctx, service.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "pw", Role: "Admin",
	})
	require.NoError(t, err)

	_, wrongPassword := svc.Authenticate(ctx, "alice@example.com", "nope")
	_, unknownEmail := svc.Authenticate(ctx, "bob@example.com", "pw")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.Equal(t, "Invalid email or password", unknownEmail.Error())
}
