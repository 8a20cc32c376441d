package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-cms/internal/domain"
	"github.com/tendant/simple-cms/internal/service"
)

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	a := setupAPITest(t)

	rr := a.do(http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "pw", Role: "Creator",
	})
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"message":"User registered successfully"}`, rr.Body.String())

	rr = a.do(http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Username: "alice", Email: "other@example.com", Password: "pw", Role: "Creator",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Username or email already exists", errorOf(t, rr))

	rr = a.do(http.MethodPost, "/api/auth/login", "", LoginRequest{Email: "alice@example.com", Password: "pw"})
	require.Equal(t, http.StatusOK, rr.Code)
	var result service.LoginResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, domain.RoleCreator, result.Role)

	p, err := a.issuer.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCreator, p.Role)

	rr = a.do(http.MethodPost, "/api/auth/login", "", LoginRequest{Email: "alice@example.com", Password: "nope"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid email or password", errorOf(t, rr))

	rr = a.do(http.MethodPost, "/api/auth/login", "", LoginRequest{Email: "bob@example.com", Password: "pw"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid email or password", errorOf(t, rr))
}

func TestAuthHandler_InvalidBody(t *testing.T) {
	a := setupAPITest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid request body", errorOf(t, rr))
}
