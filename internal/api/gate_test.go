package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-cms/internal/auth"
	"github.com/tendant/simple-cms/internal/domain"
)

func TestGate(t *testing.T) {
	a := setupAPITest(t)
	reader := a.login("rita", domain.RoleReader)
	admin := a.login("adam", domain.RoleAdmin)
	body := newCategoryRequest("News", true, false, true)

	tests := []struct {
		name    string
		token   string
		status  int
		message string
	}{
		{"no token", "", http.StatusUnauthorized, "Access denied"},
		{"malformed token", "garbage", http.StatusUnauthorized, "Invalid token"},
		{"wrong role", reader, http.StatusForbidden, "Forbidden"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := a.do(http.MethodPost, "/api/categories", tt.token, body)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.message, errorOf(t, rr))
		})
	}

	t.Run("foreign signature", func(t *testing.T) {
		token, err := auth.NewTokenIssuer("other-secret", time.Hour).Issue(auth.Principal{UserID: "x", Role: domain.RoleAdmin})
		require.NoError(t, err)
		rr := a.do(http.MethodPost, "/api/categories", token, body)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid token", errorOf(t, rr))
	})

	t.Run("admin", func(t *testing.T) {
		rr := a.do(http.MethodPost, "/api/categories", admin, body)
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t, `{"message":"Category created successfully"}`, rr.Body.String())
	})
}
