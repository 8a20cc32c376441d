package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-cms/internal/auth"
	"github.com/tendant/simple-cms/internal/domain"
	memoryRepo "github.com/tendant/simple-cms/internal/repository/memory"
	"github.com/tendant/simple-cms/internal/service"
)

type testAPI struct {
	t      *testing.T
	router chi.Router
	issuer *auth.TokenIssuer
}

// setupAPITest builds the /api router over in-memory repositories
func setupAPITest(t *testing.T) *testAPI {
	userRepo := memoryRepo.NewUserRepository()
	categoryRepo := memoryRepo.NewCategoryRepository()
	contentRepo := memoryRepo.NewContentRepository(userRepo, categoryRepo)
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	router := chi.NewRouter()
	router.Mount("/api", NewRouter(
		service.NewIdentityService(userRepo, issuer, 4),
		service.NewCategoryService(categoryRepo),
		service.NewContentService(contentRepo, categoryRepo, userRepo),
		issuer,
	))

	return &testAPI{t: t, router: router, issuer: issuer}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

// login registers a user with role and returns its session token
func (a *testAPI) login(username string, role domain.Role) string {
	a.t.Helper()

	email := username + "@example.com"
	rr := a.do(http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Username: username, Email: email, Password: "pw", Role: string(role),
	})
	require.Equal(a.t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = a.do(http.MethodPost, "/api/auth/login", "", LoginRequest{Email: email, Password: "pw"})
	require.Equal(a.t, http.StatusOK, rr.Code, rr.Body.String())

	var result service.LoginResult
	require.NoError(a.t, json.Unmarshal(rr.Body.Bytes(), &result))
	require.Equal(a.t, role, result.Role)
	return result.Token
}

func (a *testAPI) createCategory(token, name string) string {
	a.t.Helper()

	rr := a.do(http.MethodPost, "/api/categories", token, newCategoryRequest(name, true, true, true))
	require.Equal(a.t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = a.do(http.MethodGet, "/api/categories", "", nil)
	require.Equal(a.t, http.StatusOK, rr.Code)
	var categories []domain.Category
	require.NoError(a.t, json.Unmarshal(rr.Body.Bytes(), &categories))
	for _, c := range categories {
		if c.Name == name {
			return c.ID
		}
	}
	a.t.Fatalf("category %q not listed", name)
	return ""
}

func errorOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp.Error
}

func newCategoryRequest(name string, images, videos, texts bool) CreateCategoryRequest {
	return CreateCategoryRequest{
		Name:         name,
		AllowsImages: &images,
		AllowsVideos: &videos,
		AllowsTexts:  &texts,
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	a := setupAPITest(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/contents", nil)
	req.Header.Set("Origin", "http://client.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)

	assert.Equal(t, "http://client.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}
