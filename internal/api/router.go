package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/tendant/simple-cms/internal/auth"
	"github.com/tendant/simple-cms/internal/service"
)

// NewRouter returns the /api subtree: auth, categories and contents
func NewRouter(
	identityService *service.IdentityService,
	categoryService *service.CategoryService,
	contentService *service.ContentService,
	issuer *auth.TokenIssuer,
) chi.Router {
	gate := NewGate(issuer)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Mount("/auth", NewAuthHandler(identityService).Routes())
	r.Mount("/categories", NewCategoryHandler(categoryService, gate).Routes())
	r.Mount("/contents", NewContentHandler(contentService, gate).Routes())

	return r
}
