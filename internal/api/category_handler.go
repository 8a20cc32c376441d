package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/simple-cms/internal/domain"
	"github.com/tendant/simple-cms/internal/service"
)

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	categoryService *service.CategoryService
	gate            *Gate
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *service.CategoryService, gate *Gate) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		gate:            gate,
	}
}

// Routes returns the routes for categories
func (h *CategoryHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListCategories)
	r.With(h.gate.Require(domain.RoleAdmin)...).Post("/", h.CreateCategory)

	return r
}

// CreateCategoryRequest is the request body for creating a category.
// All three flags must be present; an omitted flag is not read as false.
type CreateCategoryRequest struct {
	Name         string `json:"name"`
	AllowsImages *bool  `json:"allowsImages"`
	AllowsVideos *bool  `json:"allowsVideos"`
	AllowsTexts  *bool  `json:"allowsTexts"`
}

// CreateCategory creates a new category
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	if req.AllowsImages == nil || req.AllowsVideos == nil || req.AllowsTexts == nil {
		writeMutationError(w, r, domain.ErrMissingCategoryFlags)
		return
	}

	ack, err := h.categoryService.CreateCategory(r.Context(), service.CreateCategoryRequest{
		Name:         req.Name,
		AllowsImages: *req.AllowsImages,
		AllowsVideos: *req.AllowsVideos,
		AllowsTexts:  *req.AllowsTexts,
	})
	if err != nil {
		writeMutationError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, ack)
}

// ListCategories lists every category
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.ListCategories(r.Context())
	if err != nil {
		slog.Error("Failed to list categories", "err", err)
		writeError(w, r, http.StatusInternalServerError, msgFailedToFetchCategories)
		return
	}

	render.JSON(w, r, categories)
}
