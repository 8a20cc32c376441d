package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/simple-cms/internal/domain"
	"github.com/tendant/simple-cms/internal/service"
)

// ContentHandler handles HTTP requests for content
type ContentHandler struct {
	contentService *service.ContentService
	gate           *Gate
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService *service.ContentService, gate *Gate) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		gate:           gate,
	}
}

// Routes returns the routes for content
func (h *ContentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListContents)
	r.Get("/{id}", h.GetContent)

	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(domain.RoleAdmin, domain.RoleCreator)...)
		r.Post("/", h.CreateContent)
		r.Put("/{id}", h.UpdateContent)
	})
	r.With(h.gate.Require(domain.RoleAdmin)...).Delete("/{id}", h.DeleteContent)

	return r
}

// ContentRequest is the request body for creating or updating a content.
// A creatorId sent by the client is ignored.
type ContentRequest struct {
	Title      string `json:"title"`
	Type       string `json:"type"`
	URL        string `json:"url,omitempty"`
	Text       string `json:"text,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
	CategoryID string `json:"categoryId"`
}

func (req ContentRequest) input() service.ContentInput {
	return service.ContentInput{
		Title:      req.Title,
		Type:       req.Type,
		URL:        req.URL,
		Text:       req.Text,
		ImageURL:   req.ImageURL,
		CategoryID: req.CategoryID,
	}
}

// CreateContent creates a content owned by the caller
func (h *ContentHandler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req ContentRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	ack, err := h.contentService.CreateContent(r.Context(), principal(r), req.input())
	if err != nil {
		writeMutationError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, ack)
}

// UpdateContent replaces a content owned by the caller
func (h *ContentHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	var req ContentRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	ack, err := h.contentService.UpdateContent(r.Context(), principal(r), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeMutationError(w, r, err)
		return
	}

	render.JSON(w, r, ack)
}

// DeleteContent deletes a content
func (h *ContentHandler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	ack, err := h.contentService.DeleteContent(r.Context(), principal(r), chi.URLParam(r, "id"))
	if err != nil {
		writeMutationError(w, r, err)
		return
	}

	render.JSON(w, r, ack)
}

// GetContent returns a content with its category and creator resolved
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	view, err := h.contentService.GetContent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			writeError(w, r, http.StatusNotFound, err.Error())
			return
		}
		slog.Error("Failed to get content", "err", err)
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	render.JSON(w, r, view)
}

// ListContents returns a filtered, sorted page of contents with per-type counts
func (h *ContentHandler) ListContents(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.contentService.ListContent(r.Context(), q.Filter, q.Sort, q.Pagination)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	render.JSON(w, r, page)
}
