// AngelaMos | 2026
// handler.go

package book

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/angelamos/bookclub-api/internal/core"
	"github.com/angelamos/bookclub-api/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects to be mounted under /books with the session
// middleware already applied; authentication is optional for the catalog.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{bookID}", h.Get)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())
	search := r.URL.Query().Get("q")

	views, err := h.service.List(r.Context(), search, viewerID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToBookResponseList(views))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	bookID, err := ParseBookID(r)
	if err != nil {
		core.NotFound(w, "Book not found")
		return
	}

	viewerID := middleware.GetUserID(r.Context())

	view, err := h.service.Get(r.Context(), bookID, viewerID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Book not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToBookResponse(view))
}

// ParseBookID reads the {bookID} route param. A non-numeric id can never
// reference a book, so callers treat the error as not-found.
func ParseBookID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
}
