// AngelaMos | 2026
// handler.go

package shelf

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/bookclub-api/internal/book"
	"github.com/angelamos/bookclub-api/internal/core"
	"github.com/angelamos/bookclub-api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes expects to be mounted under /books next to the catalog
// routes. Reading comments is public; everything else needs a session.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/{bookID}/comments", h.ListComments)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)

		r.Post("/{bookID}/purchase", h.Purchase)
		r.Post("/{bookID}/rate", h.Rate)
		r.Post("/{bookID}/comments", h.AddComment)
	})
}

func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	bookID, err := book.ParseBookID(r)
	if err != nil {
		core.NotFound(w, "Book not found")
		return
	}

	userID := middleware.GetUserID(r.Context())

	title, err := h.service.Purchase(r.Context(), userID, bookID)
	if err != nil {
		var funds *InsufficientFundsError
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "Book not found")
		case errors.Is(err, ErrAlreadyOwned):
			core.BadRequest(w, "You already own this book")
		case errors.As(err, &funds):
			core.BadRequest(w, fmt.Sprintf(
				"Insufficient bookmarks. You have %d, need %d",
				funds.Have, funds.Need,
			))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, MessageResponse{
		Message: fmt.Sprintf("Successfully purchased '%s'", title),
	})
}

func (h *Handler) Rate(w http.ResponseWriter, r *http.Request) {
	bookID, err := book.ParseBookID(r)
	if err != nil {
		core.NotFound(w, "Book not found")
		return
	}

	var req RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	userID := middleware.GetUserID(r.Context())

	rating, err := h.service.Rate(r.Context(), userID, bookID, req.Stars)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "Book not found")
		case errors.Is(err, ErrInvalidStars):
			core.BadRequest(w, "stars must be between 1 and 5")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToRatingResponse(rating))
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	bookID, err := book.ParseBookID(r)
	if err != nil {
		core.NotFound(w, "Book not found")
		return
	}

	comments, err := h.service.ListComments(r.Context(), bookID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Book not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCommentResponseList(comments))
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	bookID, err := book.ParseBookID(r)
	if err != nil {
		core.NotFound(w, "Book not found")
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	userID := middleware.GetUserID(r.Context())

	comment, err := h.service.AddComment(r.Context(), userID, bookID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "Book not found")
		case errors.Is(err, ErrEmptyComment):
			core.BadRequest(w, "content is required")
		case errors.Is(err, ErrCommentTooLong):
			core.BadRequest(w, fmt.Sprintf(
				"content must be at most %d characters",
				h.service.MaxCommentLength(),
			))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToCommentResponse(comment))
}
