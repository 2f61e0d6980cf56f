// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the error envelope for every non-2xx reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	//nolint:errcheck // headers already sent, nothing left to report
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, v any) {
	WriteJSON(w, http.StatusOK, v)
}

func Created(w http.ResponseWriter, v any) {
	WriteJSON(w, http.StatusCreated, v)
}

func Detail(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, ErrorResponse{Detail: detail})
}

func BadRequest(w http.ResponseWriter, detail string) {
	Detail(w, http.StatusBadRequest, detail)
}

func Unauthorized(w http.ResponseWriter, detail string) {
	if detail == "" {
		detail = "Not authenticated"
	}
	Detail(w, http.StatusUnauthorized, detail)
}

func NotFound(w http.ResponseWriter, detail string) {
	Detail(w, http.StatusNotFound, detail)
}

// InternalServerError logs the cause and replies with an opaque 500.
// Storage failures never leak their internals.
func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	Detail(w, http.StatusInternalServerError, "Internal server error")
}

// FormatValidationError turns validator output into a single readable
// detail line instead of the library's struct-path dump.
func FormatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", field))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email", field))
		case "min":
			parts = append(parts, fmt.Sprintf(
				"%s must be at least %s", field, fe.Param()))
		case "max":
			parts = append(parts, fmt.Sprintf(
				"%s must be at most %s", field, fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", field))
		}
	}

	return strings.Join(parts, "; ")
}
