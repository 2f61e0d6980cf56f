// AngelaMos | 2026
// dto.go

package auth

import (
	"github.com/angelamos/bookclub-api/internal/user"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	UserID        int64  `json:"user_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	BookmarkCount int    `json:"bookmark_count"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		UserID:        u.ID,
		Name:          u.Name,
		Email:         u.Email,
		BookmarkCount: u.BookmarkCount,
	}
}
