// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID            int64     `db:"id"`
	Name          string    `db:"name"`
	Email         string    `db:"email"`
	PasswordHash  string    `db:"password_hash"`
	BookmarkCount int       `db:"bookmark_count"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
