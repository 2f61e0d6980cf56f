// AngelaMos | 2026
// entity.go

package shelf

import (
	"time"
)

// Rating is the single row a user holds against a book, upserted in place.
type Rating struct {
	UserID int64 `db:"user_id"`
	BookID int64 `db:"book_id"`
	Stars  int   `db:"stars"`
}

type Comment struct {
	ID        int64     `db:"id"`
	BookID    int64     `db:"book_id"`
	UserID    int64     `db:"user_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

// CommentWithAuthor joins the author's display name for presentation.
type CommentWithAuthor struct {
	Comment
	UserName string `db:"user_name"`
}

// bookInfo is the slice of a book the purchase path needs.
type bookInfo struct {
	ID            int64  `db:"id"`
	Title         string `db:"title"`
	BookmarkPrice int    `db:"bookmark_price"`
}
