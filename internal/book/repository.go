// AngelaMos | 2026
// repository.go

package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/angelamos/bookclub-api/internal/core"
)

type Repository interface {
	List(ctx context.Context, search string, viewerID int64) ([]View, error)
	GetByID(ctx context.Context, id, viewerID int64) (*View, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// viewerID 0 means anonymous: the correlated subqueries then match no
// purchase or rating rows, which yields false/NULL without a second query
// shape.
const viewSelect = `
	SELECT b.id, b.title, b.author, b.release_year, b.summary,
	       b.bookmark_price, b.cover_url, b.content_url,
	       (SELECT AVG(r.stars)::float8
	          FROM book_ratings r WHERE r.book_id = b.id) AS average_rating,
	       (SELECT COUNT(*)
	          FROM book_ratings r WHERE r.book_id = b.id) AS total_ratings,
	       EXISTS(SELECT 1 FROM book_purchases p
	               WHERE p.book_id = b.id AND p.user_id = $1) AS is_purchased,
	       (SELECT r.stars FROM book_ratings r
	         WHERE r.book_id = b.id AND r.user_id = $1) AS user_rating
	FROM books b`

func (r *repository) List(
	ctx context.Context,
	search string,
	viewerID int64,
) ([]View, error) {
	query := viewSelect
	args := []any{viewerID}

	if search != "" {
		query += `
	WHERE (b.title ILIKE $2 OR b.author ILIKE $2)`
		args = append(args, "%"+escapeLike(search)+"%")
	}

	query += `
	ORDER BY b.id`

	views := []View{}
	if err := r.db.SelectContext(ctx, &views, query, args...); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	return views, nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id, viewerID int64,
) (*View, error) {
	query := viewSelect + `
	WHERE b.id = $2`

	var view View
	err := r.db.GetContext(ctx, &view, query, viewerID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get book: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}

	return &view, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
