// AngelaMos | 2026
// repository.go

package shelf

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/angelamos/bookclub-api/internal/core"
)

type Repository interface {
	GetBook(ctx context.Context, bookID int64) (*bookInfo, error)
	BookExists(ctx context.Context, bookID int64) (bool, error)
	OwnershipExists(ctx context.Context, userID, bookID int64) (bool, error)
	BookmarkBalance(ctx context.Context, userID int64) (int, error)
	DebitBookmarks(ctx context.Context, userID int64, price int) (bool, error)
	InsertPurchase(ctx context.Context, userID, bookID int64) error
	UpsertRating(
		ctx context.Context,
		userID, bookID int64,
		stars int,
	) (*Rating, error)
	ListComments(
		ctx context.Context,
		bookID int64,
	) ([]CommentWithAuthor, error)
	InsertComment(
		ctx context.Context,
		userID, bookID int64,
		content string,
	) (*Comment, error)
	AuthorName(ctx context.Context, userID int64) (string, error)
}

type repository struct {
	db core.DBTX
}

// NewRepository accepts either the pool or a transaction, so the purchase
// sequence can run all of its reads and writes on one tx.
func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetBook(
	ctx context.Context,
	bookID int64,
) (*bookInfo, error) {
	query := `SELECT id, title, bookmark_price FROM books WHERE id = $1`

	var b bookInfo
	err := r.db.GetContext(ctx, &b, query, bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get book: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}

	return &b, nil
}

func (r *repository) BookExists(
	ctx context.Context,
	bookID int64,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, bookID); err != nil {
		return false, fmt.Errorf("check book exists: %w", err)
	}

	return exists, nil
}

func (r *repository) OwnershipExists(
	ctx context.Context,
	userID, bookID int64,
) (bool, error) {
	query := `
		SELECT EXISTS(SELECT 1 FROM book_purchases
		               WHERE user_id = $1 AND book_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, bookID); err != nil {
		return false, fmt.Errorf("check ownership: %w", err)
	}

	return exists, nil
}

func (r *repository) BookmarkBalance(
	ctx context.Context,
	userID int64,
) (int, error) {
	query := `SELECT bookmark_count FROM users WHERE id = $1`

	var balance int
	err := r.db.GetContext(ctx, &balance, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("get balance: %w", core.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

// DebitBookmarks only succeeds when the balance covers the price; the
// guard in the WHERE clause means the balance can never go negative even
// if a concurrent debit slipped between check and update.
func (r *repository) DebitBookmarks(
	ctx context.Context,
	userID int64,
	price int,
) (bool, error) {
	query := `
		UPDATE users
		SET bookmark_count = bookmark_count - $2, updated_at = NOW()
		WHERE id = $1 AND bookmark_count >= $2`

	result, err := r.db.ExecContext(ctx, query, userID, price)
	if err != nil {
		return false, fmt.Errorf("debit bookmarks: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("debit bookmarks: %w", err)
	}

	return rows > 0, nil
}

func (r *repository) InsertPurchase(
	ctx context.Context,
	userID, bookID int64,
) error {
	query := `INSERT INTO book_purchases (user_id, book_id) VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, userID, bookID); err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("insert purchase: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("insert purchase: %w", err)
	}

	return nil
}

func (r *repository) UpsertRating(
	ctx context.Context,
	userID, bookID int64,
	stars int,
) (*Rating, error) {
	query := `
		INSERT INTO book_ratings (user_id, book_id, stars)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, book_id) DO UPDATE SET stars = EXCLUDED.stars
		RETURNING user_id, book_id, stars`

	var rating Rating
	err := r.db.GetContext(ctx, &rating, query, userID, bookID, stars)
	if err != nil {
		return nil, fmt.Errorf("upsert rating: %w", err)
	}

	return &rating, nil
}

func (r *repository) ListComments(
	ctx context.Context,
	bookID int64,
) ([]CommentWithAuthor, error) {
	query := `
		SELECT c.id, c.book_id, c.user_id, c.content, c.created_at,
		       u.name AS user_name
		FROM book_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.book_id = $1
		ORDER BY c.created_at DESC, c.id DESC`

	comments := []CommentWithAuthor{}
	if err := r.db.SelectContext(ctx, &comments, query, bookID); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return comments, nil
}

func (r *repository) InsertComment(
	ctx context.Context,
	userID, bookID int64,
	content string,
) (*Comment, error) {
	query := `
		INSERT INTO book_comments (book_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, book_id, user_id, content, created_at`

	var comment Comment
	err := r.db.GetContext(ctx, &comment, query, bookID, userID, content)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	return &comment, nil
}

func (r *repository) AuthorName(
	ctx context.Context,
	userID int64,
) (string, error) {
	query := `SELECT name FROM users WHERE id = $1`

	var name string
	err := r.db.GetContext(ctx, &name, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("get author name: %w", core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get author name: %w", err)
	}

	return name, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
