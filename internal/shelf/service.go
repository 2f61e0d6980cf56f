// AngelaMos | 2026
// service.go

package shelf

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"

	"github.com/angelamos/bookclub-api/internal/core"
)

var (
	ErrAlreadyOwned   = errors.New("book already owned")
	ErrInvalidStars   = errors.New("stars must be between 1 and 5")
	ErrEmptyComment   = errors.New("comment content is empty")
	ErrCommentTooLong = errors.New("comment content too long")
)

// InsufficientFundsError carries the balance and price so the caller can
// report exactly what was missing.
type InsufficientFundsError struct {
	Have int
	Need int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient bookmarks: have %d, need %d", e.Have, e.Need)
}

// Service executes purchases, rating upserts, and comments. Every mutation
// runs in a single transaction so the read-check-then-write sequences are
// atomic; the unique and check constraints in the schema backstop races.
type Service struct {
	db               *sqlx.DB
	repo             Repository
	maxCommentLength int
}

func NewService(db *sqlx.DB, maxCommentLength int) *Service {
	return &Service{
		db:               db,
		repo:             NewRepository(db),
		maxCommentLength: maxCommentLength,
	}
}

// Purchase debits the price and records ownership atomically; a failure at
// any step leaves both untouched. Returns the book title for the receipt
// message.
func (s *Service) Purchase(
	ctx context.Context,
	userID, bookID int64,
) (string, error) {
	var title string

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		b, err := repo.GetBook(ctx, bookID)
		if err != nil {
			return err
		}

		owned, err := repo.OwnershipExists(ctx, userID, bookID)
		if err != nil {
			return err
		}
		if owned {
			return ErrAlreadyOwned
		}

		balance, err := repo.BookmarkBalance(ctx, userID)
		if err != nil {
			return err
		}
		if balance < b.BookmarkPrice {
			return &InsufficientFundsError{
				Have: balance,
				Need: b.BookmarkPrice,
			}
		}

		debited, err := repo.DebitBookmarks(ctx, userID, b.BookmarkPrice)
		if err != nil {
			return err
		}
		if !debited {
			// A concurrent debit drained the balance after our read.
			return &InsufficientFundsError{
				Have: balance,
				Need: b.BookmarkPrice,
			}
		}

		if err := repo.InsertPurchase(ctx, userID, bookID); err != nil {
			if errors.Is(err, core.ErrDuplicateKey) {
				return ErrAlreadyOwned
			}
			return err
		}

		title = b.Title
		return nil
	})
	if err != nil {
		return "", err
	}

	return title, nil
}

// Rate validates the stars range before touching storage, then upserts:
// one row per (user, book), last committer wins.
func (s *Service) Rate(
	ctx context.Context,
	userID, bookID int64,
	stars int,
) (*Rating, error) {
	if stars < 1 || stars > 5 {
		return nil, ErrInvalidStars
	}

	var rating *Rating

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		exists, err := repo.BookExists(ctx, bookID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("rate book: %w", core.ErrNotFound)
		}

		rating, err = repo.UpsertRating(ctx, userID, bookID, stars)
		return err
	})
	if err != nil {
		return nil, err
	}

	return rating, nil
}

func (s *Service) ListComments(
	ctx context.Context,
	bookID int64,
) ([]CommentWithAuthor, error) {
	exists, err := s.repo.BookExists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("list comments: %w", core.ErrNotFound)
	}

	return s.repo.ListComments(ctx, bookID)
}

func (s *Service) AddComment(
	ctx context.Context,
	userID, bookID int64,
	content string,
) (*CommentWithAuthor, error) {
	if content == "" {
		return nil, ErrEmptyComment
	}
	if utf8.RuneCountInString(content) > s.maxCommentLength {
		return nil, ErrCommentTooLong
	}

	var result *CommentWithAuthor

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		exists, err := repo.BookExists(ctx, bookID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("add comment: %w", core.ErrNotFound)
		}

		comment, err := repo.InsertComment(ctx, userID, bookID, content)
		if err != nil {
			return err
		}

		name, err := repo.AuthorName(ctx, userID)
		if err != nil {
			return err
		}

		result = &CommentWithAuthor{
			Comment:  *comment,
			UserName: name,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) MaxCommentLength() int {
	return s.maxCommentLength
}
