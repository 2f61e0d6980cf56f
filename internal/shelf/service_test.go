// AngelaMos | 2026
// service_test.go

package shelf

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/angelamos/bookclub-api/internal/core"
)

func newMockService(t *testing.T, maxCommentLength int) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewService(sqlx.NewDb(db, "sqlmock"), maxCommentLength), mock
}

func expectGetBook(mock sqlmock.Sqlmock, id int64, title string, price int) {
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, title, bookmark_price FROM books",
	)).WithArgs(id).WillReturnRows(
		sqlmock.NewRows([]string{"id", "title", "bookmark_price"}).
			AddRow(id, title, price),
	)
}

func expectOwnership(mock sqlmock.Sqlmock, userID, bookID int64, owned bool) {
	mock.ExpectQuery(regexp.QuoteMeta("FROM book_purchases")).
		WithArgs(userID, bookID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(owned))
}

func expectBalance(mock sqlmock.Sqlmock, userID int64, balance int) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT bookmark_count FROM users")).
		WithArgs(userID).
		WillReturnRows(
			sqlmock.NewRows([]string{"bookmark_count"}).AddRow(balance),
		)
}

func expectBookExists(mock sqlmock.Sqlmock, bookID int64, exists bool) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM books")).
		WithArgs(bookID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(exists))
}

func TestPurchaseDebitsAndRecordsOwnership(t *testing.T) {
	svc, mock := newMockService(t, 1000)

	mock.ExpectBegin()
	expectGetBook(mock, 1, "Neuromancer", 5)
	expectOwnership(mock, 7, 1, false)
	expectBalance(mock, 7, 10)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs(int64(7), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO book_purchases")).
		WithArgs(int64(7), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	title, err := svc.Purchase(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if title != "Neuromancer" {
		t.Fatalf("expected title back, got %q", title)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPurchaseAlreadyOwnedRollsBack(t *testing.T) {
	svc, mock := newMockService(t, 1000)

	mock.ExpectBegin()
	expectGetBook(mock, 1, "Dune", 3)
	expectOwnership(mock, 7, 1, true)
	mock.ExpectRollback()

	_, err := svc.Purchase(context.Background(), 7, 1)
	if !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("expected ErrAlreadyOwned, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPurchaseInsufficientFundsLeavesBalanceUntouched(t *testing.T) {
	svc, mock := newMockService(t, 1000)

	mock.ExpectBegin()
	expectGetBook(mock, 1, "Dune", 5)
	expectOwnership(mock, 7, 1, false)
	expectBalance(mock, 7, 3)
	mock.ExpectRollback()

	_, err := svc.Purchase(context.Background(), 7, 1)

	var funds *InsufficientFundsError
	if !errors.As(err, &funds) {
		t.Fatalf("expected InsufficientFundsError, got %v", err)
	}
	if funds.Have != 3 || funds.Need != 5 {
		t.Fatalf("expected have=3 need=5, got %+v", funds)
	}
	// No UPDATE or INSERT was expected: any write would have failed the
	// mock expectations.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPurchaseConcurrentDebitLosesGracefully(t *testing.T) {
	svc, mock := newMockService(t, 1000)

	mock.ExpectBegin()
	expectGetBook(mock, 1, "Dune", 5)
	expectOwnership(mock, 7, 1, false)
	expectBalance(mock, 7, 5)
	// The guarded UPDATE touches no rows when another purchase drained
	// the balance between the read and the write.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs(int64(7), 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.Purchase(context.Background(), 7, 1)

	var funds *InsufficientFundsError
	if !errors.As(err, &funds) {
		t.Fatalf("expected InsufficientFundsError, got %v", err)
	}
}

func TestPurchaseMissingBook(t *testing.T) {
	svc, mock := newMockService(t, 1000)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, title, bookmark_price FROM books",
	)).WithArgs(int64(404)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "title", "bookmark_price"}),
	)
	mock.ExpectRollback()

	_, err := svc.Purchase(context.Background(), 7, 404)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRateRejectsOutOfRangeStarsWithoutTouchingStorage(t *testing.T) {
	svc, mock := newMockService(t, 1000)

	for _, stars := range []int{0, -1, 6, 100} {
		if _, err := svc.Rate(context.Background(), 7, 1, stars); !errors.Is(err, ErrInvalidStars) {
			t.Errorf("stars=%d: expected ErrInvalidStars, got %v", stars, err)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("rating validation should not reach the database: %v", err)
	}
}

func TestRateUpsertsInPlace(t *testing.T) {
	svc, mock := newMockService(t, 1000)

	mock.ExpectBegin()
	expectBookExists(mock, 1, true)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO book_ratings")).
		WithArgs(int64(7), int64(1), 4).
		WillReturnRows(
			sqlmock.NewRows([]string{"user_id", "book_id", "stars"}).
				AddRow(int64(7), int64(1), 4),
		)
	mock.ExpectCommit()

	rating, err := svc.Rate(context.Background(), 7, 1, 4)
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if rating.Stars != 4 {
		t.Fatalf("expected stars 4, got %d", rating.Stars)
	}
}

func TestRateMissingBook(t *testing.T) {
	svc, mock := newMockService(t, 1000)

	mock.ExpectBegin()
	expectBookExists(mock, 404, false)
	mock.ExpectRollback()

	_, err := svc.Rate(context.Background(), 7, 404, 3)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddCommentValidation(t *testing.T) {
	svc, mock := newMockService(t, 10)

	if _, err := svc.AddComment(context.Background(), 7, 1, ""); !errors.Is(err, ErrEmptyComment) {
		t.Fatalf("expected ErrEmptyComment, got %v", err)
	}

	long := strings.Repeat("x", 11)
	if _, err := svc.AddComment(context.Background(), 7, 1, long); !errors.Is(err, ErrCommentTooLong) {
		t.Fatalf("expected ErrCommentTooLong, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("comment validation should not reach the database: %v", err)
	}
}

func TestAddCommentReturnsAuthorName(t *testing.T) {
	svc, mock := newMockService(t, 1000)

	now := time.Now()

	mock.ExpectBegin()
	expectBookExists(mock, 1, true)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO book_comments")).
		WithArgs(int64(1), int64(7), "great read").
		WillReturnRows(
			sqlmock.NewRows([]string{
				"id", "book_id", "user_id", "content", "created_at",
			}).AddRow(int64(11), int64(1), int64(7), "great read", now),
		)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM users")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Ada"))
	mock.ExpectCommit()

	comment, err := svc.AddComment(context.Background(), 7, 1, "great read")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if comment.UserName != "Ada" || comment.ID != 11 {
		t.Fatalf("unexpected comment: %+v", comment)
	}
}

func TestListCommentsMissingBook(t *testing.T) {
	svc, mock := newMockService(t, 1000)

	expectBookExists(mock, 404, false)

	_, err := svc.ListComments(context.Background(), 404)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListCommentsNewestFirst(t *testing.T) {
	svc, mock := newMockService(t, 1000)

	expectBookExists(mock, 1, true)

	older := time.Now().Add(-time.Hour)
	newer := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM book_comments")).
		WithArgs(int64(1)).
		WillReturnRows(
			sqlmock.NewRows([]string{
				"id", "book_id", "user_id", "content", "created_at",
				"user_name",
			}).
				AddRow(int64(2), int64(1), int64(7), "second", newer, "Ada").
				AddRow(int64(1), int64(1), int64(8), "first", older, "Grace"),
		)

	comments, err := svc.ListComments(context.Background(), 1)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0].Content != "second" || comments[0].UserName != "Ada" {
		t.Fatalf("unexpected first comment: %+v", comments[0])
	}
}
