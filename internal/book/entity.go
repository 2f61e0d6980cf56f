// AngelaMos | 2026
// entity.go

package book

type Book struct {
	ID            int64   `db:"id"`
	Title         string  `db:"title"`
	Author        string  `db:"author"`
	ReleaseYear   *int    `db:"release_year"`
	Summary       *string `db:"summary"`
	BookmarkPrice int     `db:"bookmark_price"`
	CoverURL      *string `db:"cover_url"`
	ContentURL    *string `db:"content_url"`
}

// View is a book enriched with aggregate rating stats and, when a viewer
// is known, their ownership and rating. Anonymous viewers still get the
// aggregates; IsPurchased is false and UserRating nil.
type View struct {
	Book
	AverageRating *float64 `db:"average_rating"`
	TotalRatings  int      `db:"total_ratings"`
	IsPurchased   bool     `db:"is_purchased"`
	UserRating    *int     `db:"user_rating"`
}
