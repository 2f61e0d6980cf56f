// AngelaMos | 2026
// dto.go

package book

type BookResponse struct {
	BookID        int64    `json:"book_id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	ReleaseYear   *int     `json:"release_year"`
	Summary       *string  `json:"summary"`
	BookmarkPrice int      `json:"bookmark_price"`
	CoverURL      *string  `json:"cover_url"`
	ContentURL    *string  `json:"content_url"`
	AverageRating *float64 `json:"average_rating"`
	TotalRatings  int      `json:"total_ratings"`
	IsPurchased   bool     `json:"is_purchased"`
	UserRating    *int     `json:"user_rating"`
}

func ToBookResponse(v *View) BookResponse {
	return BookResponse{
		BookID:        v.ID,
		Title:         v.Title,
		Author:        v.Author,
		ReleaseYear:   v.ReleaseYear,
		Summary:       v.Summary,
		BookmarkPrice: v.BookmarkPrice,
		CoverURL:      v.CoverURL,
		ContentURL:    v.ContentURL,
		AverageRating: v.AverageRating,
		TotalRatings:  v.TotalRatings,
		IsPurchased:   v.IsPurchased,
		UserRating:    v.UserRating,
	}
}

func ToBookResponseList(views []View) []BookResponse {
	responses := make([]BookResponse, 0, len(views))
	for i := range views {
		responses = append(responses, ToBookResponse(&views[i]))
	}
	return responses
}
