// AngelaMos | 2026
// dto.go

package shelf

import (
	"time"
)

type RateRequest struct {
	Stars int `json:"stars" validate:"required,min=1,max=5"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type RatingResponse struct {
	UserID int64 `json:"user_id"`
	BookID int64 `json:"book_id"`
	Stars  int   `json:"stars"`
}

type CommentResponse struct {
	CommentID int64     `json:"comment_id"`
	BookID    int64     `json:"book_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func ToRatingResponse(r *Rating) RatingResponse {
	return RatingResponse{
		UserID: r.UserID,
		BookID: r.BookID,
		Stars:  r.Stars,
	}
}

func ToCommentResponse(c *CommentWithAuthor) CommentResponse {
	return CommentResponse{
		CommentID: c.ID,
		BookID:    c.BookID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UserName:  c.UserName,
	}
}

func ToCommentResponseList(comments []CommentWithAuthor) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, ToCommentResponse(&comments[i]))
	}
	return responses
}
