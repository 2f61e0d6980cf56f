// AngelaMos | 2026
// service.go

package book

import (
	"context"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every book, or those whose title or author contains the
// query case-insensitively. viewerID 0 means anonymous.
func (s *Service) List(
	ctx context.Context,
	search string,
	viewerID int64,
) ([]View, error) {
	return s.repo.List(ctx, search, viewerID)
}

func (s *Service) Get(
	ctx context.Context,
	id, viewerID int64,
) (*View, error) {
	return s.repo.GetByID(ctx, id, viewerID)
}
