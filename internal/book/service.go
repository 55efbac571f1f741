package book

import (
	"context"
	"fmt"
	"strconv"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the whole catalog in load order.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

// GetByID returns the book with the given id.
func (s *Service) GetByID(ctx context.Context, id int) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// ParseID converts a path segment into a book id. Only plain base-10
// integers are accepted.
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}
