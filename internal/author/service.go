package author

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Service provides author-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new author service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every persisted author. An empty store yields an empty slice.
func (s *Service) List(ctx context.Context) ([]Author, error) {
	authors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if authors == nil {
		authors = []Author{}
	}
	return authors, nil
}

// ListByLastName returns the authors with exactly this last name, or
// ErrNotFound when there are none.
func (s *Service) ListByLastName(ctx context.Context, lastName string) ([]Author, error) {
	// Stored names are valid UTF-8, so nothing can match; Postgres would
	// reject the parameter outright.
	if !utf8.ValidString(lastName) {
		return nil, ErrNotFound
	}
	authors, err := s.repo.ListByLastName(ctx, lastName)
	if err != nil {
		return nil, err
	}
	if len(authors) == 0 {
		return nil, ErrNotFound
	}
	return authors, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Author, error) {
	a := &Author{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Author{}, err
	}
	return *a, nil
}
