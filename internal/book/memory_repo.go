package book

import (
	"context"
)

// CatalogRepo serves books from an in-memory catalog that never changes after
// construction. It is safe for concurrent use without locking.
type CatalogRepo struct {
	books []Book
}

func NewCatalogRepo(books []Book) *CatalogRepo {
	return &CatalogRepo{books: append([]Book(nil), books...)}
}

// List returns a copy of the catalog in load order.
func (r *CatalogRepo) List(_ context.Context) ([]Book, error) {
	out := make([]Book, len(r.books))
	copy(out, r.books)
	return out, nil
}

// GetByID returns the first book whose BookID equals id.
func (r *CatalogRepo) GetByID(_ context.Context, id int) (Book, error) {
	for _, b := range r.books {
		if b.BookID == id {
			return b, nil
		}
	}
	return Book{}, ErrNotFound
}

func (r *CatalogRepo) Len() int {
	return len(r.books)
}
