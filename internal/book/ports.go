package book

import (
	"context"
)

// Repository defines the contract for reading the book catalog.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	GetByID(ctx context.Context, id int) (Book, error)
}
