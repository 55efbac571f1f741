package author

import (
	"context"
)

// Repository defines the contract for author storage.
type Repository interface {
	List(ctx context.Context) ([]Author, error)
	ListByLastName(ctx context.Context, lastName string) ([]Author, error)
	Create(ctx context.Context, a *Author) error
}
