package author

import (
	"errors"
)

// ErrNotFound is returned when no author matches a lookup.
var ErrNotFound = errors.New("author not found")

// Author is a persisted author record. ID is assigned by the store on insert
// and never reused.
type Author struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CreateInput is the payload accepted for new authors. At least one name
// must be present, and a name that is sent may not be only whitespace.
type CreateInput struct {
	FirstName string `json:"firstName" validate:"required_without=LastName,omitempty,notblank,max=100"`
	LastName  string `json:"lastName" validate:"required_without=FirstName,omitempty,notblank,max=100"`
}
