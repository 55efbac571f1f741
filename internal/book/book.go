package book

import (
	"errors"
)

var (
	// ErrNotFound is returned when no book in the catalog has the requested id.
	ErrNotFound = errors.New("book not found")
	// ErrInvalidID is returned when a book id is not an integer.
	ErrInvalidID = errors.New("invalid book id")
)

// Book is one record of the static catalog. Field names follow the catalog
// document so records serialize back exactly as loaded.
type Book struct {
	BookID          int     `json:"bookID"`
	Title           string  `json:"title"`
	Authors         string  `json:"authors"`
	AverageRating   float64 `json:"average_rating"`
	ISBN            int64   `json:"isbn"`
	ISBN13          int64   `json:"isbn13"`
	LanguageCode    string  `json:"language_code"`
	NumPages        int     `json:"num_pages"`
	RatingsCount    int     `json:"ratings_count"`
	TextReviewCount int     `json:"text_review_count"`
}
