package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	books, err := LoadEmbedded()
	require.NoError(t, err)
	require.NotEmpty(t, books)

	first := books[0]
	assert.Equal(t, 1, first.BookID)
	assert.Equal(t, "Harry Potter and the Half-Blood Prince (Harry Potter  #6)", first.Title)
	assert.Equal(t, int64(9780439785969), first.ISBN13)
	assert.Equal(t, "eng", first.LanguageCode)
}

func TestLoadCatalog_PreservesOrder(t *testing.T) {
	data := []byte(`[
		{"bookID": 7, "title": "B", "authors": "x", "average_rating": 4.1, "isbn": 1, "isbn13": 2, "language_code": "eng", "num_pages": 10, "ratings_count": 1, "text_review_count": 0},
		{"bookID": 3, "title": "A", "authors": "y", "average_rating": 3, "isbn": 3, "isbn13": 4, "language_code": "eng", "num_pages": 20, "ratings_count": 2, "text_review_count": 1}
	]`)

	books, err := LoadCatalog(data)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, 7, books[0].BookID)
	assert.Equal(t, 3, books[1].BookID)
}

func TestLoadCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "not an array",
			data: `{"bookID": 1}`,
		},
		{
			name: "missing field",
			data: `[{"bookID": 1, "title": "A"}]`,
		},
		{
			name: "string id",
			data: `[{"bookID": "1", "title": "A", "authors": "x", "average_rating": 4, "isbn": 1, "isbn13": 2, "language_code": "eng", "num_pages": 1, "ratings_count": 1, "text_review_count": 1}]`,
		},
		{
			name: "rating out of range",
			data: `[{"bookID": 1, "title": "A", "authors": "x", "average_rating": 7, "isbn": 1, "isbn13": 2, "language_code": "eng", "num_pages": 1, "ratings_count": 1, "text_review_count": 1}]`,
		},
		{
			name: "duplicate id",
			data: `[
				{"bookID": 1, "title": "A", "authors": "x", "average_rating": 4, "isbn": 1, "isbn13": 2, "language_code": "eng", "num_pages": 1, "ratings_count": 1, "text_review_count": 1},
				{"bookID": 1, "title": "B", "authors": "y", "average_rating": 4, "isbn": 3, "isbn13": 4, "language_code": "eng", "num_pages": 1, "ratings_count": 1, "text_review_count": 1}
			]`,
		},
		{
			name: "malformed json",
			data: `[{"bookID": 1,`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := LoadCatalog([]byte(tt.data))
			assert.Error(t, err)
			assert.Nil(t, books)
		})
	}
}
