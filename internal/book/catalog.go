package book

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed data/books.json
var embeddedCatalog []byte

//go:embed data/books.schema.json
var catalogSchema []byte

// LoadEmbedded loads the catalog compiled into the binary.
func LoadEmbedded() ([]Book, error) {
	return LoadCatalog(embeddedCatalog)
}

// LoadCatalog validates data against the catalog schema and decodes it,
// preserving document order. Duplicate bookIDs are rejected.
func LoadCatalog(data []byte) ([]Book, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(catalogSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("catalog does not match schema: %s", strings.Join(msgs, "; "))
	}

	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[int]struct{}, len(books))
	for _, b := range books {
		if _, dup := seen[b.BookID]; dup {
			return nil, fmt.Errorf("catalog has duplicate bookID %d", b.BookID)
		}
		seen[b.BookID] = struct{}{}
	}
	return books, nil
}
