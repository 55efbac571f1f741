package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/api"
	"bookcatalog/internal/author"
	"bookcatalog/internal/author/mocks"
	"bookcatalog/internal/book"
	"bookcatalog/internal/metrics"
	"bookcatalog/internal/platform/dbconn"
	"bookcatalog/internal/testutil"
)

func bookHandler(t *testing.T) (*book.HTTPHandler, []book.Book) {
	t.Helper()
	books, err := book.LoadEmbedded()
	require.NoError(t, err)
	return book.NewHTTPHandler(book.NewService(book.NewCatalogRepo(books)), testutil.Logger()), books
}

func newRouter(t *testing.T, repo author.Repository, ready func() bool) (*api.Router, []book.Book) {
	t.Helper()
	books, catalog := bookHandler(t)
	rt := api.NewRouter(api.Deps{
		Books:   books,
		Authors: author.NewHTTPHandler(author.NewService(repo), testutil.Logger()),
		Metrics: metrics.New(),
		Ready:   ready,
	})
	return rt, catalog
}

func serve(rt http.Handler, method, path string) *httptest.ResponseRecorder {
	return testutil.Serve(rt, testutil.NewRequest(method, path, nil))
}

func TestRouter_ListRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	rt, _ := newRouter(t, mocks.NewMockRepository(ctrl), nil)

	w := serve(rt, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)

	var routes []api.Route
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &routes))
	for _, want := range []api.Route{
		{Method: "GET", Path: "/books"},
		{Method: "GET", Path: "/books/{bookID}"},
		{Method: "GET", Path: "/authors"},
		{Method: "GET", Path: "/authors/{lastName}"},
	} {
		assert.Contains(t, routes, want)
	}
	assert.Equal(t, rt.Routes(), routes)
}

func TestRouter_Books(t *testing.T) {
	ctrl := gomock.NewController(t)
	rt, catalog := newRouter(t, mocks.NewMockRepository(ctrl), nil)

	t.Run("list returns whole catalog in order", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			w := serve(rt, http.MethodGet, "/books")
			require.Equal(t, http.StatusOK, w.Code)
			var got []book.Book
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, catalog, got)
		}
	})

	t.Run("every id resolves to its record", func(t *testing.T) {
		for _, want := range catalog {
			w := serve(rt, http.MethodGet, "/books/"+jsonInt(want.BookID))
			require.Equal(t, http.StatusOK, w.Code)
			var got book.Book
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, want.BookID, got.BookID)
		}
	})

	t.Run("absent id", func(t *testing.T) {
		w := serve(rt, http.MethodGet, "/books/99999")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Book not found, try another number", testutil.ErrorMessage(w))
	})

	t.Run("non-numeric id", func(t *testing.T) {
		w := serve(rt, http.MethodGet, "/books/abc")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid book id, must be an integer"}`, w.Body.String())
	})
}

func TestRouter_Authors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	rt, _ := newRouter(t, repo, nil)

	doe := []author.Author{{ID: "1", FirstName: "J", LastName: "Doe"}}

	t.Run("empty store", func(t *testing.T) {
		repo.EXPECT().List(gomock.Any()).Return([]author.Author{}, nil)
		w := serve(rt, http.MethodGet, "/authors")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("by last name", func(t *testing.T) {
		repo.EXPECT().ListByLastName(gomock.Any(), "Doe").Return(doe, nil)
		w := serve(rt, http.MethodGet, "/authors/Doe")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"_id":"1","firstName":"J","lastName":"Doe"}]`, w.Body.String())
	})

	t.Run("undecodable last name", func(t *testing.T) {
		w := serve(rt, http.MethodGet, "/authors/%FF")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Authors not found with the specified last name", testutil.ErrorMessage(w))
	})

	t.Run("absent last name", func(t *testing.T) {
		repo.EXPECT().ListByLastName(gomock.Any(), "Smith").Return(nil, nil)
		w := serve(rt, http.MethodGet, "/authors/Smith")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouter_FallbackAndProbes(t *testing.T) {
	ctrl := gomock.NewController(t)
	var ready atomic.Bool
	rt, _ := newRouter(t, mocks.NewMockRepository(ctrl), ready.Load)

	w := serve(rt, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())

	assert.Equal(t, http.StatusOK, serve(rt, http.MethodGet, "/healthz").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(rt, http.MethodGet, "/readyz").Code)
	ready.Store(true)
	assert.Equal(t, http.StatusOK, serve(rt, http.MethodGet, "/readyz").Code)

	assert.Equal(t, http.StatusOK, serve(rt, http.MethodGet, "/metrics").Code)
}

// fakeStore is a session type whose repository reads through a dbconn.Manager,
// the same way the real repositories do.
type fakeStore struct {
	authors []author.Author
}

type managedRepo struct {
	manager *dbconn.Manager[*fakeStore]
}

func (r managedRepo) List(ctx context.Context) ([]author.Author, error) {
	s, err := r.manager.Session()
	if err != nil {
		return nil, err
	}
	return s.authors, nil
}

func (r managedRepo) ListByLastName(ctx context.Context, lastName string) ([]author.Author, error) {
	s, err := r.manager.Session()
	if err != nil {
		return nil, err
	}
	var out []author.Author
	for _, a := range s.authors {
		if a.LastName == lastName {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r managedRepo) Create(ctx context.Context, a *author.Author) error {
	s, err := r.manager.Session()
	if err != nil {
		return err
	}
	a.ID = jsonInt(len(s.authors) + 1)
	s.authors = append(s.authors, *a)
	return nil
}

func TestRouter_AuthorsRecoverAfterReconnect(t *testing.T) {
	var storeUp atomic.Bool
	manager := dbconn.New(dbconn.Options[*fakeStore]{
		Dial: func(ctx context.Context) (*fakeStore, error) {
			if !storeUp.Load() {
				return nil, errors.New("connection refused")
			}
			return &fakeStore{authors: []author.Author{{ID: "1", FirstName: "J", LastName: "Doe"}}}, nil
		},
		RetryDelay: 10 * time.Millisecond,
		Logger:     testutil.Logger(),
	})
	manager.Start(context.Background())
	t.Cleanup(func() { _ = manager.Close(context.Background()) })

	rt, _ := newRouter(t, managedRepo{manager: manager}, manager.Connected)

	assert.Equal(t, http.StatusInternalServerError, serve(rt, http.MethodGet, "/authors").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(rt, http.MethodGet, "/authors/Doe").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(rt, http.MethodGet, "/readyz").Code)

	storeUp.Store(true)
	select {
	case <-manager.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("manager did not reconnect")
	}

	w := serve(rt, http.MethodGet, "/authors/Doe")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"_id":"1","firstName":"J","lastName":"Doe"}]`, w.Body.String())
	assert.Equal(t, http.StatusOK, serve(rt, http.MethodGet, "/readyz").Code)

	// read-your-writes through the same store
	w = testutil.Serve(rt, testutil.NewRequest(http.MethodPost, "/authors", author.CreateInput{FirstName: "Jane", LastName: "Doe"}))
	require.Equal(t, http.StatusCreated, w.Code)

	w = serve(rt, http.MethodGet, "/authors/Doe")
	var got []author.Author
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}
