// Package api assembles the HTTP surface: the route table, the introspection
// endpoint and the middleware chain around it.
package api

import (
	"net/http"

	"bookcatalog/internal/author"
	"bookcatalog/internal/book"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/metrics"
)

// Route is one entry of the introspection listing served at GET /.
type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

type Deps struct {
	Books   *book.HTTPHandler
	Authors *author.HTTPHandler
	Metrics *metrics.Metrics
	// Ready reports whether the author store session is established.
	Ready func() bool
}

type Router struct {
	mux    *http.ServeMux
	routes []Route
}

func NewRouter(d Deps) *Router {
	rt := &Router{mux: http.NewServeMux()}

	rt.handle(http.MethodGet, "/", "/{$}", rt.listRoutes)

	rt.handle(http.MethodGet, "/books", "", d.Books.List)
	rt.handle(http.MethodGet, "/books/{bookID}", "", d.Books.GetByID)

	rt.handle(http.MethodGet, "/authors", "", d.Authors.List)
	rt.handle(http.MethodGet, "/authors/{lastName}", "", d.Authors.ListByLastName)
	rt.handle(http.MethodPost, "/authors", "", d.Authors.Create)

	rt.handle(http.MethodGet, "/healthz", "", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONSuccess(w, map[string]string{"status": "ok"})
	})
	rt.handle(http.MethodGet, "/readyz", "", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready == nil || !d.Ready() {
			httpx.JSONError(w, http.StatusServiceUnavailable, "Store not ready", nil)
			return
		}
		httpx.JSONSuccess(w, map[string]string{"status": "ready"})
	})
	if d.Metrics != nil {
		rt.handle(http.MethodGet, "/metrics", "", d.Metrics.Handler().ServeHTTP)
	}

	rt.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, http.StatusNotFound, "Not found", nil)
	})
	return rt
}

// handle registers h for method and path. muxPath overrides the pattern given
// to the mux when it differs from the path shown to clients.
func (rt *Router) handle(method, path, muxPath string, h http.HandlerFunc) {
	if muxPath == "" {
		muxPath = path
	}
	pattern := method + " " + muxPath
	label := method + " " + path
	rt.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		httpx.SetRoute(r, label)
		h(w, r)
	})
	rt.routes = append(rt.routes, Route{Method: method, Path: path})
}

// Routes returns the registered routes in registration order.
func (rt *Router) Routes() []Route {
	return append([]Route(nil), rt.routes...)
}

func (rt *Router) listRoutes(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccess(w, rt.Routes())
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mux.ServeHTTP(w, r)
}
