package http

import (
	"net/http"

	"libraryapi/internal/catalog"
	"libraryapi/internal/httpx"
)

// RouterConfig carries the optional admin-auth settings. When both fields are
// set, mutating routes require a bearer token from POST /api/library/login;
// otherwise every route is open, which matches the original admin backend.
type RouterConfig struct {
	JWTSecret         string
	AdminPasswordHash string
}

// NewRouter registers the catalog CRUD routes on a fresh mux. Health,
// readiness and metrics endpoints are wired by the caller.
func NewRouter(svc *catalog.Service, cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	authors := NewAuthorHandler(svc)
	books := NewBookHandler(svc)
	borrowers := NewBorrowerHandler(svc)
	loans := NewLoanHandler(svc)

	guard := func(h http.Handler) http.Handler { return h }
	if cfg.JWTSecret != "" && cfg.AdminPasswordHash != "" {
		login := NewAuthHandler(cfg.JWTSecret, cfg.AdminPasswordHash)
		mux.HandleFunc("/api/library/login", login.Login)
		guard = httpx.AuthMiddleware(cfg.JWTSecret)
	}

	mux.HandleFunc("/api/library/authors/count", authors.Count)
	mux.Handle("/api/library/authors", MethodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(authors.List),
		http.MethodPost: guard(http.HandlerFunc(authors.Create)),
	}))
	mux.Handle("/api/library/authors/", MethodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(authors.Get),
		http.MethodPut:    guard(http.HandlerFunc(authors.Update)),
		http.MethodDelete: guard(http.HandlerFunc(authors.Delete)),
	}))

	mux.Handle("/api/library/books", MethodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(books.List),
		http.MethodPost: guard(http.HandlerFunc(books.Create)),
	}))
	mux.Handle("/api/library/books/", MethodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(books.Get),
		http.MethodPut:    guard(http.HandlerFunc(books.Update)),
		http.MethodDelete: guard(http.HandlerFunc(books.Delete)),
	}))

	mux.Handle("/api/library/borrowers", MethodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(borrowers.List),
		http.MethodPost: guard(http.HandlerFunc(borrowers.Create)),
	}))
	mux.Handle("/api/library/borrowers/", MethodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(borrowers.Get),
		http.MethodPut:    guard(http.HandlerFunc(borrowers.Update)),
		http.MethodDelete: guard(http.HandlerFunc(borrowers.Delete)),
	}))

	mux.Handle("/api/library/loans", MethodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(loans.List),
		http.MethodPost: guard(http.HandlerFunc(loans.Create)),
	}))
	mux.Handle("/api/library/loans/", MethodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(loans.Get),
		http.MethodPut:    guard(http.HandlerFunc(loans.Update)),
		http.MethodDelete: guard(http.HandlerFunc(loans.Delete)),
	}))

	return mux
}
