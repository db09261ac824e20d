package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"libraryapi/internal/catalog"
	"libraryapi/internal/entity"
	"libraryapi/internal/httpx"
)

// idFromPath extracts the trailing numeric id from a collection subpath.
// Crude path param extraction with net/http's ServeMux.
func idFromPath(path, prefix string) (int64, bool) {
	rest := strings.TrimPrefix(path, prefix)
	if rest == "" || strings.Contains(rest, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

const authorItemPrefix = "/api/library/authors/"

type AuthorHandler struct {
	svc *catalog.Service
}

func NewAuthorHandler(svc *catalog.Service) *AuthorHandler {
	return &AuthorHandler{svc: svc}
}

type authorReq struct {
	Name string `json:"name" validate:"required"`
	Bio  string `json:"bio"`
}

func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, err := h.svc.ListAuthors(r.Context())
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	if authors == nil {
		authors = []entity.Author{}
	}
	httpx.JSONSuccess(r, w, authors)
}

func (h *AuthorHandler) Count(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	n, err := h.svc.CountAuthors(r.Context())
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, map[string]int{"count": n})
}

func (h *AuthorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req authorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	author, err := h.svc.CreateAuthor(r.Context(), entity.Author{Name: req.Name, Bio: req.Bio})
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	httpx.JSONSuccessCreated(r, w, author)
}

func (h *AuthorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, authorItemPrefix)
	if !ok {
		http.NotFound(w, r)
		return
	}
	author, err := h.svc.GetAuthor(r.Context(), id)
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, author)
}

func (h *AuthorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, authorItemPrefix)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req authorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	if err := h.svc.UpdateAuthor(r.Context(), id, entity.Author{Name: req.Name, Bio: req.Bio}); err != nil {
		writeServiceError(r, w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *AuthorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, authorItemPrefix)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.svc.DeleteAuthor(r.Context(), id); err != nil {
		writeServiceError(r, w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
