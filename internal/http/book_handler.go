package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"libraryapi/internal/catalog"
	"libraryapi/internal/entity"
	"libraryapi/internal/httpx"
)

const bookItemPrefix = "/api/library/books/"

type BookHandler struct {
	svc *catalog.Service
}

func NewBookHandler(svc *catalog.Service) *BookHandler {
	return &BookHandler{svc: svc}
}

type bookReq struct {
	Title         string     `json:"title" validate:"required,max=50"`
	AuthorID      int64      `json:"author_id" validate:"required,gt=0"`
	Genre         string     `json:"genre" validate:"required"`
	PublishedDate *time.Time `json:"published_date"`
}

func (req bookReq) toEntity() entity.Book {
	return entity.Book{
		Title:         req.Title,
		AuthorID:      req.AuthorID,
		Genre:         req.Genre,
		PublishedDate: req.PublishedDate,
	}
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.ListBooks(r.Context())
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	if books == nil {
		books = []entity.Book{}
	}
	httpx.JSONSuccess(r, w, books)
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Title = strings.TrimSpace(req.Title)

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	book, err := h.svc.CreateBook(r.Context(), req.toEntity())
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	httpx.JSONSuccessCreated(r, w, book)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, bookItemPrefix)
	if !ok {
		http.NotFound(w, r)
		return
	}
	book, err := h.svc.GetBook(r.Context(), id)
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, book)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, bookItemPrefix)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req bookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Title = strings.TrimSpace(req.Title)

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	if err := h.svc.UpdateBook(r.Context(), id, req.toEntity()); err != nil {
		writeServiceError(r, w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, bookItemPrefix)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.svc.DeleteBook(r.Context(), id); err != nil {
		writeServiceError(r, w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
