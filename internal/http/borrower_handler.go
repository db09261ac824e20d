package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"libraryapi/internal/catalog"
	"libraryapi/internal/entity"
	"libraryapi/internal/httpx"
)

const borrowerItemPrefix = "/api/library/borrowers/"

type BorrowerHandler struct {
	svc *catalog.Service
}

func NewBorrowerHandler(svc *catalog.Service) *BorrowerHandler {
	return &BorrowerHandler{svc: svc}
}

type borrowerReq struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
}

func (h *BorrowerHandler) List(w http.ResponseWriter, r *http.Request) {
	borrowers, err := h.svc.ListBorrowers(r.Context())
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	if borrowers == nil {
		borrowers = []entity.Borrower{}
	}
	httpx.JSONSuccess(r, w, borrowers)
}

func (h *BorrowerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req borrowerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	borrower, err := h.svc.CreateBorrower(r.Context(), entity.Borrower{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	httpx.JSONSuccessCreated(r, w, borrower)
}

func (h *BorrowerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, borrowerItemPrefix)
	if !ok {
		http.NotFound(w, r)
		return
	}
	borrower, err := h.svc.GetBorrower(r.Context(), id)
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, borrower)
}

func (h *BorrowerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, borrowerItemPrefix)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req borrowerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	err := h.svc.UpdateBorrower(r.Context(), id, entity.Borrower{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *BorrowerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, borrowerItemPrefix)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.svc.DeleteBorrower(r.Context(), id); err != nil {
		writeServiceError(r, w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
