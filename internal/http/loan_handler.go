package http

import (
	"encoding/json"
	"net/http"
	"time"

	"libraryapi/internal/catalog"
	"libraryapi/internal/entity"
	"libraryapi/internal/httpx"
)

const loanItemPrefix = "/api/library/loans/"

type LoanHandler struct {
	svc *catalog.Service
}

func NewLoanHandler(svc *catalog.Service) *LoanHandler {
	return &LoanHandler{svc: svc}
}

type loanReq struct {
	BookID     int64      `json:"book_id" validate:"required,gt=0"`
	BorrowerID int64      `json:"borrower_id" validate:"required,gt=0"`
	LoanDate   time.Time  `json:"loan_date" validate:"required"`
	ReturnDate *time.Time `json:"return_date"`
}

func (req loanReq) toEntity() entity.Loan {
	return entity.Loan{
		BookID:     req.BookID,
		BorrowerID: req.BorrowerID,
		LoanDate:   req.LoanDate,
		ReturnDate: req.ReturnDate,
	}
}

func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	loans, err := h.svc.ListLoans(r.Context())
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	if loans == nil {
		loans = []entity.Loan{}
	}
	httpx.JSONSuccess(r, w, loans)
}

func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req loanReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	loan, err := h.svc.CreateLoan(r.Context(), req.toEntity())
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	httpx.JSONSuccessCreated(r, w, loan)
}

func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, loanItemPrefix)
	if !ok {
		http.NotFound(w, r)
		return
	}
	loan, err := h.svc.GetLoan(r.Context(), id)
	if err != nil {
		writeServiceError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, loan)
}

func (h *LoanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, loanItemPrefix)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req loanReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	if err := h.svc.UpdateLoan(r.Context(), id, req.toEntity()); err != nil {
		writeServiceError(r, w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *LoanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, loanItemPrefix)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.svc.DeleteLoan(r.Context(), id); err != nil {
		writeServiceError(r, w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
