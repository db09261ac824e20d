package entity

import "time"

// Loan ties a Book to a Borrower. A nil ReturnDate means the loan
// is still outstanding.
type Loan struct {
	ID         int64      `json:"id"`
	BookID     int64      `json:"book_id"`
	BorrowerID int64      `json:"borrower_id"`
	LoanDate   time.Time  `json:"loan_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}
