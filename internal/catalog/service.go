package catalog

import (
	"context"
	"fmt"
	"strings"

	"libraryapi/internal/entity"
)

// Titles longer than this are rejected on create and update.
const maxTitleLength = 50

// Service implements the four entity lifecycles the admin UI drives. It holds
// no state of its own beyond delegation to the stores, the integrity gate and
// the audit recorder, so a single instance is safe for concurrent handlers.
type Service struct {
	authors   AuthorStore
	books     BookStore
	borrowers BorrowerStore
	loans     LoanStore
	gate      *Gate
	audit     Recorder

	// enforceIntegrityOnUpdate re-runs the create-time reference checks on
	// Book and Loan updates. Off by default: updates have historically been
	// allowed to set a dangling foreign id, and callers may rely on that.
	enforceIntegrityOnUpdate bool
}

type Option func(*Service)

// WithIntegrityOnUpdate toggles reference checking for Book and Loan updates.
func WithIntegrityOnUpdate(enabled bool) Option {
	return func(s *Service) { s.enforceIntegrityOnUpdate = enabled }
}

func NewService(authors AuthorStore, books BookStore, borrowers BorrowerStore, loans LoanStore, audit Recorder, opts ...Option) *Service {
	s := &Service{
		authors:   authors,
		books:     books,
		borrowers: borrowers,
		loans:     loans,
		gate:      NewGate(authors, books, borrowers),
		audit:     audit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Gate returns the integrity gate the service consults on creates.
func (s *Service) Gate() *Gate {
	return s.gate
}

func validateAuthor(a entity.Author) error {
	if strings.TrimSpace(a.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	return nil
}

// CreateAuthor persists a new author and audits the insert. The audit write
// is fire-and-forget; its failure never rolls back or fails the create.
func (s *Service) CreateAuthor(ctx context.Context, a entity.Author) (entity.Author, error) {
	if err := validateAuthor(a); err != nil {
		return entity.Author{}, err
	}
	id, err := s.authors.Insert(ctx, &a)
	if err != nil {
		return entity.Author{}, err
	}
	a.ID = id
	s.audit.Record(fmt.Sprintf("Author created: id=%d", id))
	return a, nil
}

func (s *Service) GetAuthor(ctx context.Context, id int64) (entity.Author, error) {
	return s.authors.GetByID(ctx, id)
}

func (s *Service) ListAuthors(ctx context.Context) ([]entity.Author, error) {
	return s.authors.ListAll(ctx)
}

func (s *Service) CountAuthors(ctx context.Context) (int, error) {
	authors, err := s.authors.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(authors), nil
}

// UpdateAuthor fully replaces the author's mutable fields.
func (s *Service) UpdateAuthor(ctx context.Context, id int64, a entity.Author) error {
	if err := validateAuthor(a); err != nil {
		return err
	}
	if _, err := s.authors.GetByID(ctx, id); err != nil {
		return err
	}
	a.ID = id
	return s.authors.Update(ctx, id, a)
}

// DeleteAuthor removes the author. Books referencing it are left untouched:
// their author_id becomes dangling. There is no cascade and no restrict.
func (s *Service) DeleteAuthor(ctx context.Context, id int64) error {
	if _, err := s.authors.GetByID(ctx, id); err != nil {
		return err
	}
	return s.authors.Delete(ctx, id)
}

func validateBook(b entity.Book) error {
	if strings.TrimSpace(b.Title) == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if len(b.Title) > maxTitleLength {
		return &ValidationError{Field: "title", Reason: fmt.Sprintf("must be at most %d characters", maxTitleLength)}
	}
	if b.AuthorID <= 0 {
		return &ValidationError{Field: "author_id", Reason: "is required"}
	}
	if strings.TrimSpace(b.Genre) == "" {
		return &ValidationError{Field: "genre", Reason: "is required"}
	}
	return nil
}

// CreateBook persists a new book after checking the referenced author exists.
// The existence check and the insert are two separate store calls; see Gate.
func (s *Service) CreateBook(ctx context.Context, b entity.Book) (entity.Book, error) {
	if err := validateBook(b); err != nil {
		return entity.Book{}, err
	}
	if err := s.gate.ValidateBookCreate(ctx, b.AuthorID); err != nil {
		return entity.Book{}, err
	}
	id, err := s.books.Insert(ctx, &b)
	if err != nil {
		return entity.Book{}, err
	}
	b.ID = id
	s.audit.Record(fmt.Sprintf("Book created: id=%d", id))
	return b, nil
}

func (s *Service) GetBook(ctx context.Context, id int64) (entity.Book, error) {
	return s.books.GetByID(ctx, id)
}

func (s *Service) ListBooks(ctx context.Context) ([]entity.Book, error) {
	return s.books.ListAll(ctx)
}

// UpdateBook fully replaces the book's mutable fields. Unless
// WithIntegrityOnUpdate was set, the new author_id is NOT checked and may
// point at a deleted author.
func (s *Service) UpdateBook(ctx context.Context, id int64, b entity.Book) error {
	if err := validateBook(b); err != nil {
		return err
	}
	if s.enforceIntegrityOnUpdate {
		if err := s.gate.ValidateBookCreate(ctx, b.AuthorID); err != nil {
			return err
		}
	}
	if _, err := s.books.GetByID(ctx, id); err != nil {
		return err
	}
	b.ID = id
	return s.books.Update(ctx, id, b)
}

// DeleteBook removes the book. Loans referencing it keep their book_id.
func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	if _, err := s.books.GetByID(ctx, id); err != nil {
		return err
	}
	return s.books.Delete(ctx, id)
}

func validateBorrower(b entity.Borrower) error {
	if strings.TrimSpace(b.FirstName) == "" {
		return &ValidationError{Field: "first_name", Reason: "is required"}
	}
	if strings.TrimSpace(b.LastName) == "" {
		return &ValidationError{Field: "last_name", Reason: "is required"}
	}
	return nil
}

func (s *Service) CreateBorrower(ctx context.Context, b entity.Borrower) (entity.Borrower, error) {
	if err := validateBorrower(b); err != nil {
		return entity.Borrower{}, err
	}
	id, err := s.borrowers.Insert(ctx, &b)
	if err != nil {
		return entity.Borrower{}, err
	}
	b.ID = id
	s.audit.Record(fmt.Sprintf("Borrower created: id=%d", id))
	return b, nil
}

func (s *Service) GetBorrower(ctx context.Context, id int64) (entity.Borrower, error) {
	return s.borrowers.GetByID(ctx, id)
}

// ListBorrowers also writes an audit line; the original admin backend logged
// every borrower listing and operators grep for it.
func (s *Service) ListBorrowers(ctx context.Context) ([]entity.Borrower, error) {
	s.audit.Record("borrowers retrieved")
	return s.borrowers.ListAll(ctx)
}

func (s *Service) UpdateBorrower(ctx context.Context, id int64, b entity.Borrower) error {
	if err := validateBorrower(b); err != nil {
		return err
	}
	if _, err := s.borrowers.GetByID(ctx, id); err != nil {
		return err
	}
	b.ID = id
	return s.borrowers.Update(ctx, id, b)
}

// DeleteBorrower removes the borrower without touching their loans.
func (s *Service) DeleteBorrower(ctx context.Context, id int64) error {
	if _, err := s.borrowers.GetByID(ctx, id); err != nil {
		return err
	}
	return s.borrowers.Delete(ctx, id)
}

func validateLoan(l entity.Loan) error {
	if l.BookID <= 0 {
		return &ValidationError{Field: "book_id", Reason: "is required"}
	}
	if l.BorrowerID <= 0 {
		return &ValidationError{Field: "borrower_id", Reason: "is required"}
	}
	if l.LoanDate.IsZero() {
		return &ValidationError{Field: "loan_date", Reason: "is required"}
	}
	return nil
}

// CreateLoan persists a new loan after checking the referenced book and
// borrower exist, in that order.
func (s *Service) CreateLoan(ctx context.Context, l entity.Loan) (entity.Loan, error) {
	if err := validateLoan(l); err != nil {
		return entity.Loan{}, err
	}
	if err := s.gate.ValidateLoanCreate(ctx, l.BookID, l.BorrowerID); err != nil {
		return entity.Loan{}, err
	}
	id, err := s.loans.Insert(ctx, &l)
	if err != nil {
		return entity.Loan{}, err
	}
	l.ID = id
	s.audit.Record(fmt.Sprintf("Loan created: id=%d", id))
	return l, nil
}

func (s *Service) GetLoan(ctx context.Context, id int64) (entity.Loan, error) {
	return s.loans.GetByID(ctx, id)
}

func (s *Service) ListLoans(ctx context.Context) ([]entity.Loan, error) {
	return s.loans.ListAll(ctx)
}

// UpdateLoan fully replaces the loan's mutable fields. Reference checks only
// run when WithIntegrityOnUpdate was set.
func (s *Service) UpdateLoan(ctx context.Context, id int64, l entity.Loan) error {
	if err := validateLoan(l); err != nil {
		return err
	}
	if s.enforceIntegrityOnUpdate {
		if err := s.gate.ValidateLoanCreate(ctx, l.BookID, l.BorrowerID); err != nil {
			return err
		}
	}
	if _, err := s.loans.GetByID(ctx, id); err != nil {
		return err
	}
	l.ID = id
	return s.loans.Update(ctx, id, l)
}

func (s *Service) DeleteLoan(ctx context.Context, id int64) error {
	if _, err := s.loans.GetByID(ctx, id); err != nil {
		return err
	}
	return s.loans.Delete(ctx, id)
}
