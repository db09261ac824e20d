package catalog

import "context"

// Gate performs the referential checks that guard Book and Loan creation.
// It only reads. No transaction spans a check and the insert that follows,
// so a referenced record can still disappear between the two; the periodic
// reconciliation sweep is the backstop for that window.
type Gate struct {
	authors   AuthorStore
	books     BookStore
	borrowers BorrowerStore
}

func NewGate(authors AuthorStore, books BookStore, borrowers BorrowerStore) *Gate {
	return &Gate{authors: authors, books: books, borrowers: borrowers}
}

func (g *Gate) AuthorExists(ctx context.Context, id int64) (bool, error) {
	return g.authors.ExistsByID(ctx, id)
}

func (g *Gate) BookExists(ctx context.Context, id int64) (bool, error) {
	return g.books.ExistsByID(ctx, id)
}

func (g *Gate) BorrowerExists(ctx context.Context, id int64) (bool, error) {
	return g.borrowers.ExistsByID(ctx, id)
}

// ValidateBookCreate rejects a book whose author id names no existing author.
func (g *Gate) ValidateBookCreate(ctx context.Context, authorID int64) error {
	ok, err := g.authors.ExistsByID(ctx, authorID)
	if err != nil {
		return err
	}
	if !ok {
		return &ReferenceNotFoundError{Entity: "Author", ID: authorID}
	}
	return nil
}

// ValidateLoanCreate checks the book strictly before the borrower, so a loan
// with two dangling ids always reports the missing book.
func (g *Gate) ValidateLoanCreate(ctx context.Context, bookID, borrowerID int64) error {
	ok, err := g.books.ExistsByID(ctx, bookID)
	if err != nil {
		return err
	}
	if !ok {
		return &ReferenceNotFoundError{Entity: "Book", ID: bookID}
	}
	ok, err = g.borrowers.ExistsByID(ctx, borrowerID)
	if err != nil {
		return err
	}
	if !ok {
		return &ReferenceNotFoundError{Entity: "Borrower", ID: borrowerID}
	}
	return nil
}
