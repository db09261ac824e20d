package catalog

import (
	"context"

	"libraryapi/internal/entity"
)

// The store interfaces below are the contract between the catalog and its
// persistence adapters. Each call is atomic for a single record; no
// multi-record transaction is offered or assumed anywhere in this package.
// ListAll returns records in insertion order.

type AuthorStore interface {
	Insert(ctx context.Context, a *entity.Author) (int64, error)
	GetByID(ctx context.Context, id int64) (entity.Author, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, id int64, a entity.Author) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]entity.Author, error)
}

type BookStore interface {
	Insert(ctx context.Context, b *entity.Book) (int64, error)
	GetByID(ctx context.Context, id int64) (entity.Book, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, id int64, b entity.Book) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]entity.Book, error)
}

type BorrowerStore interface {
	Insert(ctx context.Context, b *entity.Borrower) (int64, error)
	GetByID(ctx context.Context, id int64) (entity.Borrower, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, id int64, b entity.Borrower) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]entity.Borrower, error)
}

type LoanStore interface {
	Insert(ctx context.Context, l *entity.Loan) (int64, error)
	GetByID(ctx context.Context, id int64) (entity.Loan, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, id int64, l entity.Loan) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]entity.Loan, error)
}

// Recorder receives audit events. Implementations are best-effort: Record
// returns nothing and must never block the business operation it annotates.
type Recorder interface {
	Record(message string)
}
