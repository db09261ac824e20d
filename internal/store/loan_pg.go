package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"libraryapi/internal/catalog"
	"libraryapi/internal/entity"
)

// LoanPG stores loans. Like books, loan rows carry no foreign-key
// constraints; book_id and borrower_id may dangle after deletes.
type LoanPG struct {
	db *pgxpool.Pool
}

func NewLoanPG(db *pgxpool.Pool) *LoanPG {
	return &LoanPG{db: db}
}

func (r *LoanPG) Insert(ctx context.Context, l *entity.Loan) (int64, error) {
	query := `
	INSERT INTO loans (book_id, borrower_id, loan_date, return_date)
	VALUES ($1, $2, $3, $4)
	RETURNING id`
	if err := r.db.QueryRow(ctx, query, l.BookID, l.BorrowerID, l.LoanDate, l.ReturnDate).Scan(&l.ID); err != nil {
		return 0, err
	}
	return l.ID, nil
}

func (r *LoanPG) GetByID(ctx context.Context, id int64) (entity.Loan, error) {
	query := `SELECT id, book_id, borrower_id, loan_date, return_date FROM loans WHERE id = $1`
	var l entity.Loan
	if err := r.db.QueryRow(ctx, query, id).Scan(&l.ID, &l.BookID, &l.BorrowerID, &l.LoanDate, &l.ReturnDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Loan{}, catalog.ErrNotFound
		}
		return entity.Loan{}, err
	}
	return l, nil
}

func (r *LoanPG) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM loans WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *LoanPG) Update(ctx context.Context, id int64, l entity.Loan) error {
	query := `UPDATE loans SET book_id = $1, borrower_id = $2, loan_date = $3, return_date = $4 WHERE id = $5`
	tag, err := r.db.Exec(ctx, query, l.BookID, l.BorrowerID, l.LoanDate, l.ReturnDate, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *LoanPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *LoanPG) ListAll(ctx context.Context) ([]entity.Loan, error) {
	rows, err := r.db.Query(ctx, `SELECT id, book_id, borrower_id, loan_date, return_date FROM loans ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []entity.Loan
	for rows.Next() {
		var l entity.Loan
		if err := rows.Scan(&l.ID, &l.BookID, &l.BorrowerID, &l.LoanDate, &l.ReturnDate); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return loans, nil
}
