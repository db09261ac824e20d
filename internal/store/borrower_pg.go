package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"libraryapi/internal/catalog"
	"libraryapi/internal/entity"
)

type BorrowerPG struct {
	db *pgxpool.Pool
}

func NewBorrowerPG(db *pgxpool.Pool) *BorrowerPG {
	return &BorrowerPG{db: db}
}

func (r *BorrowerPG) Insert(ctx context.Context, b *entity.Borrower) (int64, error) {
	query := `INSERT INTO borrowers (first_name, last_name, email) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRow(ctx, query, b.FirstName, b.LastName, b.Email).Scan(&b.ID); err != nil {
		return 0, err
	}
	return b.ID, nil
}

func (r *BorrowerPG) GetByID(ctx context.Context, id int64) (entity.Borrower, error) {
	query := `SELECT id, first_name, last_name, email FROM borrowers WHERE id = $1`
	var b entity.Borrower
	if err := r.db.QueryRow(ctx, query, id).Scan(&b.ID, &b.FirstName, &b.LastName, &b.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Borrower{}, catalog.ErrNotFound
		}
		return entity.Borrower{}, err
	}
	return b, nil
}

func (r *BorrowerPG) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM borrowers WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *BorrowerPG) Update(ctx context.Context, id int64, b entity.Borrower) error {
	query := `UPDATE borrowers SET first_name = $1, last_name = $2, email = $3 WHERE id = $4`
	tag, err := r.db.Exec(ctx, query, b.FirstName, b.LastName, b.Email, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *BorrowerPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM borrowers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *BorrowerPG) ListAll(ctx context.Context) ([]entity.Borrower, error) {
	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name, email FROM borrowers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var borrowers []entity.Borrower
	for rows.Next() {
		var b entity.Borrower
		if err := rows.Scan(&b.ID, &b.FirstName, &b.LastName, &b.Email); err != nil {
			return nil, err
		}
		borrowers = append(borrowers, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return borrowers, nil
}
