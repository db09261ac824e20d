package store

// Repository implementation (Postgres)

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"libraryapi/internal/catalog"
	"libraryapi/internal/entity"
)

type AuthorPG struct {
	db *pgxpool.Pool
}

func NewAuthorPG(db *pgxpool.Pool) *AuthorPG {
	return &AuthorPG{db: db}
}

func (r *AuthorPG) Insert(ctx context.Context, a *entity.Author) (int64, error) {
	query := `INSERT INTO authors (name, bio) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRow(ctx, query, a.Name, a.Bio).Scan(&a.ID); err != nil {
		return 0, err
	}
	return a.ID, nil
}

func (r *AuthorPG) GetByID(ctx context.Context, id int64) (entity.Author, error) {
	query := `SELECT id, name, bio FROM authors WHERE id = $1`
	var a entity.Author
	if err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.Bio); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Author{}, catalog.ErrNotFound
		}
		return entity.Author{}, err
	}
	return a, nil
}

func (r *AuthorPG) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *AuthorPG) Update(ctx context.Context, id int64, a entity.Author) error {
	tag, err := r.db.Exec(ctx, `UPDATE authors SET name = $1, bio = $2 WHERE id = $3`, a.Name, a.Bio, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *AuthorPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *AuthorPG) ListAll(ctx context.Context) ([]entity.Author, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, bio FROM authors ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []entity.Author
	for rows.Next() {
		var a entity.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio); err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return authors, nil
}
