package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"libraryapi/internal/catalog"
	"libraryapi/internal/entity"
)

// BookPG stores books. books.author_id carries no foreign-key constraint on
// purpose: reference checks happen in the catalog at create time only, and
// dangling author ids must remain representable.
type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

func (r *BookPG) Insert(ctx context.Context, b *entity.Book) (int64, error) {
	query := `
	INSERT INTO books (title, author_id, genre, published_date)
	VALUES ($1, $2, $3, $4)
	RETURNING id`
	if err := r.db.QueryRow(ctx, query, b.Title, b.AuthorID, b.Genre, b.PublishedDate).Scan(&b.ID); err != nil {
		return 0, err
	}
	return b.ID, nil
}

func (r *BookPG) GetByID(ctx context.Context, id int64) (entity.Book, error) {
	query := `SELECT id, title, author_id, genre, published_date FROM books WHERE id = $1`
	var b entity.Book
	if err := r.db.QueryRow(ctx, query, id).Scan(&b.ID, &b.Title, &b.AuthorID, &b.Genre, &b.PublishedDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, catalog.ErrNotFound
		}
		return entity.Book{}, err
	}
	return b, nil
}

func (r *BookPG) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *BookPG) Update(ctx context.Context, id int64, b entity.Book) error {
	query := `UPDATE books SET title = $1, author_id = $2, genre = $3, published_date = $4 WHERE id = $5`
	tag, err := r.db.Exec(ctx, query, b.Title, b.AuthorID, b.Genre, b.PublishedDate, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *BookPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *BookPG) ListAll(ctx context.Context) ([]entity.Book, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title, author_id, genre, published_date FROM books ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.AuthorID, &b.Genre, &b.PublishedDate); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}
