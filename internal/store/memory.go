package store

import (
	"context"
	"sync"

	"libraryapi/internal/catalog"
	"libraryapi/internal/entity"
)

// Memory is an in-process store adapter. Ids are a per-kind counter starting
// at 1 and ListAll returns insertion order, which matches the Postgres
// adapter's bigserial + ORDER BY id behavior. Each method is atomic for a
// single record; there are no cross-record transactions to mirror.
type Memory struct {
	Authors   *MemoryAuthors
	Books     *MemoryBooks
	Borrowers *MemoryBorrowers
	Loans     *MemoryLoans
}

func NewMemory() *Memory {
	return &Memory{
		Authors:   &MemoryAuthors{t: newTable[entity.Author]()},
		Books:     &MemoryBooks{t: newTable[entity.Book]()},
		Borrowers: &MemoryBorrowers{t: newTable[entity.Borrower]()},
		Loans:     &MemoryLoans{t: newTable[entity.Loan]()},
	}
}

type table[T any] struct {
	mu    sync.RWMutex
	rows  map[int64]T
	order []int64
	next  int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

func (t *table[T]) insert(assign func(id int64) T) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	id := t.next
	t.rows[id] = assign(id)
	t.order = append(t.order, id)
	return id
}

func (t *table[T]) get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) exists(id int64) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) update(id int64, row T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = row
	return true
}

func (t *table[T]) delete(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *table[T]) list() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

type MemoryAuthors struct{ t *table[entity.Author] }

func (s *MemoryAuthors) Insert(ctx context.Context, a *entity.Author) (int64, error) {
	id := s.t.insert(func(id int64) entity.Author {
		row := *a
		row.ID = id
		return row
	})
	a.ID = id
	return id, nil
}

func (s *MemoryAuthors) GetByID(ctx context.Context, id int64) (entity.Author, error) {
	row, ok := s.t.get(id)
	if !ok {
		return entity.Author{}, catalog.ErrNotFound
	}
	return row, nil
}

func (s *MemoryAuthors) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return s.t.exists(id), nil
}

func (s *MemoryAuthors) Update(ctx context.Context, id int64, a entity.Author) error {
	a.ID = id
	if !s.t.update(id, a) {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *MemoryAuthors) Delete(ctx context.Context, id int64) error {
	if !s.t.delete(id) {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *MemoryAuthors) ListAll(ctx context.Context) ([]entity.Author, error) {
	return s.t.list(), nil
}

type MemoryBooks struct{ t *table[entity.Book] }

func (s *MemoryBooks) Insert(ctx context.Context, b *entity.Book) (int64, error) {
	id := s.t.insert(func(id int64) entity.Book {
		row := *b
		row.ID = id
		return row
	})
	b.ID = id
	return id, nil
}

func (s *MemoryBooks) GetByID(ctx context.Context, id int64) (entity.Book, error) {
	row, ok := s.t.get(id)
	if !ok {
		return entity.Book{}, catalog.ErrNotFound
	}
	return row, nil
}

func (s *MemoryBooks) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return s.t.exists(id), nil
}

func (s *MemoryBooks) Update(ctx context.Context, id int64, b entity.Book) error {
	b.ID = id
	if !s.t.update(id, b) {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *MemoryBooks) Delete(ctx context.Context, id int64) error {
	if !s.t.delete(id) {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *MemoryBooks) ListAll(ctx context.Context) ([]entity.Book, error) {
	return s.t.list(), nil
}

type MemoryBorrowers struct{ t *table[entity.Borrower] }

func (s *MemoryBorrowers) Insert(ctx context.Context, b *entity.Borrower) (int64, error) {
	id := s.t.insert(func(id int64) entity.Borrower {
		row := *b
		row.ID = id
		return row
	})
	b.ID = id
	return id, nil
}

func (s *MemoryBorrowers) GetByID(ctx context.Context, id int64) (entity.Borrower, error) {
	row, ok := s.t.get(id)
	if !ok {
		return entity.Borrower{}, catalog.ErrNotFound
	}
	return row, nil
}

func (s *MemoryBorrowers) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return s.t.exists(id), nil
}

func (s *MemoryBorrowers) Update(ctx context.Context, id int64, b entity.Borrower) error {
	b.ID = id
	if !s.t.update(id, b) {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *MemoryBorrowers) Delete(ctx context.Context, id int64) error {
	if !s.t.delete(id) {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *MemoryBorrowers) ListAll(ctx context.Context) ([]entity.Borrower, error) {
	return s.t.list(), nil
}

type MemoryLoans struct{ t *table[entity.Loan] }

func (s *MemoryLoans) Insert(ctx context.Context, l *entity.Loan) (int64, error) {
	id := s.t.insert(func(id int64) entity.Loan {
		row := *l
		row.ID = id
		return row
	})
	l.ID = id
	return id, nil
}

func (s *MemoryLoans) GetByID(ctx context.Context, id int64) (entity.Loan, error) {
	row, ok := s.t.get(id)
	if !ok {
		return entity.Loan{}, catalog.ErrNotFound
	}
	return row, nil
}

func (s *MemoryLoans) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return s.t.exists(id), nil
}

func (s *MemoryLoans) Update(ctx context.Context, id int64, l entity.Loan) error {
	l.ID = id
	if !s.t.update(id, l) {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *MemoryLoans) Delete(ctx context.Context, id int64) error {
	if !s.t.delete(id) {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *MemoryLoans) ListAll(ctx context.Context) ([]entity.Loan, error) {
	return s.t.list(), nil
}
