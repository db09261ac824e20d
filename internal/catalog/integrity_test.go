package catalog_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/catalog"
	"libraryapi/internal/store/mocks"
)

func TestGate_ValidateBookCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authors := mocks.NewMockAuthorStore(ctrl)
	books := mocks.NewMockBookStore(ctrl)
	borrowers := mocks.NewMockBorrowerStore(ctrl)
	gate := catalog.NewGate(authors, books, borrowers)
	ctx := context.Background()

	t.Run("author exists", func(t *testing.T) {
		authors.EXPECT().ExistsByID(ctx, int64(1)).Return(true, nil)
		assert.NoError(t, gate.ValidateBookCreate(ctx, 1))
	})

	t.Run("author missing", func(t *testing.T) {
		authors.EXPECT().ExistsByID(ctx, int64(999)).Return(false, nil)
		err := gate.ValidateBookCreate(ctx, 999)
		var rerr *catalog.ReferenceNotFoundError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "Author", rerr.Entity)
		assert.Equal(t, int64(999), rerr.ID)
	})
}

func TestGate_ValidateLoanCreate_Order(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authors := mocks.NewMockAuthorStore(ctrl)
	books := mocks.NewMockBookStore(ctrl)
	borrowers := mocks.NewMockBorrowerStore(ctrl)
	gate := catalog.NewGate(authors, books, borrowers)
	ctx := context.Background()

	t.Run("missing book short-circuits - borrower never consulted", func(t *testing.T) {
		books.EXPECT().ExistsByID(ctx, int64(7)).Return(false, nil)
		// No EXPECT on borrowers: a borrower lookup would fail the test.
		err := gate.ValidateLoanCreate(ctx, 7, 8)
		var rerr *catalog.ReferenceNotFoundError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "Book", rerr.Entity)
	})

	t.Run("book exists, borrower missing", func(t *testing.T) {
		books.EXPECT().ExistsByID(ctx, int64(7)).Return(true, nil)
		borrowers.EXPECT().ExistsByID(ctx, int64(8)).Return(false, nil)
		err := gate.ValidateLoanCreate(ctx, 7, 8)
		var rerr *catalog.ReferenceNotFoundError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "Borrower", rerr.Entity)
		assert.Equal(t, int64(8), rerr.ID)
	})

	t.Run("both exist", func(t *testing.T) {
		books.EXPECT().ExistsByID(ctx, int64(7)).Return(true, nil)
		borrowers.EXPECT().ExistsByID(ctx, int64(8)).Return(true, nil)
		assert.NoError(t, gate.ValidateLoanCreate(ctx, 7, 8))
	})
}

func TestGate_ExistenceReadThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authors := mocks.NewMockAuthorStore(ctrl)
	books := mocks.NewMockBookStore(ctrl)
	borrowers := mocks.NewMockBorrowerStore(ctrl)
	gate := catalog.NewGate(authors, books, borrowers)
	ctx := context.Background()

	authors.EXPECT().ExistsByID(ctx, int64(1)).Return(true, nil)
	books.EXPECT().ExistsByID(ctx, int64(2)).Return(false, nil)
	borrowers.EXPECT().ExistsByID(ctx, int64(3)).Return(true, nil)

	ok, err := gate.AuthorExists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.BookExists(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = gate.BorrowerExists(ctx, 3)
	require.NoError(t, err)
	assert.True(t, ok)
}
