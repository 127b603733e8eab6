package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/model"
)

func TestPurchaseRepoBuy(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPurchaseRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT price_cents FROM listings WHERE id=").
		WithArgs("lst-1").
		WillReturnRows(sqlmock.NewRows([]string{"price_cents"}).AddRow(2800))
	mock.ExpectExec("UPDATE listings SET credits = credits -").
		WithArgs(uint64(100), "lst-1", uint64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO purchases").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p, err := repo.Buy(context.Background(), 7, "lst-1", 100)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, uint64(7), p.BuyerID)
	assert.Equal(t, uint64(100), p.Credits)
	assert.Equal(t, uint64(280000), p.AmountCents)
	assert.Equal(t, model.PurchaseCompleted, p.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRepoBuyInsufficientCredits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPurchaseRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT price_cents FROM listings WHERE id=").
		WithArgs("lst-1").
		WillReturnRows(sqlmock.NewRows([]string{"price_cents"}).AddRow(2800))
	// Guarded UPDATE matches no row when credits < requested.
	mock.ExpectExec("UPDATE listings SET credits = credits -").
		WithArgs(uint64(9999), "lst-1", uint64(9999)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.Buy(context.Background(), 7, "lst-1", 9999)
	assert.ErrorIs(t, err, ErrInsufficientCredits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRepoBuyListingMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPurchaseRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT price_cents FROM listings WHERE id=").
		WithArgs("no-such").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Buy(context.Background(), 7, "no-such", 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPurchaseRepoBuyerSummary(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPurchaseRepo(db)

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(uint64(7), model.PurchaseCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"credits", "amount"}).AddRow(150, 420000))

	credits, amount, err := repo.BuyerSummary(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), credits)
	assert.Equal(t, uint64(420000), amount)
}
