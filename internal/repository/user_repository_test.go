package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShrinivasInamdar/Carbon-Bazar/internal/model"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var userColumns = []string{"id", "name", "email", "password_hash", "phone", "location", "organization", "role", "created_at", "updated_at"}

func TestUserRepoCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("Jane", "jane@x.com", "$2a$hash", uint64(5551234), "NY", "N/A", "Buyer").
		WillReturnResult(sqlmock.NewResult(42, 1))

	u, err := repo.Create(context.Background(), model.User{
		Name:         "Jane",
		Email:        " JANE@x.com ", // normalized before the insert
		PasswordHash: "$2a$hash",
		Phone:        5551234,
		Location:     "NY",
		Organization: "N/A",
		Role:         "Buyer",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(42), u.ID)
	assert.Equal(t, "jane@x.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoCreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'jane@x.com' for key 'users.email'"))

	_, err := repo.Create(context.Background(), model.User{Email: "jane@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateUser)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoCreateOtherError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Create(context.Background(), model.User{Email: "jane@x.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateUser)
}

func TestUserRepoFindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WithArgs("jane@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(42, "Jane", "jane@x.com", "$2a$hash", 5551234, "NY", "N/A", "Buyer", now, now))

	u, err := repo.FindByEmail(context.Background(), "Jane@X.com")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), u.ID)
	assert.Equal(t, "$2a$hash", u.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoFindByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepoFindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(42, "Jane", "jane@x.com", "$2a$hash", 5551234, "NY", "N/A", "Buyer", now, now))

	u, err := repo.FindByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Jane", u.Name)
}
