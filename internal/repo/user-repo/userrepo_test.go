package userrepo

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"

	"github.com/samlms/lms/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

var userColumns = []string{"id", "email", "name", "password_hash", "phone"}

func TestRepository_FindByEmail(t *testing.T) {
	repo, mock := NewMock(t)

	t.Run("User exists", func(t *testing.T) {
		rows := pgxmock.NewRows(userColumns).
			AddRow(1, "user@example.com", "Ada", "hashedPassword", "+2348012345678")
		mock.ExpectQuery("SELECT id, email, name, password_hash, phone FROM users WHERE email").
			WithArgs("user@example.com").
			WillReturnRows(rows)

		user, err := repo.FindByEmail(context.Background(), "user@example.com")
		assert.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.Equal(t, "Ada", user.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("User does not exist", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, name, password_hash, phone FROM users WHERE email").
			WithArgs("missing@example.com").
			WillReturnError(pgx.ErrNoRows)

		user, err := repo.FindByEmail(context.Background(), "missing@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)

	t.Run("User exists", func(t *testing.T) {
		rows := pgxmock.NewRows(userColumns).
			AddRow(1, "user@example.com", "Ada", "hashedPassword", "+2348012345678")
		mock.ExpectQuery("SELECT id, email, name, password_hash, phone FROM users WHERE id").
			WithArgs(1).
			WillReturnRows(rows)

		user, err := repo.FindByID(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, "user@example.com", user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("User does not exist", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, name, password_hash, phone FROM users WHERE id").
			WithArgs(99).
			WillReturnError(pgx.ErrNoRows)

		user, err := repo.FindByID(context.Background(), 99)
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	t.Run("User created", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("new@example.com", "Ada", "hashedPassword", "+2348012345678").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))

		user, err := repo.Create(context.Background(), &domain.User{
			Email:        "new@example.com",
			Name:         "Ada",
			PasswordHash: "hashedPassword",
			Phone:        "+2348012345678",
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("new@example.com", "Ada", "hashedPassword", "+2348012345678").
			WillReturnError(errors.New("database error"))

		_, err := repo.Create(context.Background(), &domain.User{
			Email:        "new@example.com",
			Name:         "Ada",
			PasswordHash: "hashedPassword",
			Phone:        "+2348012345678",
		})
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
