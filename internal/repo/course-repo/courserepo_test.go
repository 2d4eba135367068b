package courserepo

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)

	t.Run("Course exists", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "title", "price", "currency", "is_published"}).
			AddRow(10, "Go Basics", 150.50, "NGN", true)
		mock.ExpectQuery("SELECT id, title, price, currency, is_published").
			WithArgs(10).
			WillReturnRows(rows)

		course, err := repo.FindByID(context.Background(), 10)
		assert.NoError(t, err)
		assert.Equal(t, "Go Basics", course.Title)
		assert.True(t, course.IsPublished)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Course does not exist", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, title, price, currency, is_published").
			WithArgs(99).
			WillReturnError(pgx.ErrNoRows)

		course, err := repo.FindByID(context.Background(), 99)
		assert.NoError(t, err)
		assert.Nil(t, course)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, title, price, currency, is_published").
			WithArgs(10).
			WillReturnError(errors.New("database error"))

		_, err := repo.FindByID(context.Background(), 10)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
