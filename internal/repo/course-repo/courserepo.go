package courserepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/samlms/lms/internal/domain"
	"github.com/samlms/lms/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Course, error) {
	query := `
        SELECT id, title, price, currency, is_published
        FROM courses
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)

	var course domain.Course
	err := row.Scan(&course.ID, &course.Title, &course.Price, &course.Currency, &course.IsPublished)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find course", zap.Error(err))
		return nil, err
	}
	return &course, nil
}
