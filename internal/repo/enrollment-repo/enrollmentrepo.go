package enrollmentrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/samlms/lms/internal/domain"
	"github.com/samlms/lms/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// CreateOrGet вставляет запись о зачислении; при конфликте по паре
// (user_id, course_id) возвращает существующую строку вместо ошибки.
// Это граница идемпотентности: сколько бы раз ни пришёл сигнал об
// оплате, строка зачисления будет ровно одна.
func (r *Repository) CreateOrGet(ctx context.Context, userID, courseID int) (*domain.Enrollment, bool, error) {
	query := `
        INSERT INTO enrollments (user_id, course_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, course_id) DO NOTHING
        RETURNING id, user_id, course_id, progress_percentage, enrolled_at, updated_at
    `
	row := r.db.QueryRow(ctx, query, userID, courseID)

	var enrollment domain.Enrollment
	err := row.Scan(&enrollment.ID, &enrollment.UserID, &enrollment.CourseID,
		&enrollment.ProgressPercentage, &enrollment.EnrolledAt, &enrollment.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		existing, ferr := r.Find(ctx, userID, courseID)
		if ferr != nil {
			return nil, false, ferr
		}
		if existing == nil {
			return nil, false, pgx.ErrNoRows
		}
		return existing, false, nil
	}
	if err != nil {
		zap.L().Error("can't create enrollment", zap.Error(err))
		return nil, false, err
	}
	return &enrollment, true, nil
}

func (r *Repository) Find(ctx context.Context, userID, courseID int) (*domain.Enrollment, error) {
	query := `
        SELECT id, user_id, course_id, progress_percentage, enrolled_at, updated_at
        FROM enrollments
        WHERE user_id = $1 AND course_id = $2
    `
	row := r.db.QueryRow(ctx, query, userID, courseID)

	var enrollment domain.Enrollment
	err := row.Scan(&enrollment.ID, &enrollment.UserID, &enrollment.CourseID,
		&enrollment.ProgressPercentage, &enrollment.EnrolledAt, &enrollment.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find enrollment", zap.Error(err))
		return nil, err
	}
	return &enrollment, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Enrollment, error) {
	query := `
        SELECT id, user_id, course_id, progress_percentage, enrolled_at, updated_at
        FROM enrollments
        WHERE user_id = $1
        ORDER BY enrolled_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get enrollments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var enrollments []domain.Enrollment
	for rows.Next() {
		var enrollment domain.Enrollment
		err := rows.Scan(&enrollment.ID, &enrollment.UserID, &enrollment.CourseID,
			&enrollment.ProgressPercentage, &enrollment.EnrolledAt, &enrollment.UpdatedAt)
		if err != nil {
			zap.L().Error("can't scan enrollment row", zap.Error(err))
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, nil
}

// UpdateProgress перезаписывает производный процент прохождения;
// побеждает последняя запись.
func (r *Repository) UpdateProgress(ctx context.Context, userID, courseID int, percentage float64) error {
	query := `
        UPDATE enrollments
        SET progress_percentage = $3, updated_at = now()
        WHERE user_id = $1 AND course_id = $2
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, userID, courseID, percentage)
		if err != nil {
			zap.L().Error("can't update enrollment progress", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}
