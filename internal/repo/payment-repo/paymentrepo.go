package paymentrepo

import (
	"context"
	"errors"
	"time"

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

func (r *Repository) Save(ctx context.Context, payment *domain.Payment) error {
	query := `
        INSERT INTO payments (user_id, course_id, reference, amount, currency, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query,
			payment.UserID, payment.CourseID, payment.Reference,
			payment.Amount, payment.Currency, payment.Status, payment.CreatedAt)
		if err := row.Scan(&payment.ID); err != nil {
			zap.L().Error("can't save payment", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) FindByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	query := `
        SELECT id, user_id, course_id, reference, amount, currency, status, paid_at, created_at
        FROM payments
        WHERE reference = $1
    `
	row := r.db.QueryRow(ctx, query, reference)

	var payment domain.Payment
	err := row.Scan(&payment.ID, &payment.UserID, &payment.CourseID, &payment.Reference,
		&payment.Amount, &payment.Currency, &payment.Status, &payment.PaidAt, &payment.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find payment", zap.Error(err))
		return nil, err
	}
	return &payment, nil
}

// FindActiveByUserAndCourse возвращает незавершённый или оплаченный платёж
// пользователя за курс; failed-платежи не блокируют новую попытку.
func (r *Repository) FindActiveByUserAndCourse(ctx context.Context, userID, courseID int) (*domain.Payment, error) {
	query := `
        SELECT id, user_id, course_id, reference, amount, currency, status, paid_at, created_at
        FROM payments
        WHERE user_id = $1 AND course_id = $2 AND status IN ('pending', 'completed')
        ORDER BY created_at DESC
        LIMIT 1
    `
	row := r.db.QueryRow(ctx, query, userID, courseID)

	var payment domain.Payment
	err := row.Scan(&payment.ID, &payment.UserID, &payment.CourseID, &payment.Reference,
		&payment.Amount, &payment.Currency, &payment.Status, &payment.PaidAt, &payment.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find active payment", zap.Error(err))
		return nil, err
	}
	return &payment, nil
}

// Settle переводит платёж в конечный статус одним условным UPDATE:
// переход возможен только из pending, поэтому из двух конкурирующих
// вызовов выигрывает ровно один. Проигравший получает уже записанный
// конечный статус и settled=false.
func (r *Repository) Settle(ctx context.Context, reference, status string) (*domain.Payment, bool, error) {
	query := `
        UPDATE payments
        SET status = $2,
            paid_at = CASE WHEN $2 = 'completed' THEN now() ELSE paid_at END
        WHERE reference = $1 AND status = 'pending'
        RETURNING id, user_id, course_id, reference, amount, currency, status, paid_at, created_at
    `
	row := r.db.QueryRow(ctx, query, reference, status)

	var payment domain.Payment
	err := row.Scan(&payment.ID, &payment.UserID, &payment.CourseID, &payment.Reference,
		&payment.Amount, &payment.Currency, &payment.Status, &payment.PaidAt, &payment.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		existing, ferr := r.FindByReference(ctx, reference)
		if ferr != nil {
			return nil, false, ferr
		}
		if existing == nil {
			return nil, false, pgx.ErrNoRows
		}
		return existing, false, nil
	}
	if err != nil {
		zap.L().Error("can't settle payment", zap.Error(err))
		return nil, false, err
	}
	return &payment, true, nil
}

// FindPendingOlderThan отдаёт зависшие pending-платежи для фоновой сверки.
func (r *Repository) FindPendingOlderThan(ctx context.Context, age time.Duration, limit uint32) ([]domain.Payment, error) {
	query := `
        SELECT id, user_id, course_id, reference, amount, currency, status, paid_at, created_at
        FROM payments
        WHERE status = 'pending' AND created_at < now() - $1::interval
        ORDER BY created_at ASC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, age.String(), int(limit))
	if err != nil {
		zap.L().Error("can't get payments for reconciliation", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		err := rows.Scan(&payment.ID, &payment.UserID, &payment.CourseID, &payment.Reference,
			&payment.Amount, &payment.Currency, &payment.Status, &payment.PaidAt, &payment.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan payment row", zap.Error(err))
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, nil
}
