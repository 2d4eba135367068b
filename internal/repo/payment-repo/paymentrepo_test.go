package paymentrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/samlms/lms/internal/domain"
	"github.com/samlms/lms/internal/pg"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

var paymentColumns = []string{"id", "user_id", "course_id", "reference", "amount", "currency", "status", "paid_at", "created_at"}

func TestRepository_Save(t *testing.T) {
	repo, mock, tx := NewMock(t)

	payment := &domain.Payment{
		UserID:    1,
		CourseID:  10,
		Reference: "LMS-ref",
		Amount:    150.50,
		Currency:  "NGN",
		Status:    domain.PendingPaymentStatus,
		CreatedAt: time.Now(),
	}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Payment saved",
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn func(ctx context.Context) error) error {
					mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments (user_id, course_id, reference, amount, currency, status, created_at)")).
						WithArgs(1, 10, "LMS-ref", 150.50, "NGN", domain.PendingPaymentStatus, payment.CreatedAt).
						WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(5))
					return fn(ctx)
				})
			},
			expectErr: false,
		},
		{
			name: "Insert fails",
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn func(ctx context.Context) error) error {
					mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments (user_id, course_id, reference, amount, currency, status, created_at)")).
						WithArgs(1, 10, "LMS-ref", 150.50, "NGN", domain.PendingPaymentStatus, payment.CreatedAt).
						WillReturnError(errors.New("database error"))
					return fn(ctx)
				})
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			err := repo.Save(context.Background(), payment)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 5, payment.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByReference(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		reference string
		mockSetup func()
		expectErr bool
		result    *domain.Payment
	}{
		{
			name:      "Payment exists",
			reference: "LMS-ref",
			mockSetup: func() {
				rows := pgxmock.NewRows(paymentColumns).
					AddRow(1, 1, 10, "LMS-ref", 150.50, "NGN", "pending", nil, now)
				mock.ExpectQuery("SELECT id, user_id, course_id, reference, amount, currency, status, paid_at, created_at").
					WithArgs("LMS-ref").
					WillReturnRows(rows)
			},
			result: &domain.Payment{ID: 1, UserID: 1, CourseID: 10, Reference: "LMS-ref", Amount: 150.50, Currency: "NGN", Status: "pending", CreatedAt: now},
		},
		{
			name:      "Payment does not exist",
			reference: "LMS-unknown",
			mockSetup: func() {
				mock.ExpectQuery("SELECT id, user_id, course_id, reference, amount, currency, status, paid_at, created_at").
					WithArgs("LMS-unknown").
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name:      "Database error",
			reference: "LMS-ref",
			mockSetup: func() {
				mock.ExpectQuery("SELECT id, user_id, course_id, reference, amount, currency, status, paid_at, created_at").
					WithArgs("LMS-ref").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			payment, err := repo.FindByReference(context.Background(), tt.reference)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, payment)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindActiveByUserAndCourse(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()

	t.Run("Pending payment blocks", func(t *testing.T) {
		rows := pgxmock.NewRows(paymentColumns).
			AddRow(1, 1, 10, "LMS-ref", 150.50, "NGN", "pending", nil, now)
		mock.ExpectQuery("SELECT id, user_id, course_id, reference, amount, currency, status, paid_at, created_at").
			WithArgs(1, 10).
			WillReturnRows(rows)

		payment, err := repo.FindActiveByUserAndCourse(context.Background(), 1, 10)
		assert.NoError(t, err)
		assert.Equal(t, "pending", payment.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Only failed payments means no active one", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, course_id, reference, amount, currency, status, paid_at, created_at").
			WithArgs(1, 10).
			WillReturnError(pgx.ErrNoRows)

		payment, err := repo.FindActiveByUserAndCourse(context.Background(), 1, 10)
		assert.NoError(t, err)
		assert.Nil(t, payment)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Settle(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()

	t.Run("First settle wins", func(t *testing.T) {
		rows := pgxmock.NewRows(paymentColumns).
			AddRow(1, 1, 10, "LMS-ref", 150.50, "NGN", "completed", &now, now)
		mock.ExpectQuery("UPDATE payments").
			WithArgs("LMS-ref", "completed").
			WillReturnRows(rows)

		payment, settled, err := repo.Settle(context.Background(), "LMS-ref", "completed")
		assert.NoError(t, err)
		assert.True(t, settled)
		assert.Equal(t, "completed", payment.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Second settle returns recorded outcome", func(t *testing.T) {
		mock.ExpectQuery("UPDATE payments").
			WithArgs("LMS-ref", "failed").
			WillReturnError(pgx.ErrNoRows)
		rows := pgxmock.NewRows(paymentColumns).
			AddRow(1, 1, 10, "LMS-ref", 150.50, "NGN", "completed", &now, now)
		mock.ExpectQuery("SELECT id, user_id, course_id, reference, amount, currency, status, paid_at, created_at").
			WithArgs("LMS-ref").
			WillReturnRows(rows)

		payment, settled, err := repo.Settle(context.Background(), "LMS-ref", "failed")
		assert.NoError(t, err)
		assert.False(t, settled)
		assert.Equal(t, "completed", payment.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown reference", func(t *testing.T) {
		mock.ExpectQuery("UPDATE payments").
			WithArgs("LMS-unknown", "failed").
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectQuery("SELECT id, user_id, course_id, reference, amount, currency, status, paid_at, created_at").
			WithArgs("LMS-unknown").
			WillReturnError(pgx.ErrNoRows)

		_, settled, err := repo.Settle(context.Background(), "LMS-unknown", "failed")
		assert.Error(t, err)
		assert.False(t, settled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FindPendingOlderThan(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()

	t.Run("Returns stale pending payments", func(t *testing.T) {
		rows := pgxmock.NewRows(paymentColumns).
			AddRow(1, 1, 10, "LMS-a", 150.50, "NGN", "pending", nil, now.Add(-time.Hour)).
			AddRow(2, 2, 10, "LMS-b", 150.50, "NGN", "pending", nil, now.Add(-2*time.Hour))
		mock.ExpectQuery("SELECT id, user_id, course_id, reference, amount, currency, status, paid_at, created_at").
			WithArgs("30m0s", 100).
			WillReturnRows(rows)

		payments, err := repo.FindPendingOlderThan(context.Background(), 30*time.Minute, 100)
		assert.NoError(t, err)
		assert.Len(t, payments, 2)
		assert.Equal(t, "LMS-a", payments[0].Reference)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, course_id, reference, amount, currency, status, paid_at, created_at").
			WithArgs("30m0s", 100).
			WillReturnError(errors.New("database error"))

		_, err := repo.FindPendingOlderThan(context.Background(), 30*time.Minute, 100)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
