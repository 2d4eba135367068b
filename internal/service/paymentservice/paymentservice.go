package paymentservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/samlms/lms/internal/config"
	"github.com/samlms/lms/internal/domain"
	"github.com/samlms/lms/internal/gateway/paystack"
)

//go:generate mockgen -source=paymentservice.go -destination=paymentservice_mock.go -package=paymentservice

type Repo interface {
	Save(ctx context.Context, payment *domain.Payment) error
	FindByReference(ctx context.Context, reference string) (*domain.Payment, error)
	FindActiveByUserAndCourse(ctx context.Context, userID, courseID int) (*domain.Payment, error)
	Settle(ctx context.Context, reference, status string) (*domain.Payment, bool, error)
	FindPendingOlderThan(ctx context.Context, age time.Duration, limit uint32) ([]domain.Payment, error)
}

type CourseRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Course, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type Enrollments interface {
	Find(ctx context.Context, userID, courseID int) (*domain.Enrollment, error)
	CreateOrGet(ctx context.Context, userID, courseID int) (*domain.Enrollment, bool, error)
}

type Gateway interface {
	Initialize(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeResponse, error)
	Verify(ctx context.Context, reference string) (*paystack.VerifyResponse, error)
	VerifySignature(payload []byte, signature string) bool
}

type Notifier interface {
	EnrollmentCompleted(userID, courseID int)
}

var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrAlreadyEnrolled      = errors.New("already enrolled in this course")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentNotCompleted  = errors.New("payment not completed")
	ErrVerificationMismatch = errors.New("payment verification mismatch")
	ErrInvalidSignature     = errors.New("invalid webhook signature")
)

type Service struct {
	repo        Repo
	courseRepo  CourseRepo
	userRepo    UserRepo
	enrollments Enrollments
	gateway     Gateway
	notifier    Notifier
	callbackURL string
}

func New(cfg *config.Config, repo Repo, courseRepo CourseRepo, userRepo UserRepo, enrollments Enrollments, gateway Gateway, notifier Notifier) *Service {
	return &Service{
		repo:        repo,
		courseRepo:  courseRepo,
		userRepo:    userRepo,
		enrollments: enrollments,
		gateway:     gateway,
		notifier:    notifier,
		callbackURL: cfg.CallbackURL,
	}
}

type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type VerifyResult struct {
	Payment    *domain.Payment
	Enrollment *domain.Enrollment
}

// Initialize создаёт pending-платёж и регистрирует транзакцию у шлюза.
// Строка платежа остаётся даже при отказе шлюза: для аудита и чтобы
// фоновая сверка могла закрыть её как failed.
func (s *Service) Initialize(ctx context.Context, userID, courseID int) (*InitializeResult, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil || !course.IsPublished {
		return nil, ErrCourseNotFound
	}

	enrollment, err := s.enrollments.Find(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment != nil {
		zap.L().Info("user already enrolled", zap.Int("userID", userID), zap.Int("courseID", courseID))
		return nil, ErrAlreadyEnrolled
	}

	active, err := s.repo.FindActiveByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		zap.L().Info("active payment already exists",
			zap.Int("userID", userID), zap.Int("courseID", courseID), zap.String("reference", active.Reference))
		return nil, ErrAlreadyEnrolled
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d not found", userID)
	}

	reference := newReference(userID, courseID)
	payment := &domain.Payment{
		UserID:    userID,
		CourseID:  courseID,
		Reference: reference,
		Amount:    course.Price,
		Currency:  course.Currency,
		Status:    domain.PendingPaymentStatus,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, payment); err != nil {
		zap.L().Error("can't save payment: ", zap.Error(err))
		return nil, err
	}

	resp, err := s.gateway.Initialize(ctx, paystack.InitializeRequest{
		Email:       user.Email,
		Amount:      toMinorUnits(course.Price),
		Currency:    course.Currency,
		Reference:   reference,
		CallbackURL: s.callbackURL,
		Metadata: paystack.Metadata{
			UserID:      userID,
			CourseID:    courseID,
			CourseTitle: course.Title,
		},
	})
	if err != nil {
		zap.L().Error("gateway initialize failed, pending payment kept",
			zap.String("reference", reference), zap.Error(err))
		return nil, ErrGatewayUnavailable
	}

	return &InitializeResult{
		AuthorizationURL: resp.AuthorizationURL,
		AccessCode:       resp.AccessCode,
		Reference:        reference,
	}, nil
}

// Verify подтверждает оплату у шлюза и доводит платёж до зачисления.
// Повторный вызов для уже completed-платежа возвращает текущее
// состояние без ошибки.
func (s *Service) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	payment, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	if payment.Status == domain.CompletedPaymentStatus {
		enrollment, created, err := s.enrollments.CreateOrGet(ctx, payment.UserID, payment.CourseID)
		if err != nil {
			return nil, err
		}
		if created {
			s.notifier.EnrollmentCompleted(payment.UserID, payment.CourseID)
		}
		return &VerifyResult{Payment: payment, Enrollment: enrollment}, nil
	}
	if payment.Status == domain.FailedPaymentStatus {
		return nil, ErrPaymentNotCompleted
	}

	resp, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		if errors.Is(err, paystack.ErrDeclined) {
			// Шлюз ссылку не знает, ждать по ней нечего.
			if _, _, serr := s.repo.Settle(ctx, reference, domain.FailedPaymentStatus); serr != nil {
				return nil, serr
			}
			zap.L().Info("gateway does not recognize payment, settled as failed", zap.String("reference", reference))
			return nil, ErrPaymentNotCompleted
		}
		zap.L().Error("can't verify payment with gateway", zap.String("reference", reference), zap.Error(err))
		return nil, ErrGatewayUnavailable
	}

	if resp.Status != paystack.SuccessStatus {
		if _, _, err := s.repo.Settle(ctx, reference, domain.FailedPaymentStatus); err != nil {
			return nil, err
		}
		zap.L().Info("payment not successful", zap.String("reference", reference), zap.String("status", resp.Status))
		return nil, ErrPaymentNotCompleted
	}

	if mismatch := s.crossCheck(payment, resp.Amount, resp.Currency, resp.Metadata); mismatch != "" {
		if _, _, err := s.repo.Settle(ctx, reference, domain.FailedPaymentStatus); err != nil {
			return nil, err
		}
		zap.L().Warn("gateway report disagrees with stored payment",
			zap.String("reference", reference), zap.String("mismatch", mismatch))
		return nil, ErrVerificationMismatch
	}

	return s.settleAndEnroll(ctx, reference)
}

// HandleWebhook обрабатывает событие шлюза. Подпись — единственная
// граница доверия: без валидной подписи состояние не меняется.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if !s.gateway.VerifySignature(payload, signature) {
		zap.L().Warn("webhook with invalid signature rejected", zap.Int("payloadSize", len(payload)))
		return ErrInvalidSignature
	}

	var event paystack.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("can't parse webhook payload: %w", err)
	}

	switch event.Event {
	case paystack.ChargeSuccessEvent:
		return s.handleChargeSuccess(ctx, event.Data)
	case paystack.ChargeFailedEvent:
		return s.handleChargeFailed(ctx, event.Data)
	default:
		zap.L().Info("unhandled webhook event", zap.String("event", event.Event))
		return nil
	}
}

func (s *Service) handleChargeSuccess(ctx context.Context, data paystack.EventData) error {
	payment, err := s.repo.FindByReference(ctx, data.Reference)
	if err != nil {
		return err
	}
	if payment == nil {
		zap.L().Warn("webhook for unknown reference", zap.String("reference", data.Reference))
		return nil
	}
	if payment.IsTerminal() {
		return nil
	}

	if mismatch := s.crossCheck(payment, data.Amount, data.Currency, data.Metadata); mismatch != "" {
		if _, _, err := s.repo.Settle(ctx, data.Reference, domain.FailedPaymentStatus); err != nil {
			return err
		}
		zap.L().Warn("webhook report disagrees with stored payment",
			zap.String("reference", data.Reference), zap.String("mismatch", mismatch))
		return nil
	}

	_, err = s.settleAndEnroll(ctx, data.Reference)
	return err
}

func (s *Service) handleChargeFailed(ctx context.Context, data paystack.EventData) error {
	_, settled, err := s.repo.Settle(ctx, data.Reference, domain.FailedPaymentStatus)
	if err != nil {
		zap.L().Warn("can't settle failed charge", zap.String("reference", data.Reference), zap.Error(err))
		return nil
	}
	if settled {
		zap.L().Info("payment settled as failed", zap.String("reference", data.Reference))
	}
	return nil
}

// Reconcile доводит зависший платёж до конечного состояния; терминальные
// бизнес-исходы для фоновой сверки ошибкой не являются.
func (s *Service) Reconcile(ctx context.Context, reference string) error {
	_, err := s.Verify(ctx, reference)
	if errors.Is(err, ErrPaymentNotCompleted) || errors.Is(err, ErrVerificationMismatch) {
		return nil
	}
	return err
}

// PendingPayments отдаёт платежи, ожидающие фоновой сверки.
func (s *Service) PendingPayments(ctx context.Context, age time.Duration, limit uint32) ([]domain.Payment, error) {
	return s.repo.FindPendingOlderThan(ctx, age, limit)
}

// settleAndEnroll атомарно завершает платёж и гарантирует ровно одно
// зачисление. Проигравший гонку перепроверяет итоговый статус: если
// другой путь успел закрыть платёж как failed, зачисления не будет.
func (s *Service) settleAndEnroll(ctx context.Context, reference string) (*VerifyResult, error) {
	payment, settled, err := s.repo.Settle(ctx, reference, domain.CompletedPaymentStatus)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.CompletedPaymentStatus {
		zap.L().Info("payment already settled with different outcome",
			zap.String("reference", reference), zap.String("status", payment.Status))
		return nil, ErrPaymentNotCompleted
	}

	enrollment, created, err := s.enrollments.CreateOrGet(ctx, payment.UserID, payment.CourseID)
	if err != nil {
		return nil, err
	}
	if created {
		s.notifier.EnrollmentCompleted(payment.UserID, payment.CourseID)
	}
	if settled {
		zap.L().Info("payment completed and enrollment reconciled",
			zap.String("reference", reference), zap.Int("userID", payment.UserID), zap.Int("courseID", payment.CourseID))
	}
	return &VerifyResult{Payment: payment, Enrollment: enrollment}, nil
}

func (s *Service) crossCheck(payment *domain.Payment, amount int64, currency string, meta paystack.Metadata) string {
	if amount != toMinorUnits(payment.Amount) {
		return fmt.Sprintf("amount: expected %d, got %d", toMinorUnits(payment.Amount), amount)
	}
	if currency != payment.Currency {
		return fmt.Sprintf("currency: expected %s, got %s", payment.Currency, currency)
	}
	if meta.UserID != 0 && meta.UserID != payment.UserID {
		return fmt.Sprintf("user: expected %d, got %d", payment.UserID, meta.UserID)
	}
	if meta.CourseID != 0 && meta.CourseID != payment.CourseID {
		return fmt.Sprintf("course: expected %d, got %d", payment.CourseID, meta.CourseID)
	}
	return ""
}

// toMinorUnits единственное место конвертации суммы в минимальные
// единицы валюты, ожидаемые шлюзом.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// newReference собирает reference из времени, пользователя и курса,
// суффикс защищает от коллизий повторных попыток в одну секунду.
func newReference(userID, courseID int) string {
	return fmt.Sprintf("LMS-%d-%d-%d-%s", time.Now().Unix(), userID, courseID, uuid.NewString()[:8])
}
