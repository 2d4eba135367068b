package enrollmentservice

import (
	"context"
	"errors"

	"github.com/samlms/lms/internal/domain"
	"go.uber.org/zap"
)

//go:generate mockgen -source=enrollmentservice.go -destination=enrollmentservice_mock.go -package=enrollmentservice

type Repo interface {
	CreateOrGet(ctx context.Context, userID, courseID int) (*domain.Enrollment, bool, error)
	Find(ctx context.Context, userID, courseID int) (*domain.Enrollment, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Enrollment, error)
	UpdateProgress(ctx context.Context, userID, courseID int, percentage float64) error
}

type CourseRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Course, error)
}

var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrPaymentRequired = errors.New("course requires payment")
)

type Service struct {
	repo       Repo
	courseRepo CourseRepo
}

func New(repo Repo, courseRepo CourseRepo) *Service {
	return &Service{
		repo:       repo,
		courseRepo: courseRepo,
	}
}

// Enroll прямое зачисление без оплаты, доступно только для бесплатных
// курсов. Повторное зачисление — тихий no-op.
func (s *Service) Enroll(ctx context.Context, userID, courseID int) (*domain.Enrollment, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil || !course.IsPublished {
		return nil, ErrCourseNotFound
	}
	if course.Price > 0 {
		return nil, ErrPaymentRequired
	}

	enrollment, created, err := s.repo.CreateOrGet(ctx, userID, courseID)
	if err != nil {
		zap.L().Error("can't enroll user", zap.Error(err))
		return nil, err
	}
	if created {
		zap.L().Info("user enrolled", zap.Int("userID", userID), zap.Int("courseID", courseID))
	}
	return enrollment, nil
}

// CreateOrGet граница идемпотентности зачисления; сколько бы раз ни
// наблюдался завершённый платёж, строка будет одна.
func (s *Service) CreateOrGet(ctx context.Context, userID, courseID int) (*domain.Enrollment, bool, error) {
	enrollment, created, err := s.repo.CreateOrGet(ctx, userID, courseID)
	if err != nil {
		zap.L().Error("can't create or get enrollment", zap.Error(err))
		return nil, false, err
	}
	return enrollment, created, nil
}

func (s *Service) Find(ctx context.Context, userID, courseID int) (*domain.Enrollment, error) {
	return s.repo.Find(ctx, userID, courseID)
}

func (s *Service) List(ctx context.Context, userID int) ([]domain.Enrollment, error) {
	enrollments, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get enrollments", zap.Error(err))
		return nil, err
	}
	return enrollments, nil
}
