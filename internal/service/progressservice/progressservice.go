package progressservice

import (
	"context"
	"errors"

	"github.com/samlms/lms/internal/domain"
	"go.uber.org/zap"
)

//go:generate mockgen -source=progressservice.go -destination=progressservice_mock.go -package=progressservice

type EnrollmentRepo interface {
	Find(ctx context.Context, userID, courseID int) (*domain.Enrollment, error)
	UpdateProgress(ctx context.Context, userID, courseID int, percentage float64) error
}

type ProgressRepo interface {
	Upsert(ctx context.Context, progress *domain.LessonProgress) (*domain.LessonProgress, error)
	CountByCourse(ctx context.Context, userID, courseID int) (total, completed int, err error)
	FindBreakdown(ctx context.Context, userID, courseID int) ([]domain.LessonProgressDetail, error)
}

var ErrNotEnrolled = errors.New("not enrolled in this course")

type Service struct {
	enrollmentRepo EnrollmentRepo
	progressRepo   ProgressRepo
}

func New(enrollmentRepo EnrollmentRepo, progressRepo ProgressRepo) *Service {
	return &Service{
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
	}
}

// Record сохраняет отметку по уроку и пересчитывает процент курса из
// всех строк прогресса. Процент — производный кэш: упавшая между
// записями операция самовосстанавливается при следующем чтении.
func (s *Service) Record(ctx context.Context, userID, courseID, lessonID int, isCompleted bool) (float64, error) {
	enrollment, err := s.enrollmentRepo.Find(ctx, userID, courseID)
	if err != nil {
		return 0, err
	}
	if enrollment == nil {
		return 0, ErrNotEnrolled
	}

	_, err = s.progressRepo.Upsert(ctx, &domain.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		IsCompleted: isCompleted,
	})
	if err != nil {
		zap.L().Error("can't record lesson progress", zap.Error(err))
		return 0, err
	}

	total, completed, err := s.progressRepo.CountByCourse(ctx, userID, courseID)
	if err != nil {
		return 0, err
	}
	pct := percentage(total, completed)

	if err := s.enrollmentRepo.UpdateProgress(ctx, userID, courseID, pct); err != nil {
		return 0, err
	}
	return pct, nil
}

// Get возвращает детализацию прохождения с процентом, пересчитанным из
// строк прогресса, и попутно чинит сохранённое значение.
func (s *Service) Get(ctx context.Context, userID, courseID int) (*domain.CourseProgress, error) {
	enrollment, err := s.enrollmentRepo.Find(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrNotEnrolled
	}

	lessons, err := s.progressRepo.FindBreakdown(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	completed := 0
	for _, lesson := range lessons {
		if lesson.IsCompleted {
			completed++
		}
	}
	pct := percentage(len(lessons), completed)

	if err := s.enrollmentRepo.UpdateProgress(ctx, userID, courseID, pct); err != nil {
		return nil, err
	}

	return &domain.CourseProgress{
		TotalLessons:     len(lessons),
		CompletedLessons: completed,
		Percentage:       pct,
		Lessons:          lessons,
	}, nil
}

// percentage для курса без уроков определён как 0.
func percentage(total, completed int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(completed) / float64(total)
}
