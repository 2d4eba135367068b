package progressservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/samlms/lms/internal/domain"
)

func NewMock(t *testing.T) (*Service, *MockEnrollmentRepo, *MockProgressRepo) {
	ctrl := gomock.NewController(t)
	enrollmentRepo := NewMockEnrollmentRepo(ctrl)
	progressRepo := NewMockProgressRepo(ctrl)
	service := New(enrollmentRepo, progressRepo)
	defer ctrl.Finish()
	return service, enrollmentRepo, progressRepo
}

func TestRecord(t *testing.T) {
	service, enrollmentRepo, progressRepo := NewMock(t)

	enrolled := &domain.Enrollment{UserID: 1, CourseID: 10}

	tests := []struct {
		name          string
		prepareMock   func()
		expectedPct   float64
		expectedError error
	}{
		{
			name: "Not enrolled",
			prepareMock: func() {
				enrollmentRepo.EXPECT().Find(gomock.Any(), 1, 10).Return(nil, nil)
			},
			expectedError: ErrNotEnrolled,
		},
		{
			name: "Half the lessons completed",
			prepareMock: func() {
				enrollmentRepo.EXPECT().Find(gomock.Any(), 1, 10).Return(enrolled, nil)
				progressRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p *domain.LessonProgress) (*domain.LessonProgress, error) {
						assert.Equal(t, 1, p.UserID)
						assert.Equal(t, 5, p.LessonID)
						assert.True(t, p.IsCompleted)
						return p, nil
					})
				progressRepo.EXPECT().CountByCourse(gomock.Any(), 1, 10).Return(4, 2, nil)
				enrollmentRepo.EXPECT().UpdateProgress(gomock.Any(), 1, 10, 50.0).Return(nil)
			},
			expectedPct: 50,
		},
		{
			name: "Course without lessons stays at zero",
			prepareMock: func() {
				enrollmentRepo.EXPECT().Find(gomock.Any(), 1, 10).Return(enrolled, nil)
				progressRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(&domain.LessonProgress{}, nil)
				progressRepo.EXPECT().CountByCourse(gomock.Any(), 1, 10).Return(0, 0, nil)
				enrollmentRepo.EXPECT().UpdateProgress(gomock.Any(), 1, 10, 0.0).Return(nil)
			},
			expectedPct: 0,
		},
		{
			name: "Upsert error",
			prepareMock: func() {
				enrollmentRepo.EXPECT().Find(gomock.Any(), 1, 10).Return(enrolled, nil)
				progressRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil, errors.New("some error"))
			},
			expectedError: errors.New("some error"),
		},
		{
			name: "UpdateProgress error",
			prepareMock: func() {
				enrollmentRepo.EXPECT().Find(gomock.Any(), 1, 10).Return(enrolled, nil)
				progressRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(&domain.LessonProgress{}, nil)
				progressRepo.EXPECT().CountByCourse(gomock.Any(), 1, 10).Return(4, 2, nil)
				enrollmentRepo.EXPECT().UpdateProgress(gomock.Any(), 1, 10, 50.0).Return(errors.New("some error"))
			},
			expectedError: errors.New("some error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			pct, err := service.Record(context.Background(), 1, 10, 5, true)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedPct, pct)
			}
		})
	}
}

func TestGet(t *testing.T) {
	service, enrollmentRepo, progressRepo := NewMock(t)

	enrolled := &domain.Enrollment{UserID: 1, CourseID: 10, ProgressPercentage: 25}

	t.Run("Not enrolled", func(t *testing.T) {
		enrollmentRepo.EXPECT().Find(gomock.Any(), 1, 10).Return(nil, nil)
		_, err := service.Get(context.Background(), 1, 10)
		assert.ErrorIs(t, err, ErrNotEnrolled)
	})

	t.Run("Percentage recomputed from breakdown", func(t *testing.T) {
		enrollmentRepo.EXPECT().Find(gomock.Any(), 1, 10).Return(enrolled, nil)
		progressRepo.EXPECT().FindBreakdown(gomock.Any(), 1, 10).Return([]domain.LessonProgressDetail{
			{LessonID: 1, IsCompleted: true},
			{LessonID: 2, IsCompleted: true},
			{LessonID: 3, IsCompleted: false},
			{LessonID: 4, IsCompleted: false},
		}, nil)
		enrollmentRepo.EXPECT().UpdateProgress(gomock.Any(), 1, 10, 50.0).Return(nil)

		progress, err := service.Get(context.Background(), 1, 10)
		assert.NoError(t, err)
		assert.Equal(t, 4, progress.TotalLessons)
		assert.Equal(t, 2, progress.CompletedLessons)
		assert.Equal(t, 50.0, progress.Percentage)
		assert.Len(t, progress.Lessons, 4)
	})

	t.Run("No lessons means zero percent", func(t *testing.T) {
		enrollmentRepo.EXPECT().Find(gomock.Any(), 1, 10).Return(enrolled, nil)
		progressRepo.EXPECT().FindBreakdown(gomock.Any(), 1, 10).Return(nil, nil)
		enrollmentRepo.EXPECT().UpdateProgress(gomock.Any(), 1, 10, 0.0).Return(nil)

		progress, err := service.Get(context.Background(), 1, 10)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, progress.Percentage)
		assert.Equal(t, 0, progress.TotalLessons)
	})

	t.Run("Breakdown error", func(t *testing.T) {
		enrollmentRepo.EXPECT().Find(gomock.Any(), 1, 10).Return(enrolled, nil)
		progressRepo.EXPECT().FindBreakdown(gomock.Any(), 1, 10).Return(nil, errors.New("some error"))
		_, err := service.Get(context.Background(), 1, 10)
		assert.Error(t, err)
	})
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		expected  float64
	}{
		{"No lessons", 0, 0, 0},
		{"Nothing completed", 4, 0, 0},
		{"Half completed", 4, 2, 50},
		{"All completed", 4, 4, 100},
		{"Thirds", 3, 1, 100.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, percentage(tt.total, tt.completed), 1e-9)
		})
	}
}
