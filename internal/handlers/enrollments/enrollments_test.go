package enrollments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/samlms/lms/internal/domain"
	"github.com/samlms/lms/internal/dto"
	enrollmentservice "github.com/samlms/lms/internal/service/enrollmentservice"
	progressservice "github.com/samlms/lms/internal/service/progressservice"
	"github.com/samlms/lms/pkg/auth"
)

func NewMock(t *testing.T) (*EnrollmentHandler, *MockService, *MockProgressService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	progress := NewMockProgressService(ctrl)
	handler := New(service, progress)
	defer ctrl.Finish()
	return handler, service, progress
}

func withUser(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), auth.UserIDKey, 1))
}

func withCourseParam(r *http.Request, courseID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("courseID", courseID)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestEnrollHandler(t *testing.T) {
	handler, service, _ := NewMock(t)
	now := time.Now()

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful enrollment",
			body: `{"course_id":10}`,
			prepareMock: func() {
				service.EXPECT().Enroll(gomock.Any(), 1, 10).
					Return(&domain.Enrollment{UserID: 1, CourseID: 10, EnrolledAt: now}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:          "Invalid request body",
			body:          `{not json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Missing course id",
			body:          `{}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Course id is required",
		},
		{
			name: "Course not found",
			body: `{"course_id":99}`,
			prepareMock: func() {
				service.EXPECT().Enroll(gomock.Any(), 1, 99).Return(nil, enrollmentservice.ErrCourseNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "course not found",
		},
		{
			name: "Paid course",
			body: `{"course_id":11}`,
			prepareMock: func() {
				service.EXPECT().Enroll(gomock.Any(), 1, 11).Return(nil, enrollmentservice.ErrPaymentRequired)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "requires payment",
		},
		{
			name: "Internal server error",
			body: `{"course_id":10}`,
			prepareMock: func() {
				service.EXPECT().Enroll(gomock.Any(), 1, 10).Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := withUser(httptest.NewRequest(http.MethodPost, "/api/enrollments", bytes.NewBufferString(tt.body)))
			w := httptest.NewRecorder()

			handler.Enroll(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestListHandler(t *testing.T) {
	handler, service, _ := NewMock(t)
	now := time.Now()

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name: "Returns enrollments",
			prepareMock: func() {
				service.EXPECT().List(gomock.Any(), 1).Return([]domain.Enrollment{
					{UserID: 1, CourseID: 10, ProgressPercentage: 50, EnrolledAt: now},
					{UserID: 1, CourseID: 11, EnrolledAt: now},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name: "No enrollments",
			prepareMock: func() {
				service.EXPECT().List(gomock.Any(), 1).Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().List(gomock.Any(), 1).Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := withUser(httptest.NewRequest(http.MethodGet, "/api/enrollments", nil))
			w := httptest.NewRecorder()

			handler.List(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.EnrollmentDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Len(t, body, tt.expectedLen)
			}
		})
	}
}

func TestGetProgressHandler(t *testing.T) {
	handler, _, progress := NewMock(t)
	now := time.Now()

	tests := []struct {
		name          string
		courseID      string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name:     "Returns breakdown",
			courseID: "10",
			prepareMock: func() {
				progress.EXPECT().Get(gomock.Any(), 1, 10).Return(&domain.CourseProgress{
					TotalLessons:     2,
					CompletedLessons: 1,
					Percentage:       50,
					Lessons: []domain.LessonProgressDetail{
						{ModuleID: 1, ModuleTitle: "Basics", LessonID: 5, LessonTitle: "Hello", IsCompleted: true, CompletedAt: &now},
						{ModuleID: 1, ModuleTitle: "Basics", LessonID: 6, LessonTitle: "Variables"},
					},
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid course id",
			courseID:      "abc",
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid course id",
		},
		{
			name:     "Not enrolled",
			courseID: "10",
			prepareMock: func() {
				progress.EXPECT().Get(gomock.Any(), 1, 10).Return(nil, progressservice.ErrNotEnrolled)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "not enrolled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := withUser(httptest.NewRequest(http.MethodGet, "/api/enrollments/"+tt.courseID+"/progress", nil))
			r = withCourseParam(r, tt.courseID)
			w := httptest.NewRecorder()

			handler.GetProgress(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusOK {
				var body dto.CourseProgressResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, 2, body.TotalLessons)
				assert.Equal(t, 50.0, body.ProgressPercentage)
				assert.Len(t, body.Lessons, 2)
			}
		})
	}
}

func TestUpdateProgressHandler(t *testing.T) {
	handler, _, progress := NewMock(t)

	tests := []struct {
		name          string
		courseID      string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name:     "Lesson marked complete",
			courseID: "10",
			body:     `{"lesson_id":5,"is_completed":true}`,
			prepareMock: func() {
				progress.EXPECT().Record(gomock.Any(), 1, 10, 5, true).Return(50.0, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid course id",
			courseID:      "abc",
			body:          `{"lesson_id":5,"is_completed":true}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid course id",
		},
		{
			name:          "Invalid request body",
			courseID:      "10",
			body:          `{not json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Missing lesson id",
			courseID:      "10",
			body:          `{"is_completed":true}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Lesson id is required",
		},
		{
			name:     "Not enrolled",
			courseID: "10",
			body:     `{"lesson_id":5,"is_completed":true}`,
			prepareMock: func() {
				progress.EXPECT().Record(gomock.Any(), 1, 10, 5, true).Return(0.0, progressservice.ErrNotEnrolled)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "not enrolled",
		},
		{
			name:     "Internal server error",
			courseID: "10",
			body:     `{"lesson_id":5,"is_completed":true}`,
			prepareMock: func() {
				progress.EXPECT().Record(gomock.Any(), 1, 10, 5, true).Return(0.0, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := withUser(httptest.NewRequest(http.MethodPut, "/api/enrollments/"+tt.courseID+"/progress", bytes.NewBufferString(tt.body)))
			r = withCourseParam(r, tt.courseID)
			w := httptest.NewRecorder()

			handler.UpdateProgress(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusOK {
				var body dto.UpdateProgressResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, 50.0, body.ProgressPercentage)
			}
		})
	}
}
