package enrollments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/samlms/lms/internal/domain"
	"github.com/samlms/lms/internal/dto"
	enrollmentservice "github.com/samlms/lms/internal/service/enrollmentservice"
	progressservice "github.com/samlms/lms/internal/service/progressservice"
	"github.com/samlms/lms/pkg/auth"
	"github.com/samlms/lms/pkg/utils"
	"github.com/samlms/lms/pkg/validate"
)

type Service interface {
	Enroll(ctx context.Context, userID, courseID int) (*domain.Enrollment, error)
	List(ctx context.Context, userID int) ([]domain.Enrollment, error)
}

type ProgressService interface {
	Record(ctx context.Context, userID, courseID, lessonID int, isCompleted bool) (float64, error)
	Get(ctx context.Context, userID, courseID int) (*domain.CourseProgress, error)
}

type EnrollmentHandler struct {
	enrollmentService Service
	progressService   ProgressService
}

func New(enrollmentService Service, progressService ProgressService) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
		progressService:   progressService,
	}
}

// Enroll godoc
//
//	@Summary		Enroll in a free course
//	@Description	Directly enroll the authenticated user. Repeated enrollment is a no-op.
//	@Tags			Enrollments
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.EnrollRequestDTO	true	"Course to enroll in"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.EnrollmentDTO
//	@Failure		400	{object}	utils.Response	"Invalid request or paid course"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Course not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/enrollments [post]
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.EnrollRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Course id is required")
		return
	}

	enrollment, err := h.enrollmentService.Enroll(r.Context(), userID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, enrollmentservice.ErrCourseNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, enrollmentservice.ErrPaymentRequired):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, toEnrollmentDTO(enrollment))
}

// List godoc
//
//	@Summary		List enrollments
//	@Description	Return all enrollments of the authenticated user.
//	@Tags			Enrollments
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.EnrollmentDTO
//	@Failure		204	{object}	utils.Response	"No data available"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/enrollments [get]
func (h *EnrollmentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	enrollments, err := h.enrollmentService.List(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(enrollments) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	response := make([]dto.EnrollmentDTO, 0, len(enrollments))
	for _, enrollment := range enrollments {
		response = append(response, toEnrollmentDTO(&enrollment))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetProgress godoc
//
//	@Summary		Get course progress
//	@Description	Return the per-lesson breakdown with a freshly recomputed percentage.
//	@Tags			Enrollments
//	@Produce		json
//	@Param			courseID	path	int	true	"Course ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.CourseProgressResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Not enrolled in this course"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/enrollments/{courseID}/progress [get]
func (h *EnrollmentHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	courseID, err := strconv.Atoi(chi.URLParam(r, "courseID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid course id")
		return
	}

	progress, err := h.progressService.Get(r.Context(), userID, courseID)
	if err != nil {
		if errors.Is(err, progressservice.ErrNotEnrolled) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := dto.CourseProgressResponseDTO{
		TotalLessons:       progress.TotalLessons,
		CompletedLessons:   progress.CompletedLessons,
		ProgressPercentage: progress.Percentage,
		Lessons:            make([]dto.LessonProgressDTO, 0, len(progress.Lessons)),
	}
	for _, lesson := range progress.Lessons {
		item := dto.LessonProgressDTO{
			ModuleID:    lesson.ModuleID,
			ModuleTitle: lesson.ModuleTitle,
			LessonID:    lesson.LessonID,
			LessonTitle: lesson.LessonTitle,
			IsCompleted: lesson.IsCompleted,
		}
		if lesson.CompletedAt != nil {
			item.CompletedAt = lesson.CompletedAt.Format(time.RFC3339)
		}
		response.Lessons = append(response.Lessons, item)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// UpdateProgress godoc
//
//	@Summary		Update lesson progress
//	@Description	Upsert a lesson completion mark and return the recomputed course percentage.
//	@Tags			Enrollments
//	@Accept			json
//	@Produce		json
//	@Param			courseID	path	int								true	"Course ID"
//	@Param			request		body	dto.UpdateProgressRequestDTO	true	"Lesson completion state"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.UpdateProgressResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Not enrolled in this course"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/enrollments/{courseID}/progress [put]
func (h *EnrollmentHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	courseID, err := strconv.Atoi(chi.URLParam(r, "courseID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid course id")
		return
	}

	var req dto.UpdateProgressRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Lesson id is required")
		return
	}

	pct, err := h.progressService.Record(r.Context(), userID, courseID, req.LessonID, req.IsCompleted)
	if err != nil {
		if errors.Is(err, progressservice.ErrNotEnrolled) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.UpdateProgressResponseDTO{ProgressPercentage: pct})
}

func toEnrollmentDTO(enrollment *domain.Enrollment) dto.EnrollmentDTO {
	return dto.EnrollmentDTO{
		CourseID:           enrollment.CourseID,
		ProgressPercentage: enrollment.ProgressPercentage,
		EnrolledAt:         enrollment.EnrolledAt.Format(time.RFC3339),
	}
}
