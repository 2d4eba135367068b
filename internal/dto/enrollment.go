package dto

type EnrollRequestDTO struct {
	CourseID int `json:"course_id" validate:"required,gt=0" example:"42"`
}

type EnrollmentDTO struct {
	CourseID           int     `json:"course_id" example:"42"`
	ProgressPercentage float64 `json:"progress_percentage" example:"50"`
	EnrolledAt         string  `json:"enrolled_at" example:"2024-04-05T16:09:57+02:00"`
}
