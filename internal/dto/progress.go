package dto

type UpdateProgressRequestDTO struct {
	LessonID    int  `json:"lesson_id" validate:"required,gt=0" example:"7"`
	IsCompleted bool `json:"is_completed" example:"true"`
}

type UpdateProgressResponseDTO struct {
	ProgressPercentage float64 `json:"progress_percentage" example:"50"`
}

type LessonProgressDTO struct {
	ModuleID    int    `json:"module_id" example:"3"`
	ModuleTitle string `json:"module_title" example:"Getting Started"`
	LessonID    int    `json:"lesson_id" example:"7"`
	LessonTitle string `json:"lesson_title" example:"Installing the toolchain"`
	IsCompleted bool   `json:"is_completed" example:"true"`
	CompletedAt string `json:"completed_at,omitempty" example:"2024-04-05T16:09:57+02:00"`
}

type CourseProgressResponseDTO struct {
	TotalLessons       int                 `json:"total_lessons" example:"4"`
	CompletedLessons   int                 `json:"completed_lessons" example:"2"`
	ProgressPercentage float64             `json:"progress_percentage" example:"50"`
	Lessons            []LessonProgressDTO `json:"lessons"`
}
