package domain

import "time"

type User struct {
	ID           int       `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	Phone        string    `db:"phone"`
	CreatedAt    time.Time `db:"created_at"`
}

type Course struct {
	ID          int     `db:"id"`
	Title       string  `db:"title"`
	Price       float64 `db:"price"`
	Currency    string  `db:"currency"`
	IsPublished bool    `db:"is_published"`
}

const (
	// PendingPaymentStatus платёж создан, оплата не подтверждена;
	PendingPaymentStatus string = "pending"
	// CompletedPaymentStatus оплата подтверждена шлюзом;
	CompletedPaymentStatus string = "completed"
	// FailedPaymentStatus оплата отклонена или не прошла проверку;
	FailedPaymentStatus string = "failed"
)

type Payment struct {
	ID        int        `db:"id"`
	UserID    int        `db:"user_id"`
	CourseID  int        `db:"course_id"`
	Reference string     `db:"reference"`
	Amount    float64    `db:"amount"`
	Currency  string     `db:"currency"`
	Status    string     `db:"status"`
	PaidAt    *time.Time `db:"paid_at"`
	CreatedAt time.Time  `db:"created_at"`
}

func (p *Payment) IsTerminal() bool {
	return p.Status == CompletedPaymentStatus || p.Status == FailedPaymentStatus
}

type Enrollment struct {
	ID                 int       `db:"id"`
	UserID             int       `db:"user_id"`
	CourseID           int       `db:"course_id"`
	ProgressPercentage float64   `db:"progress_percentage"`
	EnrolledAt         time.Time `db:"enrolled_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

type LessonProgress struct {
	ID             int        `db:"id"`
	UserID         int        `db:"user_id"`
	LessonID       int        `db:"lesson_id"`
	IsCompleted    bool       `db:"is_completed"`
	CompletedAt    *time.Time `db:"completed_at"`
	LastAccessedAt time.Time  `db:"last_accessed_at"`
}

// LessonProgressDetail строка детализации: урок вместе с модулем
// и отметкой о прохождении.
type LessonProgressDetail struct {
	ModuleID    int        `db:"module_id"`
	ModuleTitle string     `db:"module_title"`
	LessonID    int        `db:"lesson_id"`
	LessonTitle string     `db:"lesson_title"`
	IsCompleted bool       `db:"is_completed"`
	CompletedAt *time.Time `db:"completed_at"`
}

type CourseProgress struct {
	TotalLessons     int
	CompletedLessons int
	Percentage       float64
	Lessons          []LessonProgressDetail
}
