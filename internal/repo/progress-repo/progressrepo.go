package progressrepo

import (
	"context"

	"github.com/samlms/lms/internal/domain"
	"github.com/samlms/lms/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Upsert записывает отметку о прохождении урока. completed_at хранит
// первое достижение и не очищается, даже если урок потом отмечен
// непройденным.
func (r *Repository) Upsert(ctx context.Context, progress *domain.LessonProgress) (*domain.LessonProgress, error) {
	query := `
        INSERT INTO lesson_progress (user_id, lesson_id, is_completed, completed_at, last_accessed_at)
        VALUES ($1, $2, $3, CASE WHEN $3 THEN now() END, now())
        ON CONFLICT (user_id, lesson_id) DO UPDATE SET
            is_completed = EXCLUDED.is_completed,
            completed_at = CASE
                WHEN EXCLUDED.is_completed THEN COALESCE(lesson_progress.completed_at, now())
                ELSE lesson_progress.completed_at
            END,
            last_accessed_at = now()
        RETURNING id, user_id, lesson_id, is_completed, completed_at, last_accessed_at
    `
	row := r.db.QueryRow(ctx, query, progress.UserID, progress.LessonID, progress.IsCompleted)

	var saved domain.LessonProgress
	err := row.Scan(&saved.ID, &saved.UserID, &saved.LessonID,
		&saved.IsCompleted, &saved.CompletedAt, &saved.LastAccessedAt)
	if err != nil {
		zap.L().Error("can't upsert lesson progress", zap.Error(err))
		return nil, err
	}
	return &saved, nil
}

// CountByCourse считает уроки курса по всем модулям и число пройденных
// пользователем. Чтение выполняется после фиксации Upsert, так что
// процент всегда пересчитывается из актуальных строк.
func (r *Repository) CountByCourse(ctx context.Context, userID, courseID int) (total, completed int, err error) {
	query := `
        SELECT COUNT(cl.id) AS total,
               COUNT(*) FILTER (WHERE lp.is_completed) AS completed
        FROM course_lessons cl
        JOIN course_modules cm ON cl.module_id = cm.id
        LEFT JOIN lesson_progress lp ON lp.lesson_id = cl.id AND lp.user_id = $1
        WHERE cm.course_id = $2
    `
	row := r.db.QueryRow(ctx, query, userID, courseID)
	if err = row.Scan(&total, &completed); err != nil {
		zap.L().Error("can't count course progress", zap.Error(err))
		return 0, 0, err
	}
	return total, completed, nil
}

func (r *Repository) FindBreakdown(ctx context.Context, userID, courseID int) ([]domain.LessonProgressDetail, error) {
	query := `
        SELECT cm.id AS module_id,
               cm.title AS module_title,
               cl.id AS lesson_id,
               cl.title AS lesson_title,
               COALESCE(lp.is_completed, false) AS is_completed,
               lp.completed_at
        FROM course_modules cm
        JOIN course_lessons cl ON cl.module_id = cm.id
        LEFT JOIN lesson_progress lp ON lp.lesson_id = cl.id AND lp.user_id = $1
        WHERE cm.course_id = $2
        ORDER BY cm.order_index, cl.order_index
    `
	rows, err := r.db.Query(ctx, query, userID, courseID)
	if err != nil {
		zap.L().Error("can't get progress breakdown", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var details []domain.LessonProgressDetail
	for rows.Next() {
		var d domain.LessonProgressDetail
		err := rows.Scan(&d.ModuleID, &d.ModuleTitle, &d.LessonID, &d.LessonTitle, &d.IsCompleted, &d.CompletedAt)
		if err != nil {
			zap.L().Error("can't scan progress row", zap.Error(err))
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}
