package repo

import (
	"github.com/samlms/lms/internal/pg"
	courserepo "github.com/samlms/lms/internal/repo/course-repo"
	enrollmentrepo "github.com/samlms/lms/internal/repo/enrollment-repo"
	paymentrepo "github.com/samlms/lms/internal/repo/payment-repo"
	progressrepo "github.com/samlms/lms/internal/repo/progress-repo"
	userrepo "github.com/samlms/lms/internal/repo/user-repo"
	"github.com/samlms/lms/internal/service/authservice"
	"github.com/samlms/lms/internal/service/enrollmentservice"
	"github.com/samlms/lms/internal/service/paymentservice"
	"github.com/samlms/lms/internal/service/progressservice"
)

type Repositories struct {
	UserRepo       authservice.Repo
	CourseRepo     paymentservice.CourseRepo
	PaymentRepo    paymentservice.Repo
	EnrollmentRepo enrollmentservice.Repo
	ProgressRepo   progressservice.ProgressRepo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	userRepo := userrepo.New(conn)
	courseRepo := courserepo.New(conn)
	paymentRepo := paymentrepo.New(conn, txManager)
	enrollmentRepo := enrollmentrepo.New(conn, txManager)
	progressRepo := progressrepo.New(conn)

	return &Repositories{
		UserRepo:       userRepo,
		CourseRepo:     courseRepo,
		PaymentRepo:    paymentRepo,
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
	}
}
