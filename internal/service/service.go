package service

import (
	"github.com/samlms/lms/internal/config"
	"github.com/samlms/lms/internal/handlers/auth"
	"github.com/samlms/lms/internal/handlers/enrollments"
	"github.com/samlms/lms/internal/handlers/payments"

	pkgauth "github.com/samlms/lms/pkg/auth"

	"github.com/samlms/lms/internal/repo"
	authservice "github.com/samlms/lms/internal/service/authservice"
	enrollmentservice "github.com/samlms/lms/internal/service/enrollmentservice"
	paymentservice "github.com/samlms/lms/internal/service/paymentservice"
	progressservice "github.com/samlms/lms/internal/service/progressservice"
)

type Services struct {
	AuthService       auth.Service
	PaymentService    payments.Service
	EnrollmentService enrollments.Service
	ProgressService   enrollments.ProgressService

	paymentService *paymentservice.Service
}

// Payments конкретный платёжный сервис для фоновой сверки.
func (s *Services) Payments() *paymentservice.Service {
	return s.paymentService
}

func New(cfg *config.Config, repo *repo.Repositories, gateway paymentservice.Gateway, notifier paymentservice.Notifier) *Services {
	enrollmentService := enrollmentservice.New(repo.EnrollmentRepo, repo.CourseRepo)
	progressService := progressservice.New(repo.EnrollmentRepo, repo.ProgressRepo)
	paymentService := paymentservice.New(cfg, repo.PaymentRepo, repo.CourseRepo, repo.UserRepo, enrollmentService, gateway, notifier)
	authService := authservice.New(repo.UserRepo, &pkgauth.HashService{}, &pkgauth.JWTService{})

	return &Services{
		AuthService:       authService,
		PaymentService:    paymentService,
		EnrollmentService: enrollmentService,
		ProgressService:   progressService,
		paymentService:    paymentService,
	}
}
