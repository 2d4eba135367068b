package handlers

import (
	"net/http"

	_ "github.com/samlms/lms/docs"
	authhandlers "github.com/samlms/lms/internal/handlers/auth"
	enrollmenthandlers "github.com/samlms/lms/internal/handlers/enrollments"
	paymenthandlers "github.com/samlms/lms/internal/handlers/payments"
	"github.com/samlms/lms/internal/service"
	"github.com/samlms/lms/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	Initialize(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	Webhook(w http.ResponseWriter, r *http.Request)
}

type EnrollmentHandler interface {
	Enroll(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetProgress(w http.ResponseWriter, r *http.Request)
	UpdateProgress(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler       AuthHandler
	PaymentHandler    PaymentHandler
	EnrollmentHandler EnrollmentHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:       authhandlers.New(s.AuthService),
		PaymentHandler:    paymenthandlers.New(s.PaymentService),
		EnrollmentHandler: enrollmenthandlers.New(s.EnrollmentService, s.ProgressService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.AuthHandler.Register)
			r.Post("/login", h.AuthHandler.Login)
		})

		// Подпись тела — единственная граница доверия webhook-запроса,
		// пользовательской сессии у шлюза нет.
		r.Post("/payments/webhook", h.PaymentHandler.Webhook)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Route("/payments", func(r chi.Router) {
				r.Post("/initialize", h.PaymentHandler.Initialize)
				r.Get("/verify/{reference}", h.PaymentHandler.Verify)
			})
			r.Route("/enrollments", func(r chi.Router) {
				r.Post("/", h.EnrollmentHandler.Enroll)
				r.Get("/", h.EnrollmentHandler.List)
				r.Route("/{courseID}/progress", func(r chi.Router) {
					r.Get("/", h.EnrollmentHandler.GetProgress)
					r.Put("/", h.EnrollmentHandler.UpdateProgress)
				})
			})
		})
	})

	return r
}
