package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samlms/lms/internal/config"
	"github.com/samlms/lms/internal/domain"
	"github.com/samlms/lms/pkg/clients"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=notify.go -destination=notify_mock.go -package=notify

const dispatchTimeout = time.Second * 30

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type CourseRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Course, error)
}

// Dispatcher рассылает уведомления о зачислении. Доставка best-effort:
// сбой логируется и никогда не влияет на основной поток.
type Dispatcher struct {
	userRepo   UserRepo
	courseRepo CourseRepo
	email      *EmailClient
	sms        *SMSClient
}

func New(cfg *config.Config, userRepo UserRepo, courseRepo CourseRepo, client clients.HTTPClientI) *Dispatcher {
	return &Dispatcher{
		userRepo:   userRepo,
		courseRepo: courseRepo,
		email:      NewEmailClient(cfg, client),
		sms:        NewSMSClient(cfg, client),
	}
}

// EnrollmentCompleted неблокирующая отправка подтверждения зачисления
// по email и SMS.
func (d *Dispatcher) EnrollmentCompleted(userID, courseID int) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := d.dispatch(ctx, userID, courseID); err != nil {
			zap.L().Warn("enrollment notification failed",
				zap.Int("userID", userID), zap.Int("courseID", courseID), zap.Error(err))
		}
	}()
}

func (d *Dispatcher) dispatch(ctx context.Context, userID, courseID int) error {
	user, err := d.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %d not found", userID)
	}
	course, err := d.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return err
	}
	if course == nil {
		return fmt.Errorf("course %d not found", courseID)
	}

	var g errgroup.Group
	g.Go(func() error {
		return d.email.SendEnrollmentConfirmation(user.Email, user.Name, course.Title)
	})
	if user.Phone != "" {
		g.Go(func() error {
			return d.sms.SendEnrollmentConfirmation(user.Phone, course.Title)
		})
	}
	return g.Wait()
}

// EmailClient тонкий REST-клиент Resend.
type EmailClient struct {
	url    string
	apiKey string
	from   string
	client clients.HTTPClientI
}

func NewEmailClient(cfg *config.Config, client clients.HTTPClientI) *EmailClient {
	return &EmailClient{
		url:    "https://api.resend.com",
		apiKey: cfg.ResendAPIKey,
		from:   cfg.EmailFrom,
		client: client,
	}
}

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (c *EmailClient) SendEnrollmentConfirmation(email, name, courseTitle string) error {
	body, err := json.Marshal(emailRequest{
		From:    c.from,
		To:      []string{email},
		Subject: "You're enrolled in " + courseTitle,
		HTML: fmt.Sprintf("<p>Hi %s,</p><p>Your enrollment in <b>%s</b> is confirmed. Happy learning!</p>",
			name, courseTitle),
	})
	if err != nil {
		return fmt.Errorf("can't marshal email request: %w", err)
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+c.apiKey)
	headers.Set("Content-Type", "application/json")

	statusCode, respBody, err := c.client.Post(c.url+"/emails", headers, body)
	if err != nil {
		return fmt.Errorf("can't send email: %w", err)
	}
	if statusCode >= http.StatusBadRequest {
		return fmt.Errorf("email provider returned %d: %s", statusCode, string(respBody))
	}

	zap.L().Info("enrollment email sent", zap.String("email", email))
	return nil
}

// SMSClient тонкий REST-клиент Africa's Talking.
type SMSClient struct {
	url      string
	username string
	apiKey   string
	senderID string
	client   clients.HTTPClientI
}

func NewSMSClient(cfg *config.Config, client clients.HTTPClientI) *SMSClient {
	return &SMSClient{
		url:      "https://api.africastalking.com/version1",
		username: cfg.SMSUsername,
		apiKey:   cfg.SMSAPIKey,
		senderID: cfg.SMSSenderID,
		client:   client,
	}
}

func (c *SMSClient) SendEnrollmentConfirmation(phone, courseTitle string) error {
	form := url.Values{}
	form.Set("username", c.username)
	form.Set("to", phone)
	form.Set("from", c.senderID)
	form.Set("message", fmt.Sprintf("Welcome to %s! You've successfully enrolled. Happy learning!", courseTitle))

	headers := http.Header{}
	headers.Set("apiKey", c.apiKey)
	headers.Set("Content-Type", "application/x-www-form-urlencoded")
	headers.Set("Accept", "application/json")

	statusCode, respBody, err := c.client.Post(c.url+"/messaging", headers, []byte(form.Encode()))
	if err != nil {
		return fmt.Errorf("can't send sms: %w", err)
	}
	if statusCode >= http.StatusBadRequest {
		return fmt.Errorf("sms provider returned %d: %s", statusCode, string(respBody))
	}

	zap.L().Info("enrollment sms sent", zap.String("phone", maskPhone(phone)))
	return nil
}

func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
