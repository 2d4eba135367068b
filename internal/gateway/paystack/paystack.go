package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/samlms/lms/internal/config"
	"github.com/samlms/lms/pkg/clients"
	"go.uber.org/zap"
)

var (
	// ErrUnavailable шлюз недоступен или ответил серверной ошибкой; вызов можно повторить.
	ErrUnavailable = errors.New("payment gateway unavailable")
	ErrDeclined    = errors.New("payment gateway declined request")
)

// SuccessStatus статус успешно оплаченной транзакции в ответе шлюза.
const SuccessStatus = "success"

// Metadata сопровождает транзакцию и возвращается шлюзом без изменений.
type Metadata struct {
	UserID      int    `json:"user_id"`
	CourseID    int    `json:"course_id"`
	CourseTitle string `json:"course_title,omitempty"`
}

type InitializeRequest struct {
	Email       string   `json:"email"`
	Amount      int64    `json:"amount"`
	Currency    string   `json:"currency"`
	Reference   string   `json:"reference"`
	CallbackURL string   `json:"callback_url,omitempty"`
	Metadata    Metadata `json:"metadata"`
}

type InitializeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type VerifyResponse struct {
	Status    string   `json:"status"`
	Reference string   `json:"reference"`
	Amount    int64    `json:"amount"`
	Currency  string   `json:"currency"`
	PaidAt    string   `json:"paid_at"`
	Metadata  Metadata `json:"metadata"`
}

// Event входящее webhook-событие шлюза.
type Event struct {
	Event string    `json:"event"`
	Data  EventData `json:"data"`
}

type EventData struct {
	Reference string   `json:"reference"`
	Status    string   `json:"status"`
	Amount    int64    `json:"amount"`
	Currency  string   `json:"currency"`
	Metadata  Metadata `json:"metadata"`
}

const (
	ChargeSuccessEvent = "charge.success"
	ChargeFailedEvent  = "charge.failed"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	url           string
	secretKey     string
	webhookSecret string
	client        clients.HTTPClientI
}

func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	return &Client{
		url:           cfg.PaystackAddress,
		secretKey:     cfg.PaystackSecretKey,
		webhookSecret: cfg.PaystackWebhookSecret,
		client:        client,
	}
}

func (c *Client) headers() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+c.secretKey)
	h.Set("Content-Type", "application/json")
	return h
}

// Initialize регистрирует транзакцию и возвращает ссылку на оплату.
// Сумма в запросе уже в минимальных единицах валюты.
func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("can't marshal initialize request: %w", err)
	}

	statusCode, respBody, err := c.client.Post(c.url+"/transaction/initialize", c.headers(), body)
	if err != nil {
		zap.L().Error("gateway initialize failed", zap.String("reference", req.Reference), zap.Error(err))
		return nil, ErrUnavailable
	}
	if statusCode >= http.StatusInternalServerError {
		zap.L().Error("gateway initialize server error", zap.Int("status", statusCode))
		return nil, ErrUnavailable
	}

	env, err := parseEnvelope(respBody)
	if err != nil {
		return nil, err
	}
	if statusCode != http.StatusOK || !env.Status {
		zap.L().Warn("gateway declined initialize", zap.Int("status", statusCode), zap.String("message", env.Message))
		return nil, ErrDeclined
	}

	var resp InitializeResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		return nil, fmt.Errorf("can't parse initialize response: %w", err)
	}
	return &resp, nil
}

// Verify запрашивает у шлюза итоговый статус транзакции по reference.
func (c *Client) Verify(ctx context.Context, reference string) (*VerifyResponse, error) {
	statusCode, respBody, _, err := c.client.Get(c.url+"/transaction/verify/"+reference, c.headers())
	if err != nil {
		zap.L().Error("gateway verify failed", zap.String("reference", reference), zap.Error(err))
		return nil, ErrUnavailable
	}
	if statusCode >= http.StatusInternalServerError {
		zap.L().Error("gateway verify server error", zap.Int("status", statusCode))
		return nil, ErrUnavailable
	}

	env, err := parseEnvelope(respBody)
	if err != nil {
		return nil, err
	}
	if statusCode != http.StatusOK || !env.Status {
		zap.L().Warn("gateway declined verify", zap.Int("status", statusCode), zap.String("message", env.Message))
		return nil, ErrDeclined
	}

	var resp VerifyResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		return nil, fmt.Errorf("can't parse verify response: %w", err)
	}
	return &resp, nil
}

// VerifySignature проверяет HMAC-SHA512 подпись сырого тела webhook-запроса.
// Сравнение выполняется за постоянное время.
func (c *Client) VerifySignature(payload []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(c.webhookSecret))
	mac.Write(payload)
	expected := mac.Sum(nil)

	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, got)
}

func parseEnvelope(body []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("can't parse gateway response: %w", err)
	}
	return &env, nil
}
