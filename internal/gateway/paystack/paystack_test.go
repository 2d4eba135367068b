package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/samlms/lms/internal/config"
	"github.com/samlms/lms/pkg/clients"
)

func NewMock(t *testing.T) (*Client, *clients.MockHTTPClientI) {
	cfg := &config.Config{
		PaystackAddress:       "https://api.paystack.co",
		PaystackSecretKey:     "sk_test_key",
		PaystackWebhookSecret: "whsec_test",
	}
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := clients.NewMockHTTPClientI(ctrl)
	gateway := New(cfg, client)
	return gateway, client
}

func TestClient_Initialize(t *testing.T) {
	gateway, client := NewMock(t)

	req := InitializeRequest{
		Email:     "student@example.com",
		Amount:    15050,
		Currency:  "NGN",
		Reference: "LMS-ref",
		Metadata:  Metadata{UserID: 1, CourseID: 10},
	}

	tests := []struct {
		name        string
		prepareMock func()
		expectedErr error
	}{
		{
			name: "Successful initialization",
			prepareMock: func() {
				body := `{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.paystack.com/abc","access_code":"abc","reference":"LMS-ref"}}`
				client.EXPECT().Post("https://api.paystack.co/transaction/initialize", gomock.Any(), gomock.Any()).
					Return(http.StatusOK, []byte(body), nil)
			},
		},
		{
			name: "Transport error",
			prepareMock: func() {
				client.EXPECT().Post("https://api.paystack.co/transaction/initialize", gomock.Any(), gomock.Any()).
					Return(0, nil, errors.New("connection refused"))
			},
			expectedErr: ErrUnavailable,
		},
		{
			name: "Server error",
			prepareMock: func() {
				client.EXPECT().Post("https://api.paystack.co/transaction/initialize", gomock.Any(), gomock.Any()).
					Return(http.StatusBadGateway, []byte("bad gateway"), nil)
			},
			expectedErr: ErrUnavailable,
		},
		{
			name: "Declined request",
			prepareMock: func() {
				body := `{"status":false,"message":"Invalid key"}`
				client.EXPECT().Post("https://api.paystack.co/transaction/initialize", gomock.Any(), gomock.Any()).
					Return(http.StatusUnauthorized, []byte(body), nil)
			},
			expectedErr: ErrDeclined,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			resp, err := gateway.Initialize(context.Background(), req)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "https://checkout.paystack.com/abc", resp.AuthorizationURL)
				assert.Equal(t, "abc", resp.AccessCode)
				assert.Equal(t, "LMS-ref", resp.Reference)
			}
		})
	}
}

func TestClient_Verify(t *testing.T) {
	gateway, client := NewMock(t)

	tests := []struct {
		name        string
		prepareMock func()
		expectedErr error
	}{
		{
			name: "Successful verification",
			prepareMock: func() {
				body := `{"status":true,"message":"Verification successful","data":{"status":"success","reference":"LMS-ref","amount":15050,"currency":"NGN","metadata":{"user_id":1,"course_id":10}}}`
				client.EXPECT().Get("https://api.paystack.co/transaction/verify/LMS-ref", gomock.Any()).
					Return(http.StatusOK, []byte(body), nil, nil)
			},
		},
		{
			name: "Transport error",
			prepareMock: func() {
				client.EXPECT().Get("https://api.paystack.co/transaction/verify/LMS-ref", gomock.Any()).
					Return(0, nil, nil, errors.New("connection refused"))
			},
			expectedErr: ErrUnavailable,
		},
		{
			name: "Unknown transaction",
			prepareMock: func() {
				body := `{"status":false,"message":"Transaction reference not found"}`
				client.EXPECT().Get("https://api.paystack.co/transaction/verify/LMS-ref", gomock.Any()).
					Return(http.StatusNotFound, []byte(body), nil, nil)
			},
			expectedErr: ErrDeclined,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			resp, err := gateway.Verify(context.Background(), "LMS-ref")
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, SuccessStatus, resp.Status)
				assert.Equal(t, int64(15050), resp.Amount)
				assert.Equal(t, 1, resp.Metadata.UserID)
			}
		})
	}
}

func TestClient_VerifySignature(t *testing.T) {
	gateway, _ := NewMock(t)

	payload := []byte(`{"event":"charge.success","data":{"reference":"LMS-ref"}}`)
	mac := hmac.New(sha512.New, []byte("whsec_test"))
	mac.Write(payload)
	valid := hex.EncodeToString(mac.Sum(nil))

	tests := []struct {
		name      string
		payload   []byte
		signature string
		expected  bool
	}{
		{"Valid signature", payload, valid, true},
		{"Tampered payload", []byte(`{"event":"charge.success","data":{"reference":"LMS-other"}}`), valid, false},
		{"Wrong signature", payload, hex.EncodeToString(make([]byte, sha512.Size)), false},
		{"Not hex", payload, "not-a-hex-string", false},
		{"Empty signature", payload, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, gateway.VerifySignature(tt.payload, tt.signature))
		})
	}
}
