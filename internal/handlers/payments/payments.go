package payments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/samlms/lms/internal/dto"
	paymentservice "github.com/samlms/lms/internal/service/paymentservice"
	"github.com/samlms/lms/pkg/auth"
	"github.com/samlms/lms/pkg/utils"
	"github.com/samlms/lms/pkg/validate"
)

// SignatureHeader заголовок с HMAC-подписью webhook-запроса шлюза.
const SignatureHeader = "X-Paystack-Signature"

type Service interface {
	Initialize(ctx context.Context, userID, courseID int) (*paymentservice.InitializeResult, error)
	Verify(ctx context.Context, reference string) (*paymentservice.VerifyResult, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type PaymentHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Initialize godoc
//
//	@Summary		Initialize a course payment
//	@Description	Create a pending payment and return a gateway checkout link.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.InitializePaymentRequestDTO	true	"Course to pay for"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.InitializePaymentResponseDTO
//	@Failure		400	{object}	utils.Response	"Already enrolled or invalid request"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Course not found"
//	@Failure		502	{object}	utils.Response	"Payment gateway unavailable"
//	@Router			/api/payments/initialize [post]
func (h *PaymentHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.InitializePaymentRequestDTO
	if err := decodeJSON(r.Body, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Course id is required")
		return
	}

	result, err := h.paymentService.Initialize(r.Context(), userID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrCourseNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, paymentservice.ErrAlreadyEnrolled):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, paymentservice.ErrGatewayUnavailable):
			utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.InitializePaymentResponseDTO{
		AuthorizationURL: result.AuthorizationURL,
		AccessCode:       result.AccessCode,
		Reference:        result.Reference,
	})
}

// Verify godoc
//
//	@Summary		Verify a payment
//	@Description	Confirm the transaction with the gateway and enroll the learner. Safe to retry.
//	@Tags			Payments
//	@Produce		json
//	@Param			reference	path	string	true	"Payment reference"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.VerifyPaymentResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		402	{object}	utils.Response	"Payment not completed"
//	@Failure		404	{object}	utils.Response	"Payment not found"
//	@Failure		502	{object}	utils.Response	"Payment gateway unavailable"
//	@Router			/api/payments/verify/{reference} [get]
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Reference is required")
		return
	}

	result, err := h.paymentService.Verify(r.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrPaymentNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, paymentservice.ErrPaymentNotCompleted),
			errors.Is(err, paymentservice.ErrVerificationMismatch):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, paymentservice.ErrGatewayUnavailable):
			utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	resp := dto.VerifyPaymentResponseDTO{
		Payment: dto.PaymentDTO{
			Reference: result.Payment.Reference,
			Amount:    result.Payment.Amount,
			Currency:  result.Payment.Currency,
			Status:    result.Payment.Status,
		},
	}
	if result.Payment.PaidAt != nil {
		resp.Payment.PaidAt = result.Payment.PaidAt.Format(time.RFC3339)
	}
	if result.Enrollment != nil {
		resp.Enrollment = &dto.EnrollmentDTO{
			CourseID:           result.Enrollment.CourseID,
			ProgressPercentage: result.Enrollment.ProgressPercentage,
			EnrolledAt:         result.Enrollment.EnrolledAt.Format(time.RFC3339),
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// Webhook godoc
//
//	@Summary		Payment gateway webhook
//	@Description	Accept gateway events. The HMAC signature over the raw body is the only trust boundary.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	utils.Response
//	@Failure		401	{object}	utils.Response	"Invalid signature"
//	@Router			/api/payments/webhook [post]
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	err = h.paymentService.HandleWebhook(r.Context(), payload, r.Header.Get(SignatureHeader))
	if err != nil {
		if errors.Is(err, paymentservice.ErrInvalidSignature) {
			utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "ok"})
}

func decodeJSON(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}
