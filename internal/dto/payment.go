package dto

type InitializePaymentRequestDTO struct {
	CourseID int `json:"course_id" validate:"required,gt=0" example:"42"`
}

type InitializePaymentResponseDTO struct {
	AuthorizationURL string `json:"authorization_url" example:"https://checkout.paystack.com/abc123"`
	AccessCode       string `json:"access_code" example:"abc123"`
	Reference        string `json:"reference" example:"LMS-1712345678-7-42-9f1c2d3e"`
}

type PaymentDTO struct {
	Reference string  `json:"reference" example:"LMS-1712345678-7-42-9f1c2d3e"`
	Amount    float64 `json:"amount" example:"2500"`
	Currency  string  `json:"currency" example:"ZAR"`
	Status    string  `json:"status" example:"completed"`
	PaidAt    string  `json:"paid_at,omitempty" example:"2024-04-05T16:09:57+02:00"`
}

type VerifyPaymentResponseDTO struct {
	Payment    PaymentDTO     `json:"payment"`
	Enrollment *EnrollmentDTO `json:"enrollment,omitempty"`
}
