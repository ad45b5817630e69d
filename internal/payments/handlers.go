package payments

import (
	"time"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/middleware"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles payment handlers.
type Handlers struct {
	Service *Service
}

type generateRequest struct {
	DeclarationID string `json:"declaration_id"`
}

// GeneratePayments POST /api/v1/payments/generate-payments
// Reports partial success: count generated plus per-investment failures.
func (h *Handlers) GeneratePayments(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	declarationID, err := uuid.Parse(req.DeclarationID)
	if err != nil {
		return response.Error(c, "Invalid declaration ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}

	generated, failures, err := h.Service.GeneratePayments(c.Context(), declarationID)
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	if failures == nil {
		failures = []GenerationFailure{}
	}
	return response.Success(c, "Payment generation finished", fiber.Map{
		"generated": generated,
		"failures":  failures,
	}, nil)
}

// GetDeclarationPayments GET /api/v1/payments/get-declaration-payments/:declaration_id
func (h *Handlers) GetDeclarationPayments(c *fiber.Ctx) error {
	declarationID, err := uuid.Parse(c.Params("declaration_id"))
	if err != nil {
		return response.Error(c, "Invalid declaration ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	views, err := h.Service.PaymentsByDeclaration(c.Context(), declarationID)
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.Success(c, "Payments fetched successfully", views, nil)
}

type correctPaymentRequest struct {
	PaymentID string `json:"payment_id"`
	CorrectionInput
}

// CorrectPayment PATCH /api/v1/payments/correct-payment
func (h *Handlers) CorrectPayment(c *fiber.Ctx) error {
	var req correctPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	paymentID, err := uuid.Parse(req.PaymentID)
	if err != nil {
		return response.Error(c, "Invalid payment ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}

	payment, err := h.Service.CorrectPayment(c.Context(), middleware.GetActor(c), paymentID, req.CorrectionInput)
	if err == ErrAdminRequired {
		return response.Forbidden(c, err.Error())
	}
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.Success(c, "Payment corrected successfully", payment, nil)
}

type markPaidRequest struct {
	PaymentID   string  `json:"payment_id"`
	PaymentDate string  `json:"payment_date"`
	ReceiptURL  *string `json:"receipt_url"`
}

// MarkPaid POST /api/v1/payments/mark-paid
func (h *Handlers) MarkPaid(c *fiber.Ctx) error {
	var req markPaidRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	paymentID, err := uuid.Parse(req.PaymentID)
	if err != nil {
		return response.Error(c, "Invalid payment ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return response.Error(c, "payment_date must be YYYY-MM-DD", fiber.StatusBadRequest, nil)
	}

	payment, err := h.Service.MarkPaid(c.Context(), middleware.GetActor(c), paymentID, paymentDate, req.ReceiptURL)
	if err == ErrAdminRequired {
		return response.Forbidden(c, err.Error())
	}
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.Success(c, "Payment marked as paid", payment, nil)
}

type markFailedRequest struct {
	PaymentID string  `json:"payment_id"`
	Remark    *string `json:"remark"`
}

// MarkFailed POST /api/v1/payments/mark-failed
func (h *Handlers) MarkFailed(c *fiber.Ctx) error {
	var req markFailedRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	paymentID, err := uuid.Parse(req.PaymentID)
	if err != nil {
		return response.Error(c, "Invalid payment ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}

	payment, err := h.Service.MarkFailed(c.Context(), middleware.GetActor(c), paymentID, req.Remark)
	if err == ErrAdminRequired {
		return response.Forbidden(c, err.Error())
	}
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.Success(c, "Payment marked as failed", payment, nil)
}
