package investors

import (
	"github.com/mukkoticf/twilight-investors-dashboard/internal/middleware"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles investor handlers.
type Handlers struct {
	Service *Service
}

type createInvestorRequest struct {
	InvestorName string `json:"investor_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PanNumber    string `json:"pan_number"`
}

// CreateInvestor POST /api/v1/investors/create-investor
func (h *Handlers) CreateInvestor(c *fiber.Ctx) error {
	var req createInvestorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	investor, err := h.Service.CreateInvestor(c.Context(), req.InvestorName, req.Email, req.Phone, req.PanNumber)
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.SuccessCreated(c, "Investor created successfully", investor, nil)
}

// GetAllInvestors GET /api/v1/investors/get-all-investors
func (h *Handlers) GetAllInvestors(c *fiber.Ctx) error {
	list, err := h.Service.AllInvestors(c.Context())
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.Success(c, "Investors fetched successfully", list, nil)
}

// GetInvestor GET /api/v1/investors/get-investor/:investor_id
func (h *Handlers) GetInvestor(c *fiber.Ctx) error {
	investorID, err := uuid.Parse(c.Params("investor_id"))
	if err != nil {
		return response.Error(c, "Invalid investor ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	investor, err := h.Service.Investor(c.Context(), investorID)
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.Success(c, "Investor fetched successfully", investor, nil)
}
