package ledger

import (
	"time"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/middleware"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handlers bundles investment ledger handlers.
type Handlers struct {
	Service *Service
}

type createInvestmentRequest struct {
	InvestorID       string          `json:"investor_id"`
	PoolID           string          `json:"pool_id"`
	InvestmentAmount decimal.Decimal `json:"investment_amount"`
	InvestmentDate   string          `json:"investment_date"`
}

// CreateInvestment POST /api/v1/investments/create-investment
func (h *Handlers) CreateInvestment(c *fiber.Ctx) error {
	var req createInvestmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	investorID, err := uuid.Parse(req.InvestorID)
	if err != nil {
		return response.Error(c, "Invalid investor ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	poolID, err := uuid.Parse(req.PoolID)
	if err != nil {
		return response.Error(c, "Invalid pool ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	investmentDate, err := time.Parse("2006-01-02", req.InvestmentDate)
	if err != nil {
		return response.Error(c, "investment_date must be YYYY-MM-DD", fiber.StatusBadRequest, nil)
	}

	investment, err := h.Service.CreateInvestment(c.Context(), investorID, poolID, req.InvestmentAmount, investmentDate)
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.SuccessCreated(c, "Investment created successfully", investment, nil)
}

// GetPoolInvestments GET /api/v1/investments/get-pool-investments/:pool_id
func (h *Handlers) GetPoolInvestments(c *fiber.Ctx) error {
	poolID, err := uuid.Parse(c.Params("pool_id"))
	if err != nil {
		return response.Error(c, "Invalid pool ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	investments, err := h.Service.InvestmentsByPool(c.Context(), poolID)
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.Success(c, "Investments fetched successfully", investments, nil)
}

// GetInvestment GET /api/v1/investments/get-investment/:investment_id
func (h *Handlers) GetInvestment(c *fiber.Ctx) error {
	investmentID, err := uuid.Parse(c.Params("investment_id"))
	if err != nil {
		return response.Error(c, "Invalid investment ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	investment, err := h.Service.Investment(c.Context(), investmentID)
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.Success(c, "Investment fetched successfully", investment, nil)
}

type recordExitRequest struct {
	InvestmentID string          `json:"investment_id"`
	Amount       decimal.Decimal `json:"amount"`
	ExitDate     string          `json:"exit_date"`
}

// RecordExit POST /api/v1/investments/record-exit
func (h *Handlers) RecordExit(c *fiber.Ctx) error {
	var req recordExitRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	investmentID, err := uuid.Parse(req.InvestmentID)
	if err != nil {
		return response.Error(c, "Invalid investment ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	exitDate, err := time.Parse("2006-01-02", req.ExitDate)
	if err != nil {
		return response.Error(c, "exit_date must be YYYY-MM-DD", fiber.StatusBadRequest, nil)
	}

	investment, err := h.Service.RecordExit(c.Context(), investmentID, req.Amount, exitDate)
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.Success(c, "Exit recorded successfully", investment, nil)
}
