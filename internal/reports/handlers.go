package reports

import (
	"github.com/mukkoticf/twilight-investors-dashboard/internal/middleware"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles reporting handlers.
type Handlers struct {
	Service *Service
}

// GetInvestorSummary GET /api/v1/reports/investor-summary/:investor_id
func (h *Handlers) GetInvestorSummary(c *fiber.Ctx) error {
	investorID, err := uuid.Parse(c.Params("investor_id"))
	if err != nil {
		return response.Error(c, "Invalid investor ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	summary, err := h.Service.InvestorSummary(c.Context(), investorID)
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.Success(c, "Investor summary fetched successfully", summary, nil)
}

// GetPoolSummary GET /api/v1/reports/pool-summary/:pool_id
func (h *Handlers) GetPoolSummary(c *fiber.Ctx) error {
	poolID, err := uuid.Parse(c.Params("pool_id"))
	if err != nil {
		return response.Error(c, "Invalid pool ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	summary, err := h.Service.PoolSummary(c.Context(), poolID)
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.Success(c, "Pool summary fetched successfully", summary, nil)
}

// GetQuarterlyHistory GET /api/v1/reports/quarterly-history/:investor_id
func (h *Handlers) GetQuarterlyHistory(c *fiber.Ctx) error {
	investorID, err := uuid.Parse(c.Params("investor_id"))
	if err != nil {
		return response.Error(c, "Invalid investor ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	rows, err := h.Service.QuarterlyHistory(c.Context(), investorID)
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.Success(c, "Quarterly payment history fetched successfully", rows, nil)
}
