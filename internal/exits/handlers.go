package exits

import (
	"time"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/middleware"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handlers bundles exit commit handlers.
type Handlers struct {
	Service *Service
}

type stagedExitRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	ExitDate string          `json:"exit_date"`
}

type commitExitsRequest struct {
	InvestmentID string              `json:"investment_id"`
	Exits        []stagedExitRequest `json:"exits"`
}

// CommitExits POST /api/v1/investments/commit-exits
func (h *Handlers) CommitExits(c *fiber.Ctx) error {
	var req commitExitsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	investmentID, err := uuid.Parse(req.InvestmentID)
	if err != nil {
		return response.Error(c, "Invalid investment ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}

	staged := make([]StagedExit, 0, len(req.Exits))
	for _, e := range req.Exits {
		exitDate, err := time.Parse("2006-01-02", e.ExitDate)
		if err != nil {
			return response.Error(c, "exit_date must be YYYY-MM-DD", fiber.StatusBadRequest, nil)
		}
		staged = append(staged, StagedExit{Amount: e.Amount, ExitDate: exitDate})
	}

	investment, err := h.Service.Commit(c.Context(), investmentID, staged)
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.Success(c, "Exits committed successfully", investment, nil)
}
