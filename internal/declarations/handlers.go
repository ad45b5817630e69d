package declarations

import (
	"time"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/middleware"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handlers bundles declaration handlers.
type Handlers struct {
	Service *Service
}

type createDeclarationRequest struct {
	PoolID            string           `json:"pool_id"`
	QuarterYear       string           `json:"quarter_year"`
	RoiPercentage     decimal.Decimal  `json:"roi_percentage"`
	DeclarationDate   string           `json:"declaration_date"`
	IsFinalized       bool             `json:"is_finalized"`
	EmergencyFundDraw *decimal.Decimal `json:"emergency_fund_draw"`
}

// CreateDeclaration POST /api/v1/declarations/create-declaration
func (h *Handlers) CreateDeclaration(c *fiber.Ctx) error {
	var req createDeclarationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	poolID, err := uuid.Parse(req.PoolID)
	if err != nil {
		return response.Error(c, "Invalid pool ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	declarationDate, err := time.Parse("2006-01-02", req.DeclarationDate)
	if err != nil {
		return response.Error(c, "declaration_date must be YYYY-MM-DD", fiber.StatusBadRequest, nil)
	}

	declaration, err := h.Service.CreateDeclaration(c.Context(), CreateInput{
		PoolID:            poolID,
		QuarterYear:       req.QuarterYear,
		RoiPercentage:     req.RoiPercentage,
		DeclarationDate:   declarationDate,
		Finalized:         req.IsFinalized,
		EmergencyFundDraw: req.EmergencyFundDraw,
	})
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.SuccessCreated(c, "Declaration created successfully", declaration, nil)
}

type finalizeRequest struct {
	DeclarationID string `json:"declaration_id"`
}

// FinalizeDeclaration POST /api/v1/declarations/finalize-declaration
func (h *Handlers) FinalizeDeclaration(c *fiber.Ctx) error {
	var req finalizeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	declarationID, err := uuid.Parse(req.DeclarationID)
	if err != nil {
		return response.Error(c, "Invalid declaration ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	declaration, err := h.Service.Finalize(c.Context(), declarationID)
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.Success(c, "Declaration finalized", declaration, nil)
}

// GetPoolDeclarations GET /api/v1/declarations/get-pool-declarations/:pool_id
func (h *Handlers) GetPoolDeclarations(c *fiber.Ctx) error {
	poolID, err := uuid.Parse(c.Params("pool_id"))
	if err != nil {
		return response.Error(c, "Invalid pool ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	declarations, err := h.Service.DeclarationsByPool(c.Context(), poolID)
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.Success(c, "Declarations fetched successfully", declarations, nil)
}
