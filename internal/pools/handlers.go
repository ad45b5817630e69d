package pools

import (
	"time"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/middleware"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handlers bundles pool handlers.
type Handlers struct {
	Service *Service
}

type createPoolRequest struct {
	PoolName                   string          `json:"pool_name"`
	Description                string          `json:"description"`
	PurchaseDate               string          `json:"purchase_date"`
	TotalCost                  decimal.Decimal `json:"total_cost"`
	BankLoanAmount             decimal.Decimal `json:"bank_loan_amount"`
	InvestorAmount             decimal.Decimal `json:"investor_amount"`
	MonthlyEmi                 decimal.Decimal `json:"monthly_emi"`
	EmergencyFundCollected     decimal.Decimal `json:"emergency_fund_collected"`
	EmergencyFundCompanyShare  decimal.Decimal `json:"emergency_fund_company_share"`
	EmergencyFundInvestorShare decimal.Decimal `json:"emergency_fund_investor_share"`
}

// CreatePool POST /api/v1/pools/create-pool
func (h *Handlers) CreatePool(c *fiber.Ctx) error {
	var req createPoolRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return response.Error(c, "purchase_date must be YYYY-MM-DD", fiber.StatusBadRequest, nil)
	}

	pool, err := h.Service.CreatePool(c.Context(), CreateInput{
		PoolName:                   req.PoolName,
		Description:                req.Description,
		PurchaseDate:               purchaseDate,
		TotalCost:                  req.TotalCost,
		BankLoanAmount:             req.BankLoanAmount,
		InvestorAmount:             req.InvestorAmount,
		MonthlyEmi:                 req.MonthlyEmi,
		EmergencyFundCollected:     req.EmergencyFundCollected,
		EmergencyFundCompanyShare:  req.EmergencyFundCompanyShare,
		EmergencyFundInvestorShare: req.EmergencyFundInvestorShare,
	})
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.SuccessCreated(c, "Pool created successfully", pool, nil)
}

// GetAllPools GET /api/v1/pools/get-all-pools
func (h *Handlers) GetAllPools(c *fiber.Ctx) error {
	pools, err := h.Service.AllPools(c.Context())
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.Success(c, "Pools fetched successfully", pools, nil)
}

// GetPool GET /api/v1/pools/get-pool/:pool_id
func (h *Handlers) GetPool(c *fiber.Ctx) error {
	poolID, err := uuid.Parse(c.Params("pool_id"))
	if err != nil {
		return response.Error(c, "Invalid pool ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	pool, err := h.Service.Pool(c.Context(), poolID)
	if err != nil {
		return response.Error(c, middleware.MessageFor(err), middleware.StatusFor(err), nil)
	}
	return response.Success(c, "Pool fetched successfully", pool, nil)
}
