package pools

import (
	"context"
	"time"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/apperrors"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PoolStore is the pool module's persistence view.
type PoolStore interface {
	Get(ctx context.Context, poolID uuid.UUID) (*models.Pool, error)
	All(ctx context.Context) ([]models.Pool, error)
	Create(ctx context.Context, pool *models.Pool) error
}

type Service struct {
	Pools PoolStore
}

// CreateInput carries one pool registration.
type CreateInput struct {
	PoolName                   string
	Description                string
	PurchaseDate               time.Time
	TotalCost                  decimal.Decimal
	BankLoanAmount             decimal.Decimal
	InvestorAmount             decimal.Decimal
	MonthlyEmi                 decimal.Decimal
	EmergencyFundCollected     decimal.Decimal
	EmergencyFundCompanyShare  decimal.Decimal
	EmergencyFundInvestorShare decimal.Decimal
}

// CreatePool registers a purchase. The emergency fund's remaining balance
// starts at the investor share; declarations draw it down from there.
func (s *Service) CreatePool(ctx context.Context, input CreateInput) (*models.Pool, error) {
	if input.PoolName == "" {
		return nil, apperrors.Validation("pool_name", "is required")
	}
	if input.TotalCost.IsNegative() || input.BankLoanAmount.IsNegative() || input.InvestorAmount.IsNegative() {
		return nil, apperrors.Validation("amounts", "must not be negative")
	}
	pool := &models.Pool{
		PurchaseID:                 uuid.New(),
		PoolName:                   input.PoolName,
		Description:                input.Description,
		PurchaseDate:               input.PurchaseDate,
		TotalCost:                  input.TotalCost,
		BankLoanAmount:             input.BankLoanAmount,
		InvestorAmount:             input.InvestorAmount,
		MonthlyEmi:                 input.MonthlyEmi,
		EmergencyFundCollected:     input.EmergencyFundCollected,
		EmergencyFundCompanyShare:  input.EmergencyFundCompanyShare,
		EmergencyFundInvestorShare: input.EmergencyFundInvestorShare,
		EmergencyFundRemaining:     input.EmergencyFundInvestorShare,
		Status:                     models.PoolStatusActive,
	}
	if err := s.Pools.Create(ctx, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

func (s *Service) Pool(ctx context.Context, poolID uuid.UUID) (*models.Pool, error) {
	return s.Pools.Get(ctx, poolID)
}

func (s *Service) AllPools(ctx context.Context) ([]models.Pool, error) {
	return s.Pools.All(ctx)
}
