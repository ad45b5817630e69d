package ledger

import (
	"context"
	"time"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/apperrors"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// InvestmentStore is the ledger's view of investment persistence.
type InvestmentStore interface {
	ByPool(ctx context.Context, poolID uuid.UUID) ([]models.Investment, error)
	Get(ctx context.Context, investmentID uuid.UUID) (*models.Investment, error)
	Create(ctx context.Context, investment *models.Investment) error
	CommitExits(ctx context.Context, investmentID uuid.UUID, expectedVersion int, newPrincipal decimal.Decimal, exits []models.ExitRecord) (*models.Investment, error)
}

// PoolStore is the ledger's view of pool lookups (admission validation).
type PoolStore interface {
	Get(ctx context.Context, poolID uuid.UUID) (*models.Pool, error)
}

// Service is the source of truth for an investor's stake and its mutation
// history.
type Service struct {
	Investments InvestmentStore
	Pools       PoolStore
}

// CurrentPrincipal returns the post-exit principal.
func CurrentPrincipal(investment *models.Investment) decimal.Decimal {
	return investment.InvestmentAmount
}

// TotalExited sums the exit history.
func TotalExited(investment *models.Investment) decimal.Decimal {
	total := decimal.Zero
	for _, exit := range investment.Exits {
		total = total.Add(exit.Amount)
	}
	return total
}

// OriginalPrincipal reconstructs the amount ever invested. Only the current
// principal is stored, so this is recomputed from current + exits on every
// call; caching it would let a concurrent exit edit slip past validation.
func OriginalPrincipal(investment *models.Investment) decimal.Decimal {
	return CurrentPrincipal(investment).Add(TotalExited(investment))
}

// InvestmentsByPool returns every investment against a pool, the input set
// for payment generation.
func (s *Service) InvestmentsByPool(ctx context.Context, poolID uuid.UUID) ([]models.Investment, error) {
	return s.Investments.ByPool(ctx, poolID)
}

// Investment returns one investment with its exit history.
func (s *Service) Investment(ctx context.Context, investmentID uuid.UUID) (*models.Investment, error) {
	return s.Investments.Get(ctx, investmentID)
}

// CreateInvestment admits an investor to a pool.
func (s *Service) CreateInvestment(ctx context.Context, investorID, poolID uuid.UUID, amount decimal.Decimal, date time.Time) (*models.Investment, error) {
	if !amount.IsPositive() {
		return nil, apperrors.Validation("investment_amount", "must be greater than zero")
	}
	if _, err := s.Pools.Get(ctx, poolID); err != nil {
		return nil, err
	}
	investment := &models.Investment{
		InvestmentID:     uuid.New(),
		InvestorID:       investorID,
		PurchaseID:       poolID,
		InvestmentAmount: amount,
		InvestmentDate:   date,
	}
	if err := s.Investments.Create(ctx, investment); err != nil {
		return nil, err
	}
	log.Info().
		Str("investment_id", investment.InvestmentID.String()).
		Str("purchase_id", poolID.String()).
		Str("amount", amount.String()).
		Msg("Investment created")
	return investment, nil
}

// RecordExit appends one partial withdrawal and recomputes the current
// principal. The sum of all exits can never exceed the original principal;
// a violating exit is rejected and the ledger is left untouched. Existing
// payments are never revisited.
func (s *Service) RecordExit(ctx context.Context, investmentID uuid.UUID, amount decimal.Decimal, date time.Time) (*models.Investment, error) {
	if !amount.IsPositive() {
		return nil, apperrors.Validation("amount", "exit amount must be greater than zero")
	}
	investment, err := s.Investments.Get(ctx, investmentID)
	if err != nil {
		return nil, err
	}

	original := OriginalPrincipal(investment)
	exited := TotalExited(investment)
	if exited.Add(amount).GreaterThan(original) {
		return nil, apperrors.Validationf("amount",
			"exit of %s exceeds remaining principal (original %s, already exited %s)",
			amount.String(), original.String(), exited.String())
	}

	newPrincipal := CurrentPrincipal(investment).Sub(amount)
	exit := models.ExitRecord{
		ExitID:       uuid.New(),
		InvestmentID: investmentID,
		Amount:       amount,
		ExitDate:     date,
	}
	updated, err := s.Investments.CommitExits(ctx, investmentID, investment.Version, newPrincipal, []models.ExitRecord{exit})
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("investment_id", investmentID.String()).
		Str("exit_amount", amount.String()).
		Str("current_principal", newPrincipal.String()).
		Msg("Exit recorded")
	return updated, nil
}
