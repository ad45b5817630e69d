package declarations

import (
	"context"
	"time"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/apperrors"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/models"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/quarters"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DeclarationStore is the registry's view of declaration persistence.
type DeclarationStore interface {
	Get(ctx context.Context, declarationID uuid.UUID) (*models.Declaration, error)
	ByPool(ctx context.Context, poolID uuid.UUID) ([]models.Declaration, error)
	ExistsForQuarter(ctx context.Context, poolID uuid.UUID, quarterYear string) (bool, error)
	CreateWithReservation(ctx context.Context, declaration *models.Declaration, poolVersion int, newFundRemaining *decimal.Decimal) error
	SetFinalized(ctx context.Context, declarationID uuid.UUID) error
}

// PoolStore is the registry's view of pool lookups.
type PoolStore interface {
	Get(ctx context.Context, poolID uuid.UUID) (*models.Pool, error)
}

// Service validates and registers quarterly ROI declarations.
type Service struct {
	Declarations DeclarationStore
	Pools        PoolStore
}

// CreateInput carries one declaration request.
type CreateInput struct {
	PoolID            uuid.UUID
	QuarterYear       string
	RoiPercentage     decimal.Decimal
	DeclarationDate   time.Time
	Finalized         bool
	EmergencyFundDraw *decimal.Decimal
}

// CreateDeclaration registers one quarter's ROI announcement. A draw on the
// emergency fund is validated against the pool's remaining fund and reserved
// immediately, before any payment is generated. One declaration per pool per
// quarter; a duplicate would double-pay investors.
func (s *Service) CreateDeclaration(ctx context.Context, input CreateInput) (*models.Declaration, error) {
	if _, err := quarters.Parse(input.QuarterYear); err != nil {
		return nil, err
	}
	if !input.RoiPercentage.IsPositive() {
		return nil, apperrors.Validation("roi_percentage", "must be greater than zero")
	}

	pool, err := s.Pools.Get(ctx, input.PoolID)
	if err != nil {
		return nil, err
	}

	exists, err := s.Declarations.ExistsForQuarter(ctx, input.PoolID, input.QuarterYear)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Validationf("quarter_year",
			"declaration for %s already exists for this pool", input.QuarterYear)
	}

	var newFundRemaining *decimal.Decimal
	if input.EmergencyFundDraw != nil {
		draw := *input.EmergencyFundDraw
		if !draw.IsPositive() {
			return nil, apperrors.Validation("emergency_fund_draw", "must be greater than zero")
		}
		if draw.GreaterThan(pool.EmergencyFundRemaining) {
			return nil, apperrors.Validationf("emergency_fund_draw",
				"draw of %s exceeds remaining emergency fund %s",
				draw.String(), pool.EmergencyFundRemaining.String())
		}
		remaining := pool.EmergencyFundRemaining.Sub(draw)
		newFundRemaining = &remaining
	}

	declaration := &models.Declaration{
		DeclarationID:     uuid.New(),
		PurchaseID:        input.PoolID,
		QuarterYear:       input.QuarterYear,
		RoiPercentage:     input.RoiPercentage,
		DeclarationDate:   input.DeclarationDate,
		IsFinalized:       input.Finalized,
		EmergencyFundDraw: input.EmergencyFundDraw,
	}
	if err := s.Declarations.CreateWithReservation(ctx, declaration, pool.Version, newFundRemaining); err != nil {
		return nil, err
	}
	log.Info().
		Str("declaration_id", declaration.DeclarationID.String()).
		Str("purchase_id", input.PoolID.String()).
		Str("quarter_year", input.QuarterYear).
		Str("roi_percentage", input.RoiPercentage.String()).
		Msg("Declaration created")
	return declaration, nil
}

// Finalize flips the finalized flag. Re-finalizing is a no-op, not an error,
// so callers can retry after a partial failure.
func (s *Service) Finalize(ctx context.Context, declarationID uuid.UUID) (*models.Declaration, error) {
	if err := s.Declarations.SetFinalized(ctx, declarationID); err != nil {
		return nil, err
	}
	return s.Declarations.Get(ctx, declarationID)
}

// Declaration returns one declaration.
func (s *Service) Declaration(ctx context.Context, declarationID uuid.UUID) (*models.Declaration, error) {
	return s.Declarations.Get(ctx, declarationID)
}

// DeclarationsByPool lists a pool's declarations, newest first.
func (s *Service) DeclarationsByPool(ctx context.Context, poolID uuid.UUID) ([]models.Declaration, error) {
	return s.Declarations.ByPool(ctx, poolID)
}
