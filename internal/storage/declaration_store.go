package storage

import (
	"context"
	"errors"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/apperrors"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDeclarationStore persists quarterly ROI declarations.
type GormDeclarationStore struct {
	DB *gorm.DB
}

func (s *GormDeclarationStore) Get(ctx context.Context, declarationID uuid.UUID) (*models.Declaration, error) {
	var declaration models.Declaration
	err := s.DB.WithContext(ctx).
		Where("declaration_id = ?", declarationID).
		First(&declaration).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Declaration", declarationID.String())
	}
	if err != nil {
		return nil, apperrors.Storage("get declaration", err)
	}
	return &declaration, nil
}

func (s *GormDeclarationStore) ByPool(ctx context.Context, poolID uuid.UUID) ([]models.Declaration, error) {
	var declarations []models.Declaration
	if err := s.DB.WithContext(ctx).
		Where("purchase_id = ?", poolID).
		Order("declaration_date DESC").
		Find(&declarations).Error; err != nil {
		return nil, apperrors.Storage("list declarations by pool", err)
	}
	return declarations, nil
}

func (s *GormDeclarationStore) ExistsForQuarter(ctx context.Context, poolID uuid.UUID, quarterYear string) (bool, error) {
	var count int64
	if err := s.DB.WithContext(ctx).
		Model(&models.Declaration{}).
		Where("purchase_id = ? AND quarter_year = ?", poolID, quarterYear).
		Count(&count).Error; err != nil {
		return false, apperrors.Storage("count declarations for quarter", err)
	}
	return count > 0, nil
}

// CreateWithReservation inserts the declaration and, when it draws from the
// emergency fund, moves the pool's remaining fund in the same transaction.
// The fund is reserved at declaration time, before any payment exists.
func (s *GormDeclarationStore) CreateWithReservation(ctx context.Context, declaration *models.Declaration, poolVersion int, newFundRemaining *decimal.Decimal) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(declaration).Error; err != nil {
			return apperrors.Storage("create declaration", err)
		}
		if newFundRemaining == nil {
			return nil
		}
		res := tx.Model(&models.Pool{}).
			Where("purchase_id = ? AND version = ?", declaration.PurchaseID, poolVersion).
			Updates(map[string]interface{}{
				"emergency_fund_remaining": *newFundRemaining,
				"version":                  poolVersion + 1,
			})
		if res.Error != nil {
			return apperrors.Storage("reserve emergency fund", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("Pool", declaration.PurchaseID.String())
		}
		return nil
	})
}

// SetFinalized flips the finalized flag. Already-finalized rows match the
// WHERE clause too, so re-finalizing is a harmless no-op.
func (s *GormDeclarationStore) SetFinalized(ctx context.Context, declarationID uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Declaration{}).
		Where("declaration_id = ?", declarationID).
		Update("is_finalized", true)
	if res.Error != nil {
		return apperrors.Storage("finalize declaration", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("Declaration", declarationID.String())
	}
	return nil
}
