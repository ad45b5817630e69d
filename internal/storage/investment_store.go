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

// GormInvestmentStore persists investments and their exit history.
type GormInvestmentStore struct {
	DB *gorm.DB
}

func (s *GormInvestmentStore) ByPool(ctx context.Context, poolID uuid.UUID) ([]models.Investment, error) {
	var investments []models.Investment
	if err := s.DB.WithContext(ctx).
		Preload("Exits").
		Where("purchase_id = ?", poolID).
		Order("investment_date ASC").
		Find(&investments).Error; err != nil {
		return nil, apperrors.Storage("list investments by pool", err)
	}
	return investments, nil
}

func (s *GormInvestmentStore) Get(ctx context.Context, investmentID uuid.UUID) (*models.Investment, error) {
	var investment models.Investment
	err := s.DB.WithContext(ctx).
		Preload("Exits").
		Where("investment_id = ?", investmentID).
		First(&investment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Investment", investmentID.String())
	}
	if err != nil {
		return nil, apperrors.Storage("get investment", err)
	}
	return &investment, nil
}

func (s *GormInvestmentStore) Create(ctx context.Context, investment *models.Investment) error {
	if err := s.DB.WithContext(ctx).Create(investment).Error; err != nil {
		return apperrors.Storage("create investment", err)
	}
	return nil
}

// CommitExits appends the given exits and moves the current principal in one
// transaction. The version check makes two racing commits impossible: the
// loser sees zero rows updated and gets a StateConflictError, nothing
// half-applied.
func (s *GormInvestmentStore) CommitExits(ctx context.Context, investmentID uuid.UUID, expectedVersion int, newPrincipal decimal.Decimal, exits []models.ExitRecord) (*models.Investment, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Investment{}).
			Where("investment_id = ? AND version = ?", investmentID, expectedVersion).
			Updates(map[string]interface{}{
				"investment_amount": newPrincipal,
				"version":           expectedVersion + 1,
			})
		if res.Error != nil {
			return apperrors.Storage("update investment principal", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("Investment", investmentID.String())
		}
		for i := range exits {
			if err := tx.Create(&exits[i]).Error; err != nil {
				return apperrors.Storage("append exit record", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, investmentID)
}
