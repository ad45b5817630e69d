package storage

import (
	"context"
	"errors"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/apperrors"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvestorStore persists investors.
type GormInvestorStore struct {
	DB *gorm.DB
}

func (s *GormInvestorStore) Get(ctx context.Context, investorID uuid.UUID) (*models.Investor, error) {
	var investor models.Investor
	err := s.DB.WithContext(ctx).
		Where("investor_id = ?", investorID).
		First(&investor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Investor", investorID.String())
	}
	if err != nil {
		return nil, apperrors.Storage("get investor", err)
	}
	return &investor, nil
}

func (s *GormInvestorStore) All(ctx context.Context) ([]models.Investor, error) {
	var investors []models.Investor
	if err := s.DB.WithContext(ctx).
		Order("investor_name ASC").
		Find(&investors).Error; err != nil {
		return nil, apperrors.Storage("list investors", err)
	}
	return investors, nil
}

func (s *GormInvestorStore) Create(ctx context.Context, investor *models.Investor) error {
	if err := s.DB.WithContext(ctx).Create(investor).Error; err != nil {
		return apperrors.Storage("create investor", err)
	}
	return nil
}
