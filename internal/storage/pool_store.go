package storage

import (
	"context"
	"errors"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/apperrors"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPoolStore persists pools.
type GormPoolStore struct {
	DB *gorm.DB
}

func (s *GormPoolStore) Get(ctx context.Context, poolID uuid.UUID) (*models.Pool, error) {
	var pool models.Pool
	err := s.DB.WithContext(ctx).
		Where("purchase_id = ?", poolID).
		First(&pool).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Pool", poolID.String())
	}
	if err != nil {
		return nil, apperrors.Storage("get pool", err)
	}
	return &pool, nil
}

func (s *GormPoolStore) All(ctx context.Context) ([]models.Pool, error) {
	var pools []models.Pool
	if err := s.DB.WithContext(ctx).
		Order("purchase_date DESC").
		Find(&pools).Error; err != nil {
		return nil, apperrors.Storage("list pools", err)
	}
	return pools, nil
}

func (s *GormPoolStore) Create(ctx context.Context, pool *models.Pool) error {
	if err := s.DB.WithContext(ctx).Create(pool).Error; err != nil {
		return apperrors.Storage("create pool", err)
	}
	return nil
}
