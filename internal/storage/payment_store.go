package storage

import (
	"context"
	"errors"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/apperrors"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentStore persists computed payments and their audit events.
type GormPaymentStore struct {
	DB *gorm.DB
}

func (s *GormPaymentStore) Exists(ctx context.Context, investmentID, declarationID uuid.UUID) (bool, error) {
	var count int64
	if err := s.DB.WithContext(ctx).
		Model(&models.Payment{}).
		Where("investment_id = ? AND declaration_id = ?", investmentID, declarationID).
		Count(&count).Error; err != nil {
		return false, apperrors.Storage("check payment existence", err)
	}
	return count > 0, nil
}

func (s *GormPaymentStore) Get(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := s.DB.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Payment", paymentID.String())
	}
	if err != nil {
		return nil, apperrors.Storage("get payment", err)
	}
	return &payment, nil
}

// Insert writes the payment and its audit event together. The composite
// unique index on (investment_id, declaration_id) is the second line of the
// idempotence contract; a duplicate insert surfaces as a StorageError and
// the generation batch skips that investment.
func (s *GormPaymentStore) Insert(ctx context.Context, payment *models.Payment, event *models.PaymentEvent) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return apperrors.Storage("insert payment", err)
		}
		event.PaymentID = payment.PaymentID
		if err := tx.Create(event).Error; err != nil {
			return apperrors.Storage("insert payment event", err)
		}
		return nil
	})
}

// Update saves corrected fields and the audit event together.
func (s *GormPaymentStore) Update(ctx context.Context, payment *models.Payment, event *models.PaymentEvent) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(payment).Error; err != nil {
			return apperrors.Storage("update payment", err)
		}
		event.PaymentID = payment.PaymentID
		if err := tx.Create(event).Error; err != nil {
			return apperrors.Storage("insert payment event", err)
		}
		return nil
	})
}

func (s *GormPaymentStore) ByDeclaration(ctx context.Context, declarationID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.DB.WithContext(ctx).
		Where("declaration_id = ?", declarationID).
		Order("created_at ASC").
		Find(&payments).Error; err != nil {
		return nil, apperrors.Storage("list payments by declaration", err)
	}
	return payments, nil
}

func (s *GormPaymentStore) ByInvestor(ctx context.Context, investorID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.DB.WithContext(ctx).
		Where("investor_id = ?", investorID).
		Find(&payments).Error; err != nil {
		return nil, apperrors.Storage("list payments by investor", err)
	}
	return payments, nil
}
