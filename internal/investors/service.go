package investors

import (
	"context"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/apperrors"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/models"

	"github.com/google/uuid"
)

// InvestorStore is the investor module's persistence view.
type InvestorStore interface {
	Get(ctx context.Context, investorID uuid.UUID) (*models.Investor, error)
	All(ctx context.Context) ([]models.Investor, error)
	Create(ctx context.Context, investor *models.Investor) error
}

type Service struct {
	Investors InvestorStore
}

func (s *Service) CreateInvestor(ctx context.Context, name, email, phone, pan string) (*models.Investor, error) {
	if name == "" {
		return nil, apperrors.Validation("investor_name", "is required")
	}
	if email == "" {
		return nil, apperrors.Validation("email", "is required")
	}
	investor := &models.Investor{
		InvestorID:   uuid.New(),
		InvestorName: name,
		Email:        email,
		Phone:        phone,
		PanNumber:    pan,
	}
	if err := s.Investors.Create(ctx, investor); err != nil {
		return nil, err
	}
	return investor, nil
}

func (s *Service) Investor(ctx context.Context, investorID uuid.UUID) (*models.Investor, error) {
	return s.Investors.Get(ctx, investorID)
}

func (s *Service) AllInvestors(ctx context.Context) ([]models.Investor, error) {
	return s.Investors.All(ctx)
}
