package payments

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/actor"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/apperrors"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/ledger"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/locks"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// DeclarationStore is the engine's view of declaration lookups.
type DeclarationStore interface {
	Get(ctx context.Context, declarationID uuid.UUID) (*models.Declaration, error)
}

// PaymentStore is the engine's view of payment persistence.
type PaymentStore interface {
	Exists(ctx context.Context, investmentID, declarationID uuid.UUID) (bool, error)
	Get(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error)
	Insert(ctx context.Context, payment *models.Payment, event *models.PaymentEvent) error
	Update(ctx context.Context, payment *models.Payment, event *models.PaymentEvent) error
	ByDeclaration(ctx context.Context, declarationID uuid.UUID) ([]models.Payment, error)
}

// Service is the quarterly payment computation engine.
type Service struct {
	Declarations DeclarationStore
	Investments  ledger.InvestmentStore
	Payments     PaymentStore
	Locks        *locks.Manager
	Allocation   AllocationStrategy
	// TdsDefaultRate pre-fills TDS as a percentage of gross ROI at
	// generation time. Zero leaves TDS at zero for manual entry.
	TdsDefaultRate decimal.Decimal
}

// GenerationFailure records one investment whose payment could not be
// persisted. The batch continues past it.
type GenerationFailure struct {
	InvestmentID uuid.UUID `json:"investment_id"`
	Reason       string    `json:"reason"`
}

// NetPayable derives the net amount from the stored components. A payment
// can never be negative; the clamp to zero is a business rule, not a guard.
func NetPayable(gross, emergency, fd, tds decimal.Decimal) decimal.Decimal {
	net := gross.Sub(emergency).Add(fd).Sub(tds)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// GeneratePayments produces one Pending payment per investment active
// against the declaration's pool and returns how many were inserted.
//
// The whole run holds the per-declaration lock, and investments that
// already have a payment for this declaration are skipped, so retrying
// after a partial failure never duplicates a payout. A single investment's
// storage failure is reported and the rest of the pool still gets paid.
func (s *Service) GeneratePayments(ctx context.Context, declarationID uuid.UUID) (int, []GenerationFailure, error) {
	declaration, err := s.Declarations.Get(ctx, declarationID)
	if err != nil {
		return 0, nil, err
	}
	if !declaration.IsFinalized {
		return 0, nil, apperrors.Validation("declaration_id", "declaration is not finalized")
	}

	lock, err := s.Locks.Declaration(ctx, declarationID)
	if err != nil {
		return 0, nil, err
	}
	defer lock.Release(ctx)

	investments, err := s.Investments.ByPool(ctx, declaration.PurchaseID)
	if err != nil {
		return 0, nil, err
	}

	// Allocation weights span every investment in the pool, including ones
	// skipped below; retries therefore split the draw identically.
	principals := make([]decimal.Decimal, len(investments))
	for i := range investments {
		principals[i] = ledger.CurrentPrincipal(&investments[i])
	}
	allocations := s.Allocation.Allocate(declaration.DrawAmount(), principals)

	generated := 0
	var failures []GenerationFailure
	for i := range investments {
		investment := &investments[i]

		exists, err := s.Payments.Exists(ctx, investment.InvestmentID, declarationID)
		if err != nil {
			failures = append(failures, GenerationFailure{
				InvestmentID: investment.InvestmentID,
				Reason:       err.Error(),
			})
			continue
		}
		if exists {
			continue
		}

		gross := principals[i].Mul(declaration.RoiPercentage).Div(hundred).Round(2)
		emergency := allocations[i]
		tds := decimal.Zero
		if s.TdsDefaultRate.IsPositive() {
			tds = gross.Mul(s.TdsDefaultRate).Div(hundred).Round(2)
		}
		net := NetPayable(gross, emergency, decimal.Zero, tds)

		payment := &models.Payment{
			PaymentID:              uuid.New(),
			InvestmentID:           investment.InvestmentID,
			DeclarationID:          declarationID,
			InvestorID:             investment.InvestorID,
			GrossRoiAmount:         gross,
			EmergencyFundDeduction: emergency,
			FdReturns:              decimal.Zero,
			TdsDeduction:           tds,
			NetPayableAmount:       net,
			PaymentStatus:          models.PaymentStatusPending,
		}
		eventData, _ := json.Marshal(map[string]interface{}{
			"principal":                principals[i],
			"declared_roi_percentage":  declaration.RoiPercentage,
			"gross_roi_amount":         gross,
			"emergency_fund_deduction": emergency,
			"tds_deduction":            tds,
			"net_payable_amount":       net,
		})
		event := &models.PaymentEvent{
			EventID:    uuid.New(),
			EventType:  models.PaymentEventGenerated,
			ActorAdmin: true,
			EventData:  datatypes.JSON(eventData),
		}

		if err := s.Payments.Insert(ctx, payment, event); err != nil {
			log.Error().
				Str("declaration_id", declarationID.String()).
				Str("investment_id", investment.InvestmentID.String()).
				Err(err).
				Msg("Payment insert failed, batch continues")
			failures = append(failures, GenerationFailure{
				InvestmentID: investment.InvestmentID,
				Reason:       err.Error(),
			})
			continue
		}
		generated++
	}

	log.Info().
		Str("declaration_id", declarationID.String()).
		Int("generated", generated).
		Int("failed", len(failures)).
		Msg("Payment generation finished")
	return generated, failures, nil
}

// CorrectionInput carries an admin override of individual payment fields.
// Nil fields stay as stored.
type CorrectionInput struct {
	GrossRoiAmount         *decimal.Decimal `json:"gross_roi_amount"`
	EmergencyFundDeduction *decimal.Decimal `json:"emergency_fund_deduction"`
	FdReturns              *decimal.Decimal `json:"fd_returns"`
	TdsDeduction           *decimal.Decimal `json:"tds_deduction"`
	Remark                 *string          `json:"remark"`
}

// CorrectPayment applies an admin override and re-derives the net payable
// from the stored components, so a payment can never be saved inconsistent.
// Editing one investor's gross amount never touches the pool's declared
// rate; the effective percentage is recomputed at read time.
func (s *Service) CorrectPayment(ctx context.Context, who actor.Actor, paymentID uuid.UUID, input CorrectionInput) (*models.Payment, error) {
	if !who.IsAdmin {
		return nil, ErrAdminRequired
	}
	payment, err := s.Payments.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	apply := func(field string, target *decimal.Decimal, value *decimal.Decimal) error {
		if value == nil {
			return nil
		}
		if value.IsNegative() {
			return apperrors.Validation(field, "must not be negative")
		}
		*target = value.Round(2)
		changes[field] = *value
		return nil
	}
	if err := apply("gross_roi_amount", &payment.GrossRoiAmount, input.GrossRoiAmount); err != nil {
		return nil, err
	}
	if err := apply("emergency_fund_deduction", &payment.EmergencyFundDeduction, input.EmergencyFundDeduction); err != nil {
		return nil, err
	}
	if err := apply("fd_returns", &payment.FdReturns, input.FdReturns); err != nil {
		return nil, err
	}
	if err := apply("tds_deduction", &payment.TdsDeduction, input.TdsDeduction); err != nil {
		return nil, err
	}
	if input.Remark != nil {
		payment.Remark = input.Remark
		changes["remark"] = *input.Remark
	}
	if len(changes) == 0 {
		return nil, apperrors.Validation("correction", "no fields to correct")
	}

	payment.NetPayableAmount = NetPayable(
		payment.GrossRoiAmount,
		payment.EmergencyFundDeduction,
		payment.FdReturns,
		payment.TdsDeduction,
	)
	changes["net_payable_amount"] = payment.NetPayableAmount

	eventData, _ := json.Marshal(changes)
	event := &models.PaymentEvent{
		EventID:    uuid.New(),
		EventType:  models.PaymentEventCorrected,
		ActorAdmin: who.IsAdmin,
		EventData:  datatypes.JSON(eventData),
	}
	if err := s.Payments.Update(ctx, payment, event); err != nil {
		return nil, err
	}
	return payment, nil
}

// MarkPaid settles a payment with its payment date and optional receipt.
func (s *Service) MarkPaid(ctx context.Context, who actor.Actor, paymentID uuid.UUID, paymentDate time.Time, receiptURL *string) (*models.Payment, error) {
	return s.setStatus(ctx, who, paymentID, models.PaymentStatusPaid, &paymentDate, receiptURL, nil)
}

// MarkFailed flags a payment that could not be settled.
func (s *Service) MarkFailed(ctx context.Context, who actor.Actor, paymentID uuid.UUID, remark *string) (*models.Payment, error) {
	return s.setStatus(ctx, who, paymentID, models.PaymentStatusFailed, nil, nil, remark)
}

func (s *Service) setStatus(ctx context.Context, who actor.Actor, paymentID uuid.UUID, status string, paymentDate *time.Time, receiptURL, remark *string) (*models.Payment, error) {
	if !who.IsAdmin {
		return nil, ErrAdminRequired
	}
	payment, err := s.Payments.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	previous := payment.PaymentStatus
	payment.PaymentStatus = status
	if paymentDate != nil {
		payment.PaymentDate = paymentDate
	}
	if receiptURL != nil {
		payment.ReceiptURL = receiptURL
	}
	if remark != nil {
		payment.Remark = remark
	}

	eventData, _ := json.Marshal(map[string]interface{}{
		"from": previous,
		"to":   status,
	})
	event := &models.PaymentEvent{
		EventID:    uuid.New(),
		EventType:  models.PaymentEventStatusChanged,
		ActorAdmin: who.IsAdmin,
		EventData:  datatypes.JSON(eventData),
	}
	if err := s.Payments.Update(ctx, payment, event); err != nil {
		return nil, err
	}
	return payment, nil
}

// PaymentView is a payment plus its display-only effective ROI percentage,
// gross / current principal x 100. It is never persisted; corrections to a
// payment must not overwrite the declaration's declared rate.
type PaymentView struct {
	models.Payment
	EffectiveRoiPercentage *decimal.Decimal `json:"effective_roi_percentage"`
}

// PaymentsByDeclaration lists a declaration's payments with effective ROI.
func (s *Service) PaymentsByDeclaration(ctx context.Context, declarationID uuid.UUID) ([]PaymentView, error) {
	rows, err := s.Payments.ByDeclaration(ctx, declarationID)
	if err != nil {
		return nil, err
	}
	views := make([]PaymentView, 0, len(rows))
	for _, p := range rows {
		view := PaymentView{Payment: p}
		if investment, err := s.Investments.Get(ctx, p.InvestmentID); err == nil {
			principal := ledger.CurrentPrincipal(investment)
			if principal.IsPositive() {
				effective := p.GrossRoiAmount.Mul(hundred).Div(principal).Round(4)
				view.EffectiveRoiPercentage = &effective
			}
		}
		views = append(views, view)
	}
	return views, nil
}
