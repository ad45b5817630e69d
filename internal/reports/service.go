package reports

import (
	"context"
	"sort"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/apperrors"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/ledger"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/models"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/quarters"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service builds read-only rollups over the ledger and payment records.
type Service struct {
	DB *gorm.DB
}

// PoolPosition is one pool's slice of an investor summary.
type PoolPosition struct {
	PoolID           uuid.UUID       `json:"pool_id"`
	PoolName         string          `json:"pool_name"`
	CurrentPrincipal decimal.Decimal `json:"current_principal"`
	TotalExited      decimal.Decimal `json:"total_exited"`
}

// InvestorSummary is the cross-pool rollup for one investor.
type InvestorSummary struct {
	InvestorID       uuid.UUID       `json:"investor_id"`
	InvestorName     string          `json:"investor_name"`
	TotalInvested    decimal.Decimal `json:"total_invested"`
	TotalExited      decimal.Decimal `json:"total_exited"`
	TotalGrossRoi    decimal.Decimal `json:"total_gross_roi"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	TotalNetPaid     decimal.Decimal `json:"total_net_paid"`
	QuartersInvested int             `json:"quarters_invested"`
	Pools            []PoolPosition  `json:"pools"`
}

// InvestorSummary rolls up an investor's stakes, exits and payouts.
func (s *Service) InvestorSummary(ctx context.Context, investorID uuid.UUID) (*InvestorSummary, error) {
	var investor models.Investor
	if err := s.DB.WithContext(ctx).
		Where("investor_id = ?", investorID).
		First(&investor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("Investor", investorID.String())
		}
		return nil, apperrors.Storage("get investor", err)
	}

	var investments []models.Investment
	if err := s.DB.WithContext(ctx).
		Preload("Exits").
		Where("investor_id = ?", investorID).
		Find(&investments).Error; err != nil {
		return nil, apperrors.Storage("list investor investments", err)
	}

	summary := &InvestorSummary{
		InvestorID:      investorID,
		InvestorName:    investor.InvestorName,
		TotalInvested:   decimal.Zero,
		TotalExited:     decimal.Zero,
		TotalGrossRoi:   decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNetPaid:    decimal.Zero,
	}

	poolIDs := make([]uuid.UUID, 0, len(investments))
	for i := range investments {
		inv := &investments[i]
		summary.TotalInvested = summary.TotalInvested.Add(ledger.CurrentPrincipal(inv))
		summary.TotalExited = summary.TotalExited.Add(ledger.TotalExited(inv))
		poolIDs = append(poolIDs, inv.PurchaseID)
	}

	poolNames := map[uuid.UUID]string{}
	if len(poolIDs) > 0 {
		var pools []models.Pool
		if err := s.DB.WithContext(ctx).
			Where("purchase_id IN ?", poolIDs).
			Find(&pools).Error; err != nil {
			return nil, apperrors.Storage("list pools", err)
		}
		for _, p := range pools {
			poolNames[p.PurchaseID] = p.PoolName
		}
	}
	for i := range investments {
		inv := &investments[i]
		summary.Pools = append(summary.Pools, PoolPosition{
			PoolID:           inv.PurchaseID,
			PoolName:         poolNames[inv.PurchaseID],
			CurrentPrincipal: ledger.CurrentPrincipal(inv),
			TotalExited:      ledger.TotalExited(inv),
		})
	}

	var payments []models.Payment
	if err := s.DB.WithContext(ctx).
		Where("investor_id = ?", investorID).
		Find(&payments).Error; err != nil {
		return nil, apperrors.Storage("list investor payments", err)
	}
	for _, p := range payments {
		summary.TotalGrossRoi = summary.TotalGrossRoi.Add(p.GrossRoiAmount)
		summary.TotalDeductions = summary.TotalDeductions.
			Add(p.EmergencyFundDeduction).
			Add(p.TdsDeduction)
		summary.TotalNetPaid = summary.TotalNetPaid.Add(p.NetPayableAmount)
	}
	summary.QuartersInvested = len(payments)

	return summary, nil
}

// QuarterPayout is one declaration's payout totals inside a pool summary.
type QuarterPayout struct {
	DeclarationID uuid.UUID       `json:"declaration_id"`
	QuarterYear   string          `json:"quarter_year"`
	RoiPercentage decimal.Decimal `json:"roi_percentage"`
	Payments      int             `json:"payments"`
	TotalGross    decimal.Decimal `json:"total_gross"`
	TotalNet      decimal.Decimal `json:"total_net"`
}

// PoolSummary is one pool's capital position plus quarter-over-quarter
// payout totals, newest quarter first.
type PoolSummary struct {
	PoolID                 uuid.UUID       `json:"pool_id"`
	PoolName               string          `json:"pool_name"`
	Status                 string          `json:"status"`
	TotalCost              decimal.Decimal `json:"total_cost"`
	BankLoanAmount         decimal.Decimal `json:"bank_loan_amount"`
	InvestorAmount         decimal.Decimal `json:"investor_amount"`
	EmergencyFundRemaining decimal.Decimal `json:"emergency_fund_remaining"`
	CurrentPrincipalTotal  decimal.Decimal `json:"current_principal_total"`
	Quarters               []QuarterPayout `json:"quarters"`
}

// PoolSummary rolls up one pool's investments and quarterly payouts.
func (s *Service) PoolSummary(ctx context.Context, poolID uuid.UUID) (*PoolSummary, error) {
	var pool models.Pool
	if err := s.DB.WithContext(ctx).
		Where("purchase_id = ?", poolID).
		First(&pool).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("Pool", poolID.String())
		}
		return nil, apperrors.Storage("get pool", err)
	}

	summary := &PoolSummary{
		PoolID:                 pool.PurchaseID,
		PoolName:               pool.PoolName,
		Status:                 pool.Status,
		TotalCost:              pool.TotalCost,
		BankLoanAmount:         pool.BankLoanAmount,
		InvestorAmount:         pool.InvestorAmount,
		EmergencyFundRemaining: pool.EmergencyFundRemaining,
		CurrentPrincipalTotal:  decimal.Zero,
	}

	var investments []models.Investment
	if err := s.DB.WithContext(ctx).
		Where("purchase_id = ?", poolID).
		Find(&investments).Error; err != nil {
		return nil, apperrors.Storage("list pool investments", err)
	}
	for i := range investments {
		summary.CurrentPrincipalTotal = summary.CurrentPrincipalTotal.Add(ledger.CurrentPrincipal(&investments[i]))
	}

	var declarations []models.Declaration
	if err := s.DB.WithContext(ctx).
		Where("purchase_id = ?", poolID).
		Find(&declarations).Error; err != nil {
		return nil, apperrors.Storage("list pool declarations", err)
	}

	for _, d := range declarations {
		payout := QuarterPayout{
			DeclarationID: d.DeclarationID,
			QuarterYear:   d.QuarterYear,
			RoiPercentage: d.RoiPercentage,
			TotalGross:    decimal.Zero,
			TotalNet:      decimal.Zero,
		}
		var payments []models.Payment
		if err := s.DB.WithContext(ctx).
			Where("declaration_id = ?", d.DeclarationID).
			Find(&payments).Error; err != nil {
			return nil, apperrors.Storage("list declaration payments", err)
		}
		payout.Payments = len(payments)
		for _, p := range payments {
			payout.TotalGross = payout.TotalGross.Add(p.GrossRoiAmount)
			payout.TotalNet = payout.TotalNet.Add(p.NetPayableAmount)
		}
		summary.Quarters = append(summary.Quarters, payout)
	}
	sort.Slice(summary.Quarters, func(i, j int) bool {
		return quarters.Less(summary.Quarters[i].QuarterYear, summary.Quarters[j].QuarterYear)
	})

	return summary, nil
}

// QuarterlyPaymentRow is one payment flattened with its declaration context.
type QuarterlyPaymentRow struct {
	PaymentID              uuid.UUID       `json:"payment_id"`
	QuarterYear            string          `json:"quarter_year"`
	PoolName               string          `json:"pool_name"`
	RoiPercentage          decimal.Decimal `json:"roi_percentage"`
	GrossRoiAmount         decimal.Decimal `json:"gross_roi_amount"`
	EmergencyFundDeduction decimal.Decimal `json:"emergency_fund_deduction"`
	FdReturns              decimal.Decimal `json:"fd_returns"`
	TdsDeduction           decimal.Decimal `json:"tds_deduction"`
	NetPayableAmount       decimal.Decimal `json:"net_payable_amount"`
	PaymentStatus          string          `json:"payment_status"`
}

// QuarterlyHistory lists an investor's payments newest quarter first:
// year descending, then quarter descending (Q4 > Q3 > Q2 > Q1).
func (s *Service) QuarterlyHistory(ctx context.Context, investorID uuid.UUID) ([]QuarterlyPaymentRow, error) {
	var payments []models.Payment
	if err := s.DB.WithContext(ctx).
		Where("investor_id = ?", investorID).
		Find(&payments).Error; err != nil {
		return nil, apperrors.Storage("list investor payments", err)
	}
	if len(payments) == 0 {
		return []QuarterlyPaymentRow{}, nil
	}

	declIDs := make([]uuid.UUID, 0, len(payments))
	for _, p := range payments {
		declIDs = append(declIDs, p.DeclarationID)
	}
	var declarations []models.Declaration
	if err := s.DB.WithContext(ctx).
		Where("declaration_id IN ?", declIDs).
		Find(&declarations).Error; err != nil {
		return nil, apperrors.Storage("list declarations", err)
	}
	declMap := map[uuid.UUID]models.Declaration{}
	poolIDs := make([]uuid.UUID, 0, len(declarations))
	for _, d := range declarations {
		declMap[d.DeclarationID] = d
		poolIDs = append(poolIDs, d.PurchaseID)
	}

	poolNames := map[uuid.UUID]string{}
	if len(poolIDs) > 0 {
		var pools []models.Pool
		if err := s.DB.WithContext(ctx).
			Where("purchase_id IN ?", poolIDs).
			Find(&pools).Error; err != nil {
			return nil, apperrors.Storage("list pools", err)
		}
		for _, p := range pools {
			poolNames[p.PurchaseID] = p.PoolName
		}
	}

	rows := make([]QuarterlyPaymentRow, 0, len(payments))
	for _, p := range payments {
		decl := declMap[p.DeclarationID]
		rows = append(rows, QuarterlyPaymentRow{
			PaymentID:              p.PaymentID,
			QuarterYear:            decl.QuarterYear,
			PoolName:               poolNames[decl.PurchaseID],
			RoiPercentage:          decl.RoiPercentage,
			GrossRoiAmount:         p.GrossRoiAmount,
			EmergencyFundDeduction: p.EmergencyFundDeduction,
			FdReturns:              p.FdReturns,
			TdsDeduction:           p.TdsDeduction,
			NetPayableAmount:       p.NetPayableAmount,
			PaymentStatus:          p.PaymentStatus,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return quarters.Less(rows[i].QuarterYear, rows[j].QuarterYear)
	})
	return rows, nil
}
